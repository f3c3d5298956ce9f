package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestCommentRepositoryListByCourseNewestFirst(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCommentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "course_id", "author_id", "content", "created_at", "updated_at", "author_username", "author_name"}).
		AddRow("cmt-2", "crs-1", "usr-2", "great course", time.Now(), time.Now(), "bob", "Bob").
		AddRow("cmt-1", "crs-1", "usr-1", "tough exams", time.Now().Add(-time.Hour), time.Now().Add(-time.Hour), "alice", "Alice")
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY m.created_at DESC")).
		WithArgs("crs-1").
		WillReturnRows(rows)

	comments, err := repo.ListByCourse(context.Background(), "crs-1")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	require.Equal(t, "bob", comments[0].AuthorUsername)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepositoryUpdateContent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCommentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE comments SET content = $2")).
		WithArgs("cmt-1", "edited", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateContent(context.Background(), "cmt-1", "edited")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
