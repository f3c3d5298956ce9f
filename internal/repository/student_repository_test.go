package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestStudentRepositoryGetOrCreateConvergesOnExistingRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO students")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rows := sqlmock.NewRows([]string{"id", "name", "student_id", "created_at", "updated_at"}).
		AddRow("stu-1", "Alice", "S001", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM students WHERE student_id = $1")).
		WithArgs("S001").
		WillReturnRows(rows)

	student, err := repo.GetOrCreate(context.Background(), "S001", "Alice")
	require.NoError(t, err)
	require.Equal(t, "stu-1", student.ID)
	require.Equal(t, "S001", student.StudentID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryFindByNamePicksOldest(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "student_id", "created_at", "updated_at"}).
		AddRow("stu-1", "Alice", "S001", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("WHERE name = $1 ORDER BY created_at LIMIT 1")).
		WithArgs("Alice").
		WillReturnRows(rows)

	student, err := repo.FindByName(context.Background(), "Alice")
	require.NoError(t, err)
	require.Equal(t, "stu-1", student.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryFindByStudentIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM students WHERE student_id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByStudentID(context.Background(), "missing")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
