package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/campushq/coursehub/internal/models"
)

func TestCourseRepositoryCreateDuplicateCode(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO courses")).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &models.Course{Name: "Algorithms", CourseCode: "CS201"})
	require.ErrorIs(t, err, ErrDuplicateCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListAvailableForStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "course_code", "teacher", "teacher_user_id", "created_at", "updated_at"}).
		AddRow("crs-2", "Databases", "CS301", "Dr. Lee", nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("NOT IN (SELECT course_id FROM enrollments WHERE student_id = $1)")).
		WithArgs("stu-1").
		WillReturnRows(rows)

	courses, err := repo.ListAvailableForStudent(context.Background(), "stu-1")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	require.Equal(t, "CS301", courses[0].CourseCode)
	require.NoError(t, mock.ExpectationsWereMet())
}
