package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/campushq/coursehub/internal/models"
)

func TestUserRepositoryEnsureProfileConvergesOnExistingRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	// losing insert: the unique user_id constraint swallows the row
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO profiles")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rows := sqlmock.NewRows([]string{"id", "user_id", "role", "avatar", "created_at", "updated_at"}).
		AddRow("prf-1", "usr-1", "teacher", nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM profiles WHERE user_id = $1")).
		WithArgs("usr-1").
		WillReturnRows(rows)

	profile, err := repo.EnsureProfile(context.Background(), "usr-1")
	require.NoError(t, err)
	require.Equal(t, "prf-1", profile.ID)
	require.Equal(t, models.RoleTeacher, profile.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryEnsureProfileCreatesWithStudentRole(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO profiles")).
		WithArgs(sqlmock.AnyArg(), "usr-2", models.RoleStudent, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows := sqlmock.NewRows([]string{"id", "user_id", "role", "avatar", "created_at", "updated_at"}).
		AddRow("prf-2", "usr-2", "student", nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM profiles WHERE user_id = $1")).
		WithArgs("usr-2").
		WillReturnRows(rows)

	profile, err := repo.EnsureProfile(context.Background(), "usr-2")
	require.NoError(t, err)
	require.Equal(t, models.RoleStudent, profile.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}
