package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/campushq/coursehub/internal/models"
	appErrors "github.com/campushq/coursehub/pkg/errors"
)

type mockUserReader struct {
	users    map[string]models.User
	profiles map[string]models.Profile
}

func (m *mockUserReader) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return &u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserReader) FindProfileByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	if p, ok := m.profiles[userID]; ok {
		return &p, nil
	}
	return nil, sql.ErrNoRows
}

type mockStudentRepo struct {
	byStudentID map[string]models.Student
	byName      map[string]models.Student
	created     *models.Student
	createErr   error
}

func (m *mockStudentRepo) FindByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	if s, ok := m.byStudentID[studentID]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentRepo) FindByName(ctx context.Context, name string) (*models.Student, error) {
	if s, ok := m.byName[name]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentRepo) GetOrCreate(ctx context.Context, studentID, name string) (*models.Student, error) {
	if s, ok := m.byStudentID[studentID]; ok {
		return &s, nil
	}
	student := models.Student{ID: "stu-new", StudentID: studentID, Name: name}
	m.created = &student
	return &student, nil
}

func (m *mockStudentRepo) Create(ctx context.Context, student *models.Student) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.byStudentID[student.StudentID]; ok {
		return errors.New("duplicate student_id")
	}
	student.ID = "stu-new"
	m.created = student
	return nil
}

func TestResolveStudentMatchesUsernameAsStudentID(t *testing.T) {
	users := &mockUserReader{users: map[string]models.User{
		"usr-1": {ID: "usr-1", Username: "S001", FirstName: "Alice"},
	}}
	students := &mockStudentRepo{byStudentID: map[string]models.Student{
		"S001": {ID: "stu-1", StudentID: "S001", Name: "Someone Else"},
	}}
	svc := NewIdentityService(users, students, nil)

	student, err := svc.ResolveStudent(context.Background(), "usr-1")
	require.NoError(t, err)
	require.Equal(t, "stu-1", student.ID)
	require.Nil(t, students.created)
}

func TestResolveStudentFallsBackToName(t *testing.T) {
	users := &mockUserReader{users: map[string]models.User{
		"usr-1": {ID: "usr-1", Username: "alice99", FirstName: "Alice"},
	}}
	students := &mockStudentRepo{byName: map[string]models.Student{
		"Alice": {ID: "stu-2", StudentID: "S777", Name: "Alice"},
	}}
	svc := NewIdentityService(users, students, nil)

	student, err := svc.ResolveStudent(context.Background(), "usr-1")
	require.NoError(t, err)
	require.Equal(t, "stu-2", student.ID)
	require.Nil(t, students.created)
}

func TestResolveStudentAutoCreatesForStudentRole(t *testing.T) {
	users := &mockUserReader{
		users: map[string]models.User{
			"usr-1": {ID: "usr-1", Username: "alice99", FirstName: "Alice"},
		},
		profiles: map[string]models.Profile{
			"usr-1": {UserID: "usr-1", Role: models.RoleStudent},
		},
	}
	students := &mockStudentRepo{}
	svc := NewIdentityService(users, students, nil)

	student, err := svc.ResolveStudent(context.Background(), "usr-1")
	require.NoError(t, err)
	require.NotNil(t, students.created)
	require.Equal(t, "alice99", student.StudentID)
	require.Equal(t, "Alice", student.Name)
}

func TestResolveStudentTeacherWithoutRecordFails(t *testing.T) {
	users := &mockUserReader{
		users: map[string]models.User{
			"usr-1": {ID: "usr-1", Username: "prof", FirstName: "Dr. Lee"},
		},
		profiles: map[string]models.Profile{
			"usr-1": {UserID: "usr-1", Role: models.RoleTeacher},
		},
	}
	students := &mockStudentRepo{}
	svc := NewIdentityService(users, students, nil)

	_, err := svc.ResolveStudent(context.Background(), "usr-1")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, appErrors.ErrNoStudent.Code, appErr.Code)
	require.Nil(t, students.created)
}
