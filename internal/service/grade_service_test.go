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

type mockGradeEnrollmentRepo struct {
	byID    map[string]models.Enrollment
	roster  []models.EnrollmentDetail
	ownRows []models.EnrollmentDetail
	saved   map[string][2]float64
}

func (m *mockGradeEnrollmentRepo) FindByID(ctx context.Context, id string) (*models.Enrollment, error) {
	if e, ok := m.byID[id]; ok {
		return &e, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockGradeEnrollmentRepo) ListByCourse(ctx context.Context, courseID string) ([]models.EnrollmentDetail, error) {
	return m.roster, nil
}

func (m *mockGradeEnrollmentRepo) ListByCourseAndStudent(ctx context.Context, courseID, studentID string) ([]models.EnrollmentDetail, error) {
	return m.ownRows, nil
}

func (m *mockGradeEnrollmentRepo) UpdateScores(ctx context.Context, id string, midterm, final float64) error {
	if m.saved == nil {
		m.saved = make(map[string][2]float64)
	}
	m.saved[id] = [2]float64{midterm, final}
	return nil
}

func strPtr(s string) *string { return &s }

func ownedCourse(teacherID string) *mockCourseReader {
	return &mockCourseReader{courses: map[string]models.Course{
		"crs-1": {ID: "crs-1", TeacherUserID: &teacherID},
	}}
}

func TestSetGradesSkipsBadFieldsIndependently(t *testing.T) {
	repo := &mockGradeEnrollmentRepo{byID: map[string]models.Enrollment{
		"enr-1": {ID: "enr-1", CourseID: "crs-1", MidtermScore: 50, FinalScore: 60},
		"enr-2": {ID: "enr-2", CourseID: "crs-1", MidtermScore: 70, FinalScore: 75},
	}}
	svc := NewGradeService(repo, ownedCourse("usr-t"), &fixedResolver{}, nil)
	actor := Actor{UserID: "usr-t", Role: models.RoleTeacher}

	result, err := svc.SetGrades(context.Background(), actor, "crs-1", map[string]ScoreInput{
		"enr-1": {Midterm: strPtr("85"), Final: strPtr("not-a-number")},
		"enr-2": {Midterm: strPtr("88.5"), Final: strPtr("91")},
	})
	require.NoError(t, err)
	require.Equal(t, 2, result.Updated)
	require.Contains(t, result.Skipped, "enr-1:final")

	// the bad final keeps its stored value while the good midterm lands
	require.Equal(t, [2]float64{85, 60}, repo.saved["enr-1"])
	require.Equal(t, [2]float64{88.5, 91}, repo.saved["enr-2"])
}

func TestSetGradesRejectsNonOwningTeacher(t *testing.T) {
	repo := &mockGradeEnrollmentRepo{}
	svc := NewGradeService(repo, ownedCourse("usr-owner"), &fixedResolver{}, nil)

	_, err := svc.SetGrades(context.Background(), Actor{UserID: "usr-other", Role: models.RoleTeacher}, "crs-1", nil)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)
}

func TestSetGradesIgnoresForeignEnrollment(t *testing.T) {
	repo := &mockGradeEnrollmentRepo{byID: map[string]models.Enrollment{
		"enr-x": {ID: "enr-x", CourseID: "crs-other"},
	}}
	svc := NewGradeService(repo, ownedCourse("usr-t"), &fixedResolver{}, nil)

	result, err := svc.SetGrades(context.Background(), Actor{UserID: "usr-t", Role: models.RoleTeacher}, "crs-1", map[string]ScoreInput{
		"enr-x": {Midterm: strPtr("99")},
	})
	require.NoError(t, err)
	require.Equal(t, 0, result.Updated)
	require.Contains(t, result.Skipped, "enr-x")
	require.Empty(t, repo.saved)
}

func TestVisibleEnrollmentsStudentSeesOwnRowOnly(t *testing.T) {
	repo := &mockGradeEnrollmentRepo{
		roster: []models.EnrollmentDetail{
			{Enrollment: models.Enrollment{ID: "enr-1"}},
			{Enrollment: models.Enrollment{ID: "enr-2"}},
		},
		ownRows: []models.EnrollmentDetail{
			{Enrollment: models.Enrollment{ID: "enr-1", MidtermScore: 80, FinalScore: 90}},
		},
	}
	resolver := &fixedResolver{student: &models.Student{ID: "stu-1"}}
	svc := NewGradeService(repo, ownedCourse("usr-t"), resolver, nil)

	details, err := svc.VisibleEnrollments(context.Background(), Actor{UserID: "usr-s", Role: models.RoleStudent}, "crs-1")
	require.NoError(t, err)
	require.Len(t, details, 1)
	require.Equal(t, 85.0, details[0].AverageScore)
}

func TestVisibleEnrollmentsManagerSeesRoster(t *testing.T) {
	repo := &mockGradeEnrollmentRepo{roster: []models.EnrollmentDetail{
		{Enrollment: models.Enrollment{ID: "enr-1"}},
		{Enrollment: models.Enrollment{ID: "enr-2"}},
	}}
	svc := NewGradeService(repo, ownedCourse("usr-t"), &fixedResolver{}, nil)

	details, err := svc.VisibleEnrollments(context.Background(), Actor{UserID: "usr-t", Role: models.RoleTeacher}, "crs-1")
	require.NoError(t, err)
	require.Len(t, details, 2)
}

func TestVisibleEnrollmentsNonOwningTeacherSeesRoster(t *testing.T) {
	repo := &mockGradeEnrollmentRepo{roster: []models.EnrollmentDetail{
		{Enrollment: models.Enrollment{ID: "enr-1"}},
		{Enrollment: models.Enrollment{ID: "enr-2"}},
	}}
	svc := NewGradeService(repo, ownedCourse("usr-owner"), &fixedResolver{}, nil)

	details, err := svc.VisibleEnrollments(context.Background(), Actor{UserID: "usr-other", Role: models.RoleTeacher}, "crs-1")
	require.NoError(t, err)
	require.Len(t, details, 2)
}

func TestVisibleEnrollmentsStudentWithoutRecordSeesNothing(t *testing.T) {
	repo := &mockGradeEnrollmentRepo{}
	resolver := &fixedResolver{err: appErrors.Clone(appErrors.ErrNoStudent, "")}
	svc := NewGradeService(repo, ownedCourse("usr-t"), resolver, nil)

	details, err := svc.VisibleEnrollments(context.Background(), Actor{UserID: "usr-s", Role: models.RoleStudent}, "crs-1")
	require.NoError(t, err)
	require.Empty(t, details)
}
