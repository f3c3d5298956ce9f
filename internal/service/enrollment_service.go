package service

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"go.uber.org/zap"

	"github.com/campushq/coursehub/internal/models"
	appErrors "github.com/campushq/coursehub/pkg/errors"
)

type enrollmentRepo interface {
	GetOrCreate(ctx context.Context, studentID, courseID string) (*models.Enrollment, error)
	DeleteByStudentAndCourse(ctx context.Context, studentID, courseID string) error
	ListByStudent(ctx context.Context, studentID string) ([]models.EnrollmentDetail, error)
}

type enrollmentCourseReader interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

type studentResolver interface {
	ResolveStudent(ctx context.Context, userID string) (*models.Student, error)
}

// EnrollmentService covers a student's own enrollment lifecycle.
type EnrollmentService struct {
	enrollments enrollmentRepo
	courses     enrollmentCourseReader
	identity    studentResolver
	dashboards  *DashboardService
	logger      *zap.Logger
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(enrollments enrollmentRepo, courses enrollmentCourseReader, identity studentResolver, dashboards *DashboardService, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{enrollments: enrollments, courses: courses, identity: identity, dashboards: dashboards, logger: logger}
}

// Enroll adds the acting student to a course. Enrolling twice is a no-op
// that returns the existing row with fresh zero scores untouched.
func (s *EnrollmentService) Enroll(ctx context.Context, actor Actor, courseID string) (*models.Enrollment, error) {
	if !actor.IsStudent() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only students can enroll")
	}
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	student, err := s.identity.ResolveStudent(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	enrollment, err := s.enrollments.GetOrCreate(ctx, student.ID, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enroll")
	}
	if s.dashboards != nil {
		s.dashboards.InvalidateSummaries(ctx)
	}
	s.logger.Info("enrolled", zap.String("student_id", student.StudentID), zap.String("course_id", courseID))
	return enrollment, nil
}

// Drop removes the caller's student record from a course. Any caller that
// resolves to a student may drop; dropping a course the student is not
// enrolled in succeeds silently.
func (s *EnrollmentService) Drop(ctx context.Context, actor Actor, courseID string) error {
	student, err := s.identity.ResolveStudent(ctx, actor.UserID)
	if err != nil {
		return err
	}
	if err := s.enrollments.DeleteByStudentAndCourse(ctx, student.ID, courseID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to drop course")
	}
	if s.dashboards != nil {
		s.dashboards.InvalidateSummaries(ctx)
	}
	s.logger.Info("dropped", zap.String("student_id", student.StudentID), zap.String("course_id", courseID))
	return nil
}

// Overview bundles the caller's enrollments with the overall average
// across them.
type Overview struct {
	Enrollments    []models.EnrollmentDetail `json:"enrollments"`
	OverallAverage float64                   `json:"overall_average"`
}

// Overview returns the acting student's enrollments with course context,
// the computed average per row, and the rounded overall average.
func (s *EnrollmentService) Overview(ctx context.Context, actor Actor) (*Overview, error) {
	student, err := s.identity.ResolveStudent(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	details, err := s.enrollments.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}
	var sum float64
	for i := range details {
		avg := details[i].Average()
		details[i].AverageScore = roundScore(avg)
		sum += avg
	}
	overview := &Overview{Enrollments: details}
	if len(details) > 0 {
		overview.OverallAverage = roundScore(sum / float64(len(details)))
	}
	return overview, nil
}

func roundScore(v float64) float64 {
	return math.Round(v*100) / 100
}
