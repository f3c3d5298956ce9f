package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/campushq/coursehub/internal/models"
	appErrors "github.com/campushq/coursehub/pkg/errors"
)

type gradeEnrollmentRepo interface {
	FindByID(ctx context.Context, id string) (*models.Enrollment, error)
	ListByCourse(ctx context.Context, courseID string) ([]models.EnrollmentDetail, error)
	ListByCourseAndStudent(ctx context.Context, courseID, studentID string) ([]models.EnrollmentDetail, error)
	UpdateScores(ctx context.Context, id string, midterm, final float64) error
}

type gradeCourseReader interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

// ScoreInput carries raw score text for one enrollment. A nil field means
// leave that score alone; unparseable text is skipped, not rejected.
type ScoreInput struct {
	Midterm *string `json:"midterm_score"`
	Final   *string `json:"final_score"`
}

// GradeResult reports what a batch update actually changed.
type GradeResult struct {
	Updated int      `json:"updated"`
	Skipped []string `json:"skipped,omitempty"`
}

// GradeService records scores and exposes course rosters.
type GradeService struct {
	enrollments gradeEnrollmentRepo
	courses     gradeCourseReader
	identity    studentResolver
	logger      *zap.Logger
}

// NewGradeService constructs GradeService.
func NewGradeService(enrollments gradeEnrollmentRepo, courses gradeCourseReader, identity studentResolver, logger *zap.Logger) *GradeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{enrollments: enrollments, courses: courses, identity: identity, logger: logger}
}

// SetGrades applies a batch of score updates for one course. Each field is
// parsed independently; a field that fails to parse keeps its stored value
// and is reported in Skipped. One bad field never blocks the other field of
// the same row or any other row.
func (s *GradeService) SetGrades(ctx context.Context, actor Actor, courseID string, updates map[string]ScoreInput) (*GradeResult, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	if !actor.CanManageCourse(course) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "not the course teacher")
	}

	result := &GradeResult{}
	for enrollmentID, input := range updates {
		enrollment, err := s.enrollments.FindByID(ctx, enrollmentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				result.Skipped = append(result.Skipped, enrollmentID)
				continue
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment")
		}
		if enrollment.CourseID != courseID {
			result.Skipped = append(result.Skipped, enrollmentID)
			continue
		}

		midterm := enrollment.MidtermScore
		final := enrollment.FinalScore
		changed := false
		if input.Midterm != nil {
			if v, err := strconv.ParseFloat(*input.Midterm, 64); err == nil {
				midterm = v
				changed = true
			} else {
				result.Skipped = append(result.Skipped, enrollmentID+":midterm")
			}
		}
		if input.Final != nil {
			if v, err := strconv.ParseFloat(*input.Final, 64); err == nil {
				final = v
				changed = true
			} else {
				result.Skipped = append(result.Skipped, enrollmentID+":final")
			}
		}
		if !changed {
			continue
		}
		if err := s.enrollments.UpdateScores(ctx, enrollmentID, midterm, final); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save scores")
		}
		result.Updated++
	}

	s.logger.Info("grades recorded",
		zap.String("course_id", courseID),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", len(result.Skipped)))
	return result, nil
}

// Roster lists a course's enrollments with student context. Restricted to
// the managing teacher or staff.
func (s *GradeService) Roster(ctx context.Context, actor Actor, courseID string) ([]models.EnrollmentDetail, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	if !actor.CanManageCourse(course) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "not the course teacher")
	}
	details, err := s.enrollments.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list roster")
	}
	for i := range details {
		details[i].AverageScore = roundScore(details[i].Average())
	}
	return details, nil
}

// VisibleEnrollments returns the course enrollments the actor may see.
// Students are narrowed to their own row; every other caller (teachers,
// whether they own the course or not, and staff) sees the full roster.
func (s *GradeService) VisibleEnrollments(ctx context.Context, actor Actor, courseID string) ([]models.EnrollmentDetail, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	var details []models.EnrollmentDetail
	var err error
	if actor.IsStudent() {
		var student *models.Student
		student, err = s.identity.ResolveStudent(ctx, actor.UserID)
		if err != nil {
			var appErr *appErrors.Error
			if errors.As(err, &appErr) && appErr.Code == appErrors.ErrNoStudent.Code {
				return []models.EnrollmentDetail{}, nil
			}
			return nil, err
		}
		details, err = s.enrollments.ListByCourseAndStudent(ctx, courseID, student.ID)
	} else {
		details, err = s.enrollments.ListByCourse(ctx, courseID)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}
	for i := range details {
		details[i].AverageScore = roundScore(details[i].Average())
	}
	return details, nil
}
