package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushq/coursehub/internal/models"
	"github.com/campushq/coursehub/internal/repository"
	appErrors "github.com/campushq/coursehub/pkg/errors"
)

type courseRepo interface {
	Create(ctx context.Context, course *models.Course) error
	FindByID(ctx context.Context, id string) (*models.Course, error)
	List(ctx context.Context) ([]models.Course, error)
	ListByTeacher(ctx context.Context, teacherUserID string) ([]models.Course, error)
	ListAvailableForStudent(ctx context.Context, studentID string) ([]models.Course, error)
}

type courseEnrollmentReader interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.EnrollmentDetail, error)
}

type courseEnrollmentViewer interface {
	VisibleEnrollments(ctx context.Context, actor Actor, courseID string) ([]models.EnrollmentDetail, error)
}

type courseCommentLister interface {
	ListForCourse(ctx context.Context, courseID string) ([]models.CommentDetail, error)
}

// CreateCourseRequest is the teacher payload for a new course.
type CreateCourseRequest struct {
	Name       string `json:"name" validate:"required"`
	CourseCode string `json:"course_code" validate:"required"`
	Teacher    string `json:"teacher"`
}

// CourseCatalog is the role-shaped course listing.
type CourseCatalog struct {
	Enrolled  []models.Course `json:"enrolled,omitempty"`
	Available []models.Course `json:"available,omitempty"`
	Teaching  []models.Course `json:"teaching,omitempty"`
	All       []models.Course `json:"all,omitempty"`
}

// CourseService manages the course catalog.
type CourseService struct {
	courses     courseRepo
	enrollments courseEnrollmentReader
	viewer      courseEnrollmentViewer
	comments    courseCommentLister
	identity    studentResolver
	dashboards  *DashboardService
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewCourseService constructs CourseService.
func NewCourseService(courses courseRepo, enrollments courseEnrollmentReader, viewer courseEnrollmentViewer, comments courseCommentLister, identity studentResolver, dashboards *DashboardService, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{courses: courses, enrollments: enrollments, viewer: viewer, comments: comments, identity: identity, dashboards: dashboards, validate: validate, logger: logger}
}

// Create adds a course owned by the acting teacher. A duplicate course code
// comes back as a validation failure the caller can correct.
func (s *CourseService) Create(ctx context.Context, actor Actor, req CreateCourseRequest) (*models.Course, error) {
	if !actor.IsTeacher() && !actor.IsStaff {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only teachers can add courses")
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	course := &models.Course{
		Name:          req.Name,
		CourseCode:    req.CourseCode,
		Teacher:       req.Teacher,
		TeacherUserID: &actor.UserID,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		if errors.Is(err, repository.ErrDuplicateCode) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "course code already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	if s.dashboards != nil {
		s.dashboards.InvalidateSummaries(ctx)
	}
	s.logger.Info("course created", zap.String("course_code", course.CourseCode))
	return course, nil
}

// Catalog shapes the listing by role: students see enrolled plus available,
// teachers see the courses they own, staff see everything.
func (s *CourseService) Catalog(ctx context.Context, actor Actor) (*CourseCatalog, error) {
	catalog := &CourseCatalog{}

	switch {
	case actor.IsStaff:
		all, err := s.courses.List(ctx)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
		}
		catalog.All = all
	case actor.IsTeacher():
		teaching, err := s.courses.ListByTeacher(ctx, actor.UserID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teaching courses")
		}
		catalog.Teaching = teaching
	case actor.IsStudent():
		student, err := s.identity.ResolveStudent(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		enrolled, err := s.enrollments.ListByStudent(ctx, student.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
		}
		for _, e := range enrolled {
			catalog.Enrolled = append(catalog.Enrolled, models.Course{
				ID:         e.CourseID,
				Name:       e.CourseName,
				CourseCode: e.CourseCode,
			})
		}
		available, err := s.courses.ListAvailableForStudent(ctx, student.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list available courses")
		}
		catalog.Available = available
	default:
		all, err := s.courses.List(ctx)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
		}
		catalog.All = all
	}
	return catalog, nil
}

// CourseDetail is the full course page: the course itself, the enrollments
// the caller may see, the comment thread, and what the caller may do here.
type CourseDetail struct {
	Course          *models.Course            `json:"course"`
	Enrollments     []models.EnrollmentDetail `json:"enrollments"`
	Comments        []models.CommentDetail    `json:"comments"`
	IsCourseTeacher bool                      `json:"is_course_teacher"`
	IsStaff         bool                      `json:"is_staff"`
}

// Detail fetches one course with its visible enrollments and comments.
func (s *CourseService) Detail(ctx context.Context, actor Actor, courseID string) (*CourseDetail, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	detail := &CourseDetail{
		Course:          course,
		IsCourseTeacher: actor.OwnsCourse(course),
		IsStaff:         actor.IsStaff,
	}
	if s.viewer != nil {
		enrollments, err := s.viewer.VisibleEnrollments(ctx, actor, courseID)
		if err != nil {
			return nil, err
		}
		detail.Enrollments = enrollments
	}
	if s.comments != nil {
		comments, err := s.comments.ListForCourse(ctx, courseID)
		if err != nil {
			return nil, err
		}
		detail.Comments = comments
	}
	return detail, nil
}
