package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/campushq/coursehub/internal/models"
	appErrors "github.com/campushq/coursehub/pkg/errors"
)

const dashboardCachePrefix = "dash:summary"

type dashboardStudentCounter interface {
	Count(ctx context.Context) (int, error)
}

type dashboardCourseCounter interface {
	Count(ctx context.Context) (int, error)
}

type dashboardEnrollmentLister interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.EnrollmentDetail, error)
}

// DashboardSummary is the home payload. The counts are shared and cached;
// MyAverage is personal to a student caller and computed fresh.
type DashboardSummary struct {
	Students    int       `json:"students"`
	Courses     int       `json:"courses"`
	MyAverage   *float64  `json:"my_average,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// DashboardService serves cached site-wide counts, personalized per caller.
type DashboardService struct {
	students    dashboardStudentCounter
	courses     dashboardCourseCounter
	enrollments dashboardEnrollmentLister
	identity    studentResolver
	cache       *CacheService
	ttl         time.Duration
	logger      *zap.Logger
}

// NewDashboardService constructs DashboardService.
func NewDashboardService(students dashboardStudentCounter, courses dashboardCourseCounter, enrollments dashboardEnrollmentLister, identity studentResolver, cache *CacheService, ttl time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{students: students, courses: courses, enrollments: enrollments, identity: identity, cache: cache, ttl: ttl, logger: logger}
}

// Summary returns the totals, served from cache when warm. When the caller
// is a student with a record, the summary also carries their rounded
// average across enrollments.
func (s *DashboardService) Summary(ctx context.Context, actor *Actor) (*DashboardSummary, error) {
	key := fmt.Sprintf("%s:v1", dashboardCachePrefix)
	var summary DashboardSummary
	cached := false
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, key, &summary); err == nil && hit {
			cached = true
		}
	}

	if !cached {
		students, err := s.students.Count(ctx)
		if err != nil {
			return nil, err
		}
		courses, err := s.courses.Count(ctx)
		if err != nil {
			return nil, err
		}
		summary = DashboardSummary{
			Students:    students,
			Courses:     courses,
			GeneratedAt: time.Now().UTC(),
		}
		if s.cache != nil {
			if err := s.cache.Set(ctx, key, summary, s.ttl); err != nil {
				s.logger.Warn("failed to cache dashboard summary", zap.Error(err))
			}
		}
	}

	if avg := s.callerAverage(ctx, actor); avg != nil {
		summary.MyAverage = avg
	}
	return &summary, nil
}

// callerAverage resolves the actor to a student and averages their
// enrollments. Anonymous callers, non-students and students without a
// record all yield nil.
func (s *DashboardService) callerAverage(ctx context.Context, actor *Actor) *float64 {
	if actor == nil || !actor.IsStudent() || s.identity == nil || s.enrollments == nil {
		return nil
	}
	student, err := s.identity.ResolveStudent(ctx, actor.UserID)
	if err != nil {
		var appErr *appErrors.Error
		if !errors.As(err, &appErr) || appErr.Code != appErrors.ErrNoStudent.Code {
			s.logger.Warn("failed to resolve student for dashboard", zap.Error(err))
		}
		return nil
	}
	details, err := s.enrollments.ListByStudent(ctx, student.ID)
	if err != nil {
		s.logger.Warn("failed to list enrollments for dashboard", zap.Error(err))
		return nil
	}
	if len(details) == 0 {
		return nil
	}
	var sum float64
	for i := range details {
		sum += details[i].Average()
	}
	avg := roundScore(sum / float64(len(details)))
	return &avg
}

// InvalidateSummaries drops every cached summary after a write that changes
// the counts.
func (s *DashboardService) InvalidateSummaries(ctx context.Context) {
	if s == nil || s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, dashboardCachePrefix+":*"); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.Error(err))
	}
}
