package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/campushq/coursehub/internal/models"
	appErrors "github.com/campushq/coursehub/pkg/errors"
)

type identityUserReader interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindProfileByUserID(ctx context.Context, userID string) (*models.Profile, error)
}

type identityStudentRepo interface {
	FindByStudentID(ctx context.Context, studentID string) (*models.Student, error)
	FindByName(ctx context.Context, name string) (*models.Student, error)
	GetOrCreate(ctx context.Context, studentID, name string) (*models.Student, error)
}

// IdentityService maps authenticated accounts to student records.
type IdentityService struct {
	users    identityUserReader
	students identityStudentRepo
	logger   *zap.Logger
}

// NewIdentityService constructs IdentityService.
func NewIdentityService(users identityUserReader, students identityStudentRepo, logger *zap.Logger) *IdentityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdentityService{users: users, students: students, logger: logger}
}

// ResolveStudent resolves the account to its student record. Lookup order:
// the login name as student_id, then the account's given name, then
// auto-creation for student-role accounts. Only the last branch writes and
// it is get-or-create, so repeated calls within one request are safe.
// Teacher or staff accounts with no matching record get ErrNoStudent.
func (s *IdentityService) ResolveStudent(ctx context.Context, userID string) (*models.Student, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "account not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load account")
	}

	student, err := s.students.FindByStudentID(ctx, user.Username)
	if err == nil {
		return student, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to match student id")
	}

	if user.FirstName != "" {
		student, err = s.students.FindByName(ctx, user.FirstName)
		if err == nil {
			return student, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to match student name")
		}
	}

	profile, err := s.users.FindProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNoStudent, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load profile")
	}
	if profile.Role != models.RoleStudent {
		return nil, appErrors.Clone(appErrors.ErrNoStudent, "")
	}

	name := user.FirstName
	if name == "" {
		name = user.Username
	}
	student, err = s.students.GetOrCreate(ctx, user.Username, name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student record")
	}
	s.logger.Info("student record auto-created", zap.String("student_id", student.StudentID))
	return student, nil
}
