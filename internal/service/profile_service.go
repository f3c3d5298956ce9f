package service

import (
	"context"
	"database/sql"
	"errors"
	"mime/multipart"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/campushq/coursehub/internal/models"
	"github.com/campushq/coursehub/pkg/config"
	appErrors "github.com/campushq/coursehub/pkg/errors"
	"github.com/campushq/coursehub/pkg/storage"
)

type profileUserRepo interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateFirstName(ctx context.Context, id, firstName string) error
	EnsureProfile(ctx context.Context, userID string) (*models.Profile, error)
	FindProfileByUserID(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfileAvatar(ctx context.Context, userID, avatar string) error
}

type profileStudentRepo interface {
	UpdateNameByStudentID(ctx context.Context, studentID, name string) error
}

// ProfileView bundles account and profile fields for display.
type ProfileView struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	IsStaff   bool        `json:"is_staff"`
	AvatarURL string      `json:"avatar_url"`
}

// ProfileService manages account profiles and avatar uploads.
type ProfileService struct {
	users    profileUserRepo
	students profileStudentRepo
	media    *storage.MediaStorage
	cfg      config.MediaConfig
	logger   *zap.Logger
}

// NewProfileService constructs ProfileService.
func NewProfileService(users profileUserRepo, students profileStudentRepo, media *storage.MediaStorage, cfg config.MediaConfig, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{users: users, students: students, media: media, cfg: cfg, logger: logger}
}

// Get returns the actor's profile view.
func (s *ProfileService) Get(ctx context.Context, userID string) (*ProfileView, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "account not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load account")
	}
	profile, err := s.users.EnsureProfile(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load profile")
	}
	return s.view(user, profile), nil
}

// UpdateName changes the display name, propagating it to the linked student
// record keyed by the login name.
func (s *ProfileService) UpdateName(ctx context.Context, userID, name string) (*ProfileView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "name is required")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "account not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load account")
	}
	if err := s.users.UpdateFirstName(ctx, userID, name); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update name")
	}
	if err := s.students.UpdateNameByStudentID(ctx, user.Username, name); err != nil {
		s.logger.Warn("failed to propagate name to student record", zap.String("student_id", user.Username), zap.Error(err))
	}
	user.FirstName = name

	profile, err := s.users.EnsureProfile(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load profile")
	}
	return s.view(user, profile), nil
}

// UpdateAvatar stores a new avatar image and records its relative path.
func (s *ProfileService) UpdateAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (*ProfileView, error) {
	if file == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "avatar file is required")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "account not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load account")
	}

	profile, err := s.users.EnsureProfile(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load profile")
	}

	saved, err := s.media.SaveUpload("avatars", file)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "avatar upload rejected")
	}
	if profile.Avatar != nil && *profile.Avatar != s.cfg.DefaultAvatar {
		if err := s.media.Delete(*profile.Avatar); err != nil {
			s.logger.Warn("failed to remove previous avatar", zap.String("path", *profile.Avatar), zap.Error(err))
		}
	}
	if err := s.users.UpdateProfileAvatar(ctx, userID, saved); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save avatar")
	}
	profile.Avatar = &saved
	return s.view(user, profile), nil
}

// AvatarURL resolves the served URL for a profile, falling back to the
// default avatar when none is set or the file is gone.
func (s *ProfileService) AvatarURL(profile *models.Profile) string {
	rel := s.cfg.DefaultAvatar
	if profile != nil && profile.Avatar != nil && *profile.Avatar != "" && s.media != nil && s.media.Exists(*profile.Avatar) {
		rel = *profile.Avatar
	}
	return path.Join(s.cfg.URLPrefix, rel)
}

// AvatarForStudent resolves the avatar URL for a student number. Students
// sign in with their number as the login name, so the lookup goes through
// the matching account. Unknown numbers and accounts without an avatar
// fall back to the default image.
func (s *ProfileService) AvatarForStudent(ctx context.Context, studentID string) (string, error) {
	user, err := s.users.FindByUsername(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s.AvatarURL(nil), nil
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load account")
	}
	profile, err := s.users.FindProfileByUserID(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load profile")
		}
		profile = nil
	}
	return s.AvatarURL(profile), nil
}

func (s *ProfileService) view(user *models.User, profile *models.Profile) *ProfileView {
	return &ProfileView{
		ID:        user.ID,
		Username:  user.Username,
		Name:      user.FirstName,
		Email:     user.Email,
		Role:      profile.Role,
		IsStaff:   user.IsStaff,
		AvatarURL: s.AvatarURL(profile),
	}
}
