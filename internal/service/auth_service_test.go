package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/campushq/coursehub/internal/models"
	"github.com/campushq/coursehub/pkg/config"
	appErrors "github.com/campushq/coursehub/pkg/errors"
)

type mockAuthUserRepo struct {
	byUsername   map[string]models.User
	byID         map[string]models.User
	profiles     map[string]models.Profile
	roles        map[string]models.Role
	tokens       map[string]models.RefreshToken
	createErr    error
	createdUser  *models.User
	revokedUsers []string
}

func (m *mockAuthUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if u, ok := m.byUsername[username]; ok {
		return &u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.byID[id]; ok {
		return &u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.createdUser = user
	if m.byID == nil {
		m.byID = make(map[string]models.User)
	}
	m.byID[user.ID] = *user
	return nil
}

func (m *mockAuthUserRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	return nil
}

func (m *mockAuthUserRepo) EnsureProfile(ctx context.Context, userID string) (*models.Profile, error) {
	if m.profiles == nil {
		m.profiles = make(map[string]models.Profile)
	}
	if p, ok := m.profiles[userID]; ok {
		return &p, nil
	}
	p := models.Profile{ID: "prf-" + userID, UserID: userID, Role: models.RoleStudent}
	m.profiles[userID] = p
	return &p, nil
}

func (m *mockAuthUserRepo) FindProfileByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	if p, ok := m.profiles[userID]; ok {
		return &p, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthUserRepo) UpdateProfileRole(ctx context.Context, userID string, role models.Role) error {
	if m.roles == nil {
		m.roles = make(map[string]models.Role)
	}
	m.roles[userID] = role
	if p, ok := m.profiles[userID]; ok {
		p.Role = role
		m.profiles[userID] = p
	}
	return nil
}

func (m *mockAuthUserRepo) UpdateProfileAvatar(ctx context.Context, userID, avatar string) error {
	return nil
}

func (m *mockAuthUserRepo) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	if m.tokens == nil {
		m.tokens = make(map[string]models.RefreshToken)
	}
	m.tokens[token.Token] = *token
	return nil
}

func (m *mockAuthUserRepo) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	if t, ok := m.tokens[token]; ok {
		return &t, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthUserRepo) RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error {
	for k, t := range m.tokens {
		if t.ID == id {
			t.Revoked = true
			m.tokens[k] = t
		}
	}
	return nil
}

func (m *mockAuthUserRepo) RevokeUserRefreshTokens(ctx context.Context, userID string) error {
	m.revokedUsers = append(m.revokedUsers, userID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Expiration:        time.Hour,
		RefreshExpiration: 24 * time.Hour,
		Issuer:            "coursehub-test",
	}
}

func TestRegisterCreatesStudentRoleAndRecord(t *testing.T) {
	users := &mockAuthUserRepo{}
	students := &mockStudentRepo{}
	svc := NewAuthService(users, students, testJWTConfig(), nil, nil)

	pair, err := svc.Register(context.Background(), models.RegisterRequest{
		Username: "S001",
		Password: "secret123",
		Name:     "Alice",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleStudent, pair.User.Role)
	require.Equal(t, models.RoleStudent, users.roles[pair.User.ID])
	require.NotNil(t, students.created)
	require.Equal(t, "S001", students.created.StudentID)
	require.Equal(t, "Alice", students.created.Name)
	require.NotEqual(t, "secret123", users.createdUser.PasswordHash)

	// registration logs the account in right away
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, pair.User.ID, claims.UserID)
	require.Equal(t, models.RoleStudent, claims.Role)
}

func TestRegisterDuplicateStudentIDIsValidationError(t *testing.T) {
	students := &mockStudentRepo{createErr: &pq.Error{Code: "23505"}}
	svc := NewAuthService(&mockAuthUserRepo{}, students, testJWTConfig(), nil, nil)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Username:  "alice99",
		Password:  "secret123",
		StudentID: "S001",
	})
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestRegisterDuplicateUsernameIsValidationError(t *testing.T) {
	users := &mockAuthUserRepo{createErr: &pq.Error{Code: "23505"}}
	svc := NewAuthService(users, &mockStudentRepo{}, testJWTConfig(), nil, nil)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Username: "S001",
		Password: "secret123",
	})
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestLoginIssuesValidTokenPair(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	users := &mockAuthUserRepo{byUsername: map[string]models.User{
		"S001": {ID: "usr-1", Username: "S001", PasswordHash: string(hash), Active: true},
	}}
	svc := NewAuthService(users, &mockStudentRepo{}, testJWTConfig(), nil, nil)

	pair, err := svc.Login(context.Background(), models.LoginRequest{Username: "S001", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "usr-1", claims.UserID)
	require.Equal(t, models.RoleStudent, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	users := &mockAuthUserRepo{byUsername: map[string]models.User{
		"S001": {ID: "usr-1", Username: "S001", PasswordHash: string(hash), Active: true},
	}}
	svc := NewAuthService(users, &mockStudentRepo{}, testJWTConfig(), nil, nil)

	_, err = svc.Login(context.Background(), models.LoginRequest{Username: "S001", Password: "wrong"})
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestSetRoleRequiresStaff(t *testing.T) {
	users := &mockAuthUserRepo{byID: map[string]models.User{"usr-2": {ID: "usr-2"}}}
	svc := NewAuthService(users, &mockStudentRepo{}, testJWTConfig(), nil, nil)

	err := svc.SetRole(context.Background(), Actor{UserID: "usr-1", Role: models.RoleTeacher}, "usr-2", models.RoleTeacher)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)

	err = svc.SetRole(context.Background(), Actor{UserID: "usr-1", IsStaff: true}, "usr-2", models.RoleTeacher)
	require.NoError(t, err)
	require.Equal(t, models.RoleTeacher, users.roles["usr-2"])
}

func TestCreateTeacherAssignsTeacherRole(t *testing.T) {
	users := &mockAuthUserRepo{}
	svc := NewAuthService(users, &mockStudentRepo{}, testJWTConfig(), nil, nil)

	info, err := svc.CreateTeacher(context.Background(), Actor{UserID: "usr-a", IsStaff: true}, CreateTeacherRequest{
		Username: "prof",
		Password: "secret123",
		Name:     "Dr. Lee",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleTeacher, users.roles[info.ID])
}
