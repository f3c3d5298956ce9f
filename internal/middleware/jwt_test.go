package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/coursehub/internal/models"
	"github.com/campushq/coursehub/internal/service"
	"github.com/campushq/coursehub/pkg/config"
)

func jwtTestAuth() *service.AuthService {
	cfg := config.JWTConfig{Secret: "mw-secret", Expiration: time.Hour, RefreshExpiration: time.Hour, Issuer: "coursehub-test"}
	return service.NewAuthService(nil, nil, cfg, nil, nil)
}

func signTestToken(t *testing.T, secret string) string {
	t.Helper()
	now := time.Now().UTC()
	claims := models.JWTClaims{
		UserID:   "usr-1",
		Username: "S001",
		Role:     models.RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "usr-1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func claimsEchoEngine(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", mw, func(c *gin.Context) {
		if _, ok := c.Get(ContextUserKey); ok {
			c.String(http.StatusOK, "claims")
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	return r
}

func TestJWTRejectsMissingToken(t *testing.T) {
	rec := httptest.NewRecorder()
	claimsEchoEngine(JWT(jwtTestAuth())).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAcceptsSignedToken(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "mw-secret"))
	claimsEchoEngine(JWT(jwtTestAuth())).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "claims", rec.Body.String())
}

func TestOptionalJWTAllowsAnonymous(t *testing.T) {
	rec := httptest.NewRecorder()
	claimsEchoEngine(OptionalJWT(jwtTestAuth())).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anonymous", rec.Body.String())
}

func TestOptionalJWTAttachesClaimsWhenPresent(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "mw-secret"))
	claimsEchoEngine(OptionalJWT(jwtTestAuth())).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "claims", rec.Body.String())
}

func TestOptionalJWTIgnoresGarbageToken(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	claimsEchoEngine(OptionalJWT(jwtTestAuth())).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anonymous", rec.Body.String())
}
