package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/campushq/coursehub/internal/models"
)

func performRBAC(t *testing.T, claims *models.JWTClaims, allowed ...string) int {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	r := gin.New()
	r.GET("/protected", func(c *gin.Context) {
		if claims != nil {
			c.Set(ContextUserKey, claims)
		}
	}, RBAC(allowed...), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))
	return rec.Code
}

func TestRBACAllowsMatchingRole(t *testing.T) {
	code := performRBAC(t, &models.JWTClaims{UserID: "usr-1", Role: models.RoleTeacher}, string(models.RoleTeacher))
	assert.Equal(t, http.StatusOK, code)
}

func TestRBACBlocksOtherRole(t *testing.T) {
	code := performRBAC(t, &models.JWTClaims{UserID: "usr-1", Role: models.RoleStudent}, string(models.RoleTeacher))
	assert.Equal(t, http.StatusForbidden, code)
}

func TestRBACStaffMarkerAdmitsStaff(t *testing.T) {
	code := performRBAC(t, &models.JWTClaims{UserID: "usr-1", Role: models.RoleStudent, IsStaff: true}, string(models.RoleTeacher), StaffMarker)
	assert.Equal(t, http.StatusOK, code)
}

func TestRBACWithoutClaimsUnauthorized(t *testing.T) {
	code := performRBAC(t, nil, string(models.RoleTeacher))
	assert.Equal(t, http.StatusUnauthorized, code)
}
