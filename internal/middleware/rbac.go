package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/campushq/coursehub/internal/models"
	appErrors "github.com/campushq/coursehub/pkg/errors"
	"github.com/campushq/coursehub/pkg/response"
)

// StaffMarker grants access to accounts flagged is_staff regardless of role.
const StaffMarker = "STAFF"

// RBAC enforces role-based access control for routes. Pass role names, or
// StaffMarker to admit staff accounts.
func RBAC(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims := claimsValue.(*models.JWTClaims)

		allowStaff := false
		allowedRoles := make(map[models.Role]struct{})
		for _, a := range allowed {
			if a == StaffMarker {
				allowStaff = true
				continue
			}
			allowedRoles[models.Role(a)] = struct{}{}
		}

		if _, ok := allowedRoles[claims.Role]; ok {
			c.Next()
			return
		}
		if allowStaff && claims.IsStaff {
			c.Next()
			return
		}

		response.Error(c, appErrors.ErrForbidden)
		c.Abort()
	}
}

// RequireRoles is a helper that accepts typed roles.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	allowed := make([]string, len(roles))
	for i, r := range roles {
		allowed[i] = string(r)
	}
	return RBAC(allowed...)
}

// RequireStaff admits only staff accounts.
func RequireStaff() gin.HandlerFunc {
	return RBAC(StaffMarker)
}
