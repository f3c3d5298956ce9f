package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/campushq/coursehub/internal/middleware"
	"github.com/campushq/coursehub/internal/models"
	"github.com/campushq/coursehub/internal/service"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

func actorFromContext(c *gin.Context) (service.Actor, bool) {
	claims := claimsFromContext(c)
	if claims == nil {
		return service.Actor{}, false
	}
	return service.Actor{
		UserID:  claims.UserID,
		Role:    claims.Role,
		IsStaff: claims.IsStaff,
	}, true
}
