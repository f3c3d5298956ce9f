package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/coursehub/internal/service"
	"github.com/campushq/coursehub/pkg/response"
)

// DashboardHandler wires HTTP endpoints to the dashboard service.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Summary godoc
// @Summary Site-wide counts
// @Description Total students and courses, cached briefly; includes the caller's average when a student is signed in
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	var caller *service.Actor
	if actor, ok := actorFromContext(c); ok {
		caller = &actor
	}

	summary, err := h.service.Summary(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, summary, nil)
}
