package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/coursehub/internal/service"
	appErrors "github.com/campushq/coursehub/pkg/errors"
	"github.com/campushq/coursehub/pkg/response"
)

// CommentHandler wires HTTP endpoints to the comment service.
type CommentHandler struct {
	service *service.CommentService
}

// NewCommentHandler creates a new handler.
func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{service: svc}
}

type commentPayload struct {
	Content string `json:"content" binding:"required"`
}

// List godoc
// @Summary List course comments
// @Description Comments on a course, newest first
// @Tags Comments
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{id}/comments [get]
func (h *CommentHandler) List(c *gin.Context) {
	comments, err := h.service.ListForCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, comments, nil)
}

// Create godoc
// @Summary Comment on a course
// @Tags Comments
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body commentPayload true "Comment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{id}/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var payload commentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "comment content is required"))
		return
	}

	comment, err := h.service.Create(c.Request.Context(), actor, c.Param("id"), payload.Content)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, comment)
}

// Edit godoc
// @Summary Edit a comment
// @Description Rewrite comment content; only the author may edit
// @Tags Comments
// @Accept json
// @Produce json
// @Param id path string true "Comment ID"
// @Param payload body commentPayload true "Comment payload"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /comments/{id} [put]
func (h *CommentHandler) Edit(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var payload commentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "comment content is required"))
		return
	}

	comment, err := h.service.Edit(c.Request.Context(), actor, c.Param("id"), payload.Content)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, comment, nil)
}
