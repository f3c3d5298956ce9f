package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/campushq/coursehub/internal/models"
	appErrors "github.com/campushq/coursehub/pkg/errors"
)

type commentRepo interface {
	Create(ctx context.Context, comment *models.Comment) error
	FindByID(ctx context.Context, id string) (*models.Comment, error)
	UpdateContent(ctx context.Context, id, content string) error
	ListByCourse(ctx context.Context, courseID string) ([]models.CommentDetail, error)
}

type commentCourseReader interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

// CommentService manages course comments.
type CommentService struct {
	comments commentRepo
	courses  commentCourseReader
	logger   *zap.Logger
}

// NewCommentService constructs CommentService.
func NewCommentService(comments commentRepo, courses commentCourseReader, logger *zap.Logger) *CommentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommentService{comments: comments, courses: courses, logger: logger}
}

// Create posts a comment on a course. Any authenticated account may comment.
func (s *CommentService) Create(ctx context.Context, actor Actor, courseID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "comment content is required")
	}
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	comment := &models.Comment{
		CourseID: courseID,
		AuthorID: actor.UserID,
		Content:  content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save comment")
	}
	return comment, nil
}

// Edit rewrites a comment's content. Only the original author may edit.
func (s *CommentService) Edit(ctx context.Context, actor Actor, commentID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "comment content is required")
	}
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "comment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load comment")
	}
	if comment.AuthorID != actor.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the author can edit a comment")
	}
	if err := s.comments.UpdateContent(ctx, commentID, content); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update comment")
	}
	comment.Content = content
	return comment, nil
}

// ListForCourse returns the course's comments, newest first.
func (s *CommentService) ListForCourse(ctx context.Context, courseID string) ([]models.CommentDetail, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	comments, err := s.comments.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list comments")
	}
	return comments, nil
}
