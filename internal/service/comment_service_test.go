package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/campushq/coursehub/internal/models"
	appErrors "github.com/campushq/coursehub/pkg/errors"
)

type mockCommentRepo struct {
	byID    map[string]models.Comment
	list    []models.CommentDetail
	created *models.Comment
	updated map[string]string
}

func (m *mockCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	comment.ID = "cmt-new"
	m.created = comment
	return nil
}

func (m *mockCommentRepo) FindByID(ctx context.Context, id string) (*models.Comment, error) {
	if c, ok := m.byID[id]; ok {
		return &c, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCommentRepo) UpdateContent(ctx context.Context, id, content string) error {
	if m.updated == nil {
		m.updated = make(map[string]string)
	}
	m.updated[id] = content
	return nil
}

func (m *mockCommentRepo) ListByCourse(ctx context.Context, courseID string) ([]models.CommentDetail, error) {
	return m.list, nil
}

func commentCourses() *mockCourseReader {
	return &mockCourseReader{courses: map[string]models.Course{"crs-1": {ID: "crs-1"}}}
}

func TestCommentCreate(t *testing.T) {
	repo := &mockCommentRepo{}
	svc := NewCommentService(repo, commentCourses(), nil)

	comment, err := svc.Create(context.Background(), Actor{UserID: "usr-1"}, "crs-1", "  solid lectures  ")
	require.NoError(t, err)
	require.Equal(t, "solid lectures", comment.Content)
	require.Equal(t, "usr-1", repo.created.AuthorID)
}

func TestCommentCreateRejectsEmptyContent(t *testing.T) {
	svc := NewCommentService(&mockCommentRepo{}, commentCourses(), nil)

	_, err := svc.Create(context.Background(), Actor{UserID: "usr-1"}, "crs-1", "   ")
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestCommentEditByAuthor(t *testing.T) {
	repo := &mockCommentRepo{byID: map[string]models.Comment{
		"cmt-1": {ID: "cmt-1", AuthorID: "usr-1", Content: "original"},
	}}
	svc := NewCommentService(repo, commentCourses(), nil)

	comment, err := svc.Edit(context.Background(), Actor{UserID: "usr-1"}, "cmt-1", "revised")
	require.NoError(t, err)
	require.Equal(t, "revised", comment.Content)
	require.Equal(t, "revised", repo.updated["cmt-1"])
}

func TestCommentEditByOtherUserForbidden(t *testing.T) {
	repo := &mockCommentRepo{byID: map[string]models.Comment{
		"cmt-1": {ID: "cmt-1", AuthorID: "usr-1", Content: "original"},
	}}
	svc := NewCommentService(repo, commentCourses(), nil)

	_, err := svc.Edit(context.Background(), Actor{UserID: "usr-2"}, "cmt-1", "hijacked")
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)
	require.Empty(t, repo.updated)
}
