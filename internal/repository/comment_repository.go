package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campushq/coursehub/internal/models"
)

// CommentRepository handles persistence of course comments.
type CommentRepository struct {
	db *sqlx.DB
}

// NewCommentRepository constructs the repository.
func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create appends a comment to a course.
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	const query = `INSERT INTO comments (id, course_id, author_id, content, created_at, updated_at)
        VALUES (:id, :course_id, :author_id, :content, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, comment); err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// FindByID returns a comment by its ID.
func (r *CommentRepository) FindByID(ctx context.Context, id string) (*models.Comment, error) {
	const query = `SELECT id, course_id, author_id, content, created_at, updated_at FROM comments WHERE id = $1`
	var comment models.Comment
	if err := r.db.GetContext(ctx, &comment, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return &comment, nil
}

// UpdateContent replaces the comment body and refreshes updated_at.
func (r *CommentRepository) UpdateContent(ctx context.Context, id, content string) error {
	const query = `UPDATE comments SET content = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, content, time.Now().UTC()); err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	return nil
}

// ListByCourse returns comments for a course newest first with the author
// eagerly joined.
func (r *CommentRepository) ListByCourse(ctx context.Context, courseID string) ([]models.CommentDetail, error) {
	const query = `SELECT m.id, m.course_id, m.author_id, m.content, m.created_at, m.updated_at,
        u.username AS author_username, u.first_name AS author_name
        FROM comments m
        JOIN users u ON u.id = m.author_id
        WHERE m.course_id = $1 ORDER BY m.created_at DESC`
	var comments []models.CommentDetail
	if err := r.db.SelectContext(ctx, &comments, query, courseID); err != nil {
		return nil, fmt.Errorf("list course comments: %w", err)
	}
	return comments, nil
}
