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

// StudentRepository handles persistence of student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// FindByStudentID returns the student with the given external identity key.
func (r *StudentRepository) FindByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	const query = `SELECT id, name, student_id, created_at, updated_at FROM students WHERE student_id = $1 LIMIT 1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, studentID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find student by student_id: %w", err)
	}
	return &student, nil
}

// FindByName returns the first student whose name matches exactly.
func (r *StudentRepository) FindByName(ctx context.Context, name string) (*models.Student, error) {
	const query = `SELECT id, name, student_id, created_at, updated_at FROM students WHERE name = $1 ORDER BY created_at LIMIT 1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, name); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find student by name: %w", err)
	}
	return &student, nil
}

// GetOrCreate inserts a student keyed by student_id if missing and returns
// the surviving row. Racing callers converge on one row via the unique
// student_id constraint.
func (r *StudentRepository) GetOrCreate(ctx context.Context, studentID, name string) (*models.Student, error) {
	now := time.Now().UTC()
	const insert = `INSERT INTO students (id, name, student_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $4)
        ON CONFLICT (student_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, insert, uuid.NewString(), name, studentID, now); err != nil {
		return nil, fmt.Errorf("get or create student: %w", err)
	}
	return r.FindByStudentID(ctx, studentID)
}

// Create persists a new student record.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now
	const query = `INSERT INTO students (id, name, student_id, created_at, updated_at)
        VALUES (:id, :name, :student_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// UpdateNameByStudentID renames the student matched by student_id, if any.
func (r *StudentRepository) UpdateNameByStudentID(ctx context.Context, studentID, name string) error {
	const query = `UPDATE students SET name = $2, updated_at = $3 WHERE student_id = $1`
	if _, err := r.db.ExecContext(ctx, query, studentID, name, time.Now().UTC()); err != nil {
		return fmt.Errorf("update student name: %w", err)
	}
	return nil
}

// Count returns the total number of students.
func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM students`); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return total, nil
}
