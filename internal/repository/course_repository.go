package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campushq/coursehub/internal/models"
)

// ErrDuplicateCode reports an insert that collided with an existing
// course_code.
var ErrDuplicateCode = errors.New("course code already exists")

// CourseRepository handles persistence of courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// Create persists a new course. A course_code collision is surfaced as
// ErrDuplicateCode instead of being swallowed.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now
	const query = `INSERT INTO courses (id, name, course_code, teacher, teacher_user_id, created_at, updated_at)
        VALUES (:id, :name, :course_code, :teacher, :teacher_user_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicateCode
		}
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// FindByID returns a course by its ID.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	const query = `SELECT id, name, course_code, teacher, teacher_user_id, created_at, updated_at FROM courses WHERE id = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	return &course, nil
}

// List returns every course ordered by code.
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	const query = `SELECT id, name, course_code, teacher, teacher_user_id, created_at, updated_at FROM courses ORDER BY course_code`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// ListByTeacher returns the courses owned by the given teacher account.
func (r *CourseRepository) ListByTeacher(ctx context.Context, teacherUserID string) ([]models.Course, error) {
	const query = `SELECT id, name, course_code, teacher, teacher_user_id, created_at, updated_at FROM courses WHERE teacher_user_id = $1 ORDER BY course_code`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, teacherUserID); err != nil {
		return nil, fmt.Errorf("list teaching courses: %w", err)
	}
	return courses, nil
}

// ListAvailableForStudent returns all courses the student is not enrolled in.
func (r *CourseRepository) ListAvailableForStudent(ctx context.Context, studentID string) ([]models.Course, error) {
	const query = `SELECT c.id, c.name, c.course_code, c.teacher, c.teacher_user_id, c.created_at, c.updated_at
        FROM courses c
        WHERE c.id NOT IN (SELECT course_id FROM enrollments WHERE student_id = $1)
        ORDER BY c.course_code`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, studentID); err != nil {
		return nil, fmt.Errorf("list available courses: %w", err)
	}
	return courses, nil
}

// Count returns the total number of courses.
func (r *CourseRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM courses`); err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	return total, nil
}
