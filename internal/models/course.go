package models

import "time"

// Course is identified externally by its unique course code. Teacher keeps
// the legacy free-text teacher name; TeacherUserID links the owning account.
type Course struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	CourseCode    string    `db:"course_code" json:"course_code"`
	Teacher       string    `db:"teacher" json:"teacher,omitempty"`
	TeacherUserID *string   `db:"teacher_user_id" json:"teacher_user_id,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
