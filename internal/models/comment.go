package models

import "time"

// Comment is an append-only remark on a course. Only the author may edit
// the content afterwards; timestamps are system managed.
type Comment struct {
	ID        string    `db:"id" json:"id"`
	CourseID  string    `db:"course_id" json:"course_id"`
	AuthorID  string    `db:"author_id" json:"author_id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CommentDetail decorates a comment with its author's display fields.
type CommentDetail struct {
	Comment
	AuthorUsername string `db:"author_username" json:"author_username"`
	AuthorName     string `db:"author_name" json:"author_name"`
}
