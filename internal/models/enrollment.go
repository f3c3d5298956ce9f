package models

import "time"

// Enrollment ties a student to a course with midterm and final scores.
// The pair (student_id, course_id) is unique.
type Enrollment struct {
	ID           string    `db:"id" json:"id"`
	StudentID    string    `db:"student_id" json:"student_id"`
	CourseID     string    `db:"course_id" json:"course_id"`
	MidtermScore float64   `db:"midterm_score" json:"midterm_score"`
	FinalScore   float64   `db:"final_score" json:"final_score"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Average is computed, never stored.
func (e Enrollment) Average() float64 {
	return (e.MidtermScore + e.FinalScore) / 2
}

// EnrollmentDetail decorates an enrollment with student and course context.
type EnrollmentDetail struct {
	Enrollment
	StudentName   string  `db:"student_name" json:"student_name"`
	StudentNumber string  `db:"student_number" json:"student_number"`
	CourseName    string  `db:"course_name" json:"course_name"`
	CourseCode    string  `db:"course_code" json:"course_code"`
	AverageScore  float64 `db:"-" json:"average_score"`
}
