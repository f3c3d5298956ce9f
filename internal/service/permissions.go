package service

import "github.com/campushq/coursehub/internal/models"

// Actor is the authenticated principal that permission predicates are
// evaluated against. Role is the profile role; IsStaff is the orthogonal
// flag granted by administrators.
type Actor struct {
	UserID  string
	Role    models.Role
	IsStaff bool
}

// IsStudent reports whether the actor carries the student role.
func (a Actor) IsStudent() bool {
	return a.Role == models.RoleStudent
}

// IsTeacher reports whether the actor carries the teacher role.
func (a Actor) IsTeacher() bool {
	return a.Role == models.RoleTeacher
}

// OwnsCourse reports whether the actor is the course's teacher account.
func (a Actor) OwnsCourse(course *models.Course) bool {
	return course != nil && course.TeacherUserID != nil && *course.TeacherUserID == a.UserID
}

// CanManageCourse grants roster and grading access: the owning teacher or
// any staff account.
func (a Actor) CanManageCourse(course *models.Course) bool {
	return (a.IsTeacher() && a.OwnsCourse(course)) || a.IsStaff
}
