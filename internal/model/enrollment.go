package model

import "time"

// Enrollment is the join record linking one student to one course section.
// Unique on (student_id, course_id); its Grade row is created in the same
// transaction and shares its lifetime.
type Enrollment struct {
	ID        int       `json:"id"`
	StudentID int       `json:"student_id"`
	CourseID  int       `json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
}

// EnrollRequest is the payload for enrolling a student into a course section.
type EnrollRequest struct {
	StudentID int `json:"student_id" binding:"required"`
	CourseID  int `json:"course_id" binding:"required"`
}
