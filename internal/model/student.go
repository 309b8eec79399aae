package model

import "time"

// Student represents a student in the directory. Deleting a student cascades
// through their enrollments and, transitively, their grades.
type Student struct {
	ID             int       `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	MajorID        int       `json:"major_id"`
	GraduatingYear int       `json:"graduating_year"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateStudentRequest is the payload for creating a new student.
type CreateStudentRequest struct {
	FirstName      string `json:"first_name" binding:"required,min=1,max=100"`
	LastName       string `json:"last_name" binding:"required,min=1,max=100"`
	Email          string `json:"email" binding:"required,email"`
	MajorID        int    `json:"major_id" binding:"required"`
	GraduatingYear int    `json:"graduating_year" binding:"required,gte=1900,lte=2200"`
}
