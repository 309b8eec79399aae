package model

import (
	"fmt"
	"time"
)

// Course represents one offered section of a course. The (prefix, number,
// section) triple is unique; (prefix, number) identifies the course
// independent of section and drives the one-section-per-course rule.
type Course struct {
	ID           int       `json:"id"`
	Prefix       string    `json:"prefix"`
	Number       int       `json:"number"`
	Section      string    `json:"section"`
	Title        string    `json:"title"`
	Classroom    string    `json:"classroom"`
	StartTime    string    `json:"start_time"`
	InstructorID *int      `json:"instructor_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CourseNumberKey renders the section-independent course identity, e.g. "CSI-300".
func (c Course) CourseNumberKey() string {
	return fmt.Sprintf("%s-%d", c.Prefix, c.Number)
}

// CreateCourseRequest is the payload for creating a new course section.
type CreateCourseRequest struct {
	Prefix    string `json:"prefix" binding:"required,min=2,max=10"`
	Number    int    `json:"number" binding:"required,gte=100,lte=999"`
	Section   string `json:"section" binding:"required,min=1,max=10"`
	Title     string `json:"title" binding:"required,min=1,max=200"`
	Classroom string `json:"classroom" binding:"required,max=50"`
	StartTime string `json:"start_time" binding:"required,max=50"`
}
