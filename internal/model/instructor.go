package model

import "time"

// Instructor represents an instructor account.
type Instructor struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterInstructorRequest is the payload for creating an instructor account.
type RegisterInstructorRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// InstructorLoginRequest is the payload for instructor authentication.
type InstructorLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// InstructorLoginResponse is returned after a successful login.
type InstructorLoginResponse struct {
	Token      string     `json:"token"`
	Instructor Instructor `json:"instructor"`
}
