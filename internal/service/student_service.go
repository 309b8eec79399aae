package service

import (
	"context"

	"github.com/acadsys/registra-backend/internal/model"
	"github.com/acadsys/registra-backend/internal/repository"
)

// StudentService handles the student directory.
type StudentService struct {
	studentRepo repository.StudentRepository
}

// NewStudentService creates a new StudentService.
func NewStudentService(studentRepo repository.StudentRepository) *StudentService {
	return &StudentService{studentRepo: studentRepo}
}

// Create adds a new student to the directory.
func (s *StudentService) Create(ctx context.Context, req model.CreateStudentRequest) (*model.Student, error) {
	student := &model.Student{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		MajorID:        req.MajorID,
		GraduatingYear: req.GraduatingYear,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// GetByID retrieves a student by ID.
func (s *StudentService) GetByID(ctx context.Context, id int) (*model.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// List retrieves all students with their major names.
func (s *StudentService) List(ctx context.Context) ([]repository.StudentWithMajor, error) {
	return s.studentRepo.List(ctx)
}

// Delete removes a student; their enrollments and grades cascade with them.
func (s *StudentService) Delete(ctx context.Context, id int) error {
	return s.studentRepo.Delete(ctx, id)
}

// Courses retrieves the courses a student is enrolled in, with grades.
func (s *StudentService) Courses(ctx context.Context, studentID int) ([]repository.StudentCourseEntry, error) {
	return s.studentRepo.ListCourses(ctx, studentID)
}
