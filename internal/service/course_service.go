package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/acadsys/registra-backend/internal/model"
	"github.com/acadsys/registra-backend/internal/repository"
	"github.com/acadsys/registra-backend/internal/storage"
)

// CourseService handles the course catalog.
type CourseService struct {
	courseRepo   repository.CourseRepository
	materialRepo repository.MaterialRepository
	store        storage.FileStore
	log          zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(
	courseRepo repository.CourseRepository,
	materialRepo repository.MaterialRepository,
	store storage.FileStore,
	log zerolog.Logger,
) *CourseService {
	return &CourseService{
		courseRepo:   courseRepo,
		materialRepo: materialRepo,
		store:        store,
		log:          log.With().Str("component", "course_service").Logger(),
	}
}

// Create adds a new course section owned by the creating instructor.
// A non-positive instructorID leaves the section unowned (seed tooling).
func (s *CourseService) Create(ctx context.Context, req model.CreateCourseRequest, instructorID int) (*model.Course, error) {
	course := &model.Course{
		Prefix:    req.Prefix,
		Number:    req.Number,
		Section:   req.Section,
		Title:     req.Title,
		Classroom: req.Classroom,
		StartTime: req.StartTime,
	}
	if instructorID > 0 {
		course.InstructorID = &instructorID
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// GetByID retrieves a course by ID.
func (s *CourseService) GetByID(ctx context.Context, id int) (*model.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// List retrieves all course sections.
func (s *CourseService) List(ctx context.Context) ([]model.Course, error) {
	return s.courseRepo.List(ctx)
}

// Delete removes a course. Enrollments, grades, and material rows cascade in
// the database; the material files are then removed best-effort, and anything
// missed is reclaimed by the orphan sweeper.
func (s *CourseService) Delete(ctx context.Context, id int) error {
	paths, err := s.materialRepo.ListStoragePathsByCourse(ctx, id)
	if err != nil {
		return err
	}

	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return err
	}

	for _, p := range paths {
		if err := s.store.Delete(p); err != nil && !storage.IsNotExist(err) {
			s.log.Warn().Err(err).Str("storage_path", p).
				Msg("Failed to delete material file of removed course")
		}
	}
	return nil
}

// Roster retrieves the students enrolled in a course with their grades.
func (s *CourseService) Roster(ctx context.Context, courseID int) ([]repository.RosterEntry, error) {
	return s.courseRepo.ListRoster(ctx, courseID)
}
