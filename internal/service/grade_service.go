package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/acadsys/registra-backend/internal/model"
	"github.com/acadsys/registra-backend/internal/repository"
)

// InvalidGradeError reports a component score outside [0, 100].
type InvalidGradeError struct {
	Component string
	Value     float64
}

func (e *InvalidGradeError) Error() string {
	return fmt.Sprintf("%s must be between 0 and 100 (got %g)", e.Component, e.Value)
}

// GradeService is the grade book: it updates component scores for an
// enrollment and lazily repairs grade rows that predate the
// grade-with-enrollment invariant.
type GradeService struct {
	gradeRepo repository.GradeRepository
	log       zerolog.Logger
}

// NewGradeService creates a new GradeService.
func NewGradeService(gradeRepo repository.GradeRepository, log zerolog.Logger) *GradeService {
	return &GradeService{
		gradeRepo: gradeRepo,
		log:       log.With().Str("component", "grade_service").Logger(),
	}
}

// SetGrades validates and applies the provided component scores to the grade
// row of the (student, course) enrollment. Omitted components stay unchanged
// on an existing row and default to zero on first creation. Idempotent.
func (s *GradeService) SetGrades(ctx context.Context, studentID, courseID int, c model.GradeComponents) (*model.Grade, error) {
	if err := validateComponents(c); err != nil {
		return nil, err
	}

	grade, err := s.gradeRepo.Upsert(ctx, studentID, courseID, c)
	if err != nil && repository.IsUniqueViolation(err) {
		// Two callers raced on the lazy creation of a missing grade row;
		// the rerun lands as a plain update.
		grade, err = s.gradeRepo.Upsert(ctx, studentID, courseID, c)
	}
	if err != nil {
		return nil, err
	}
	return grade, nil
}

func validateComponents(c model.GradeComponents) error {
	components := []struct {
		name  string
		value *float64
	}{
		{"quiz1", c.Quiz1},
		{"quiz2", c.Quiz2},
		{"project1", c.Project1},
		{"project2", c.Project2},
		{"final_exam", c.FinalExam},
	}
	for _, comp := range components {
		if comp.value == nil {
			continue
		}
		if *comp.value < 0 || *comp.value > 100 {
			return &InvalidGradeError{Component: comp.name, Value: *comp.value}
		}
	}
	return nil
}
