package service

import (
	"context"

	"github.com/acadsys/registra-backend/internal/model"
	"github.com/acadsys/registra-backend/internal/repository"
)

// MajorService exposes the majors reference data. Majors are seeded by
// migration and read-only at runtime.
type MajorService struct {
	majorRepo repository.MajorRepository
}

// NewMajorService creates a new MajorService.
func NewMajorService(majorRepo repository.MajorRepository) *MajorService {
	return &MajorService{majorRepo: majorRepo}
}

// GetAll retrieves all majors.
func (s *MajorService) GetAll(ctx context.Context) ([]*model.Major, error) {
	return s.majorRepo.GetAll(ctx)
}

// GetByID retrieves a major by ID.
func (s *MajorService) GetByID(ctx context.Context, id int) (*model.Major, error) {
	return s.majorRepo.GetByID(ctx, id)
}
