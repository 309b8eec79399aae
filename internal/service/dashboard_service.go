package service

import (
	"context"

	"github.com/acadsys/registra-backend/internal/repository"
)

// DashboardData is the aggregate payload for the instructor dashboard.
type DashboardData struct {
	TotalStudents     int                           `json:"total_students"`
	TotalCourses      int                           `json:"total_courses"`
	TotalEnrollments  int                           `json:"total_enrollments"`
	TotalMaterials    int                           `json:"total_materials"`
	RecentEnrollments []repository.RecentEnrollment `json:"recent_enrollments"`
}

// DashboardService assembles the dashboard reporting view.
type DashboardService struct {
	dashRepo *repository.DashboardRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(dashRepo *repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashRepo: dashRepo}
}

// GetDashboardData retrieves entity counts and recent enrollment activity.
func (s *DashboardService) GetDashboardData(ctx context.Context) (*DashboardData, error) {
	students, courses, enrollments, materials, err := s.dashRepo.GetSummaryCounts(ctx)
	if err != nil {
		return nil, err
	}

	recents, err := s.dashRepo.GetRecentEnrollments(ctx, 10)
	if err != nil {
		return nil, err
	}

	return &DashboardData{
		TotalStudents:     students,
		TotalCourses:      courses,
		TotalEnrollments:  enrollments,
		TotalMaterials:    materials,
		RecentEnrollments: recents,
	}, nil
}
