package main

import (
	"context"
	"fmt"
	"time"

	"github.com/acadsys/registra-backend/internal/config"
	"github.com/acadsys/registra-backend/internal/database"
	"github.com/acadsys/registra-backend/internal/logger"
	"github.com/acadsys/registra-backend/internal/model"
	"github.com/acadsys/registra-backend/internal/repository"
	"github.com/acadsys/registra-backend/internal/service"
	"github.com/acadsys/registra-backend/internal/storage"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	studentRepo := repository.NewStudentRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	materialRepo := repository.NewMaterialRepository(pool)

	studentService := service.NewStudentService(studentRepo)
	courseService := service.NewCourseService(courseRepo, materialRepo, storage.NewLocal(cfg.UploadDir), log)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, studentRepo, courseRepo, nil, log)

	fmt.Println("=== Seeding Demo Data ===")

	// Major IDs 1-4 are seeded by migration:
	// 1 Computer Science and Innovation, 2 Data Science,
	// 3 Cybersecurity, 4 Digital Forensics.
	students := []model.CreateStudentRequest{
		{FirstName: "Alice", LastName: "Nguyen", Email: "alice.nguyen@example.edu", MajorID: 1, GraduatingYear: 2027},
		{FirstName: "Ben", LastName: "Ortiz", Email: "ben.ortiz@example.edu", MajorID: 2, GraduatingYear: 2026},
		{FirstName: "Chloe", LastName: "Park", Email: "chloe.park@example.edu", MajorID: 3, GraduatingYear: 2028},
		{FirstName: "Darius", LastName: "Webb", Email: "darius.webb@example.edu", MajorID: 1, GraduatingYear: 2026},
		{FirstName: "Elena", LastName: "Rossi", Email: "elena.rossi@example.edu", MajorID: 4, GraduatingYear: 2027},
	}

	studentIDs := make([]int, 0, len(students))
	for _, req := range students {
		s, err := studentService.Create(ctx, req)
		if err != nil {
			fmt.Printf("Error creating student %s %s: %v\n", req.FirstName, req.LastName, err)
			continue
		}
		studentIDs = append(studentIDs, s.ID)
	}
	fmt.Printf("Created %d students\n", len(studentIDs))

	courses := []model.CreateCourseRequest{
		{Prefix: "CSI", Number: 300, Section: "01", Title: "Database Systems", Classroom: "JOYCE 201", StartTime: "09:00"},
		{Prefix: "CSI", Number: 300, Section: "02", Title: "Database Systems", Classroom: "JOYCE 201", StartTime: "13:00"},
		{Prefix: "DAT", Number: 210, Section: "01", Title: "Statistical Programming", Classroom: "IRELAND 115", StartTime: "10:30"},
		{Prefix: "CYB", Number: 400, Section: "01", Title: "Network Defense", Classroom: "JOYCE 305", StartTime: "14:00"},
	}

	courseIDs := make([]int, 0, len(courses))
	for _, req := range courses {
		c, err := courseService.Create(ctx, req, 0)
		if err != nil {
			fmt.Printf("Error creating course %s-%d-%s: %v\n", req.Prefix, req.Number, req.Section, err)
			continue
		}
		courseIDs = append(courseIDs, c.ID)
	}
	fmt.Printf("Created %d courses\n", len(courseIDs))

	enrolled := 0
	for i, studentID := range studentIDs {
		// Spread students across the catalog, skipping the second section
		// of CSI-300 so no seed violates the one-section rule.
		for j, courseID := range courseIDs {
			if j == 1 || (i+j)%2 != 0 {
				continue
			}
			if _, err := enrollmentService.Enroll(ctx, studentID, courseID); err != nil {
				fmt.Printf("Error enrolling student %d in course %d: %v\n", studentID, courseID, err)
				continue
			}
			enrolled++
		}
	}

	fmt.Printf("\nSeed completed! %d students, %d courses, %d enrollments.\n",
		len(studentIDs), len(courseIDs), enrolled)
}
