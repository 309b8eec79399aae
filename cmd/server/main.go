package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/acadsys/registra-backend/internal/config"
	"github.com/acadsys/registra-backend/internal/database"
	"github.com/acadsys/registra-backend/internal/feed"
	"github.com/acadsys/registra-backend/internal/handler"
	"github.com/acadsys/registra-backend/internal/logger"
	"github.com/acadsys/registra-backend/internal/repository"
	"github.com/acadsys/registra-backend/internal/router"
	"github.com/acadsys/registra-backend/internal/service"
	"github.com/acadsys/registra-backend/internal/storage"
	"github.com/acadsys/registra-backend/internal/validator"
	"github.com/acadsys/registra-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Registra Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize File Store ─────────────────────────────────────────
	store := storage.NewLocal(cfg.UploadDir)

	// ─── Initialize Repositories ───────────────────────────────────────
	instructorRepo := repository.NewInstructorRepository(pool)
	majorRepo := repository.NewMajorRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	gradeRepo := repository.NewGradeRepository(pool)
	materialRepo := repository.NewMaterialRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	enrollmentFeed := feed.New(rdb, log)
	authService := service.NewAuthService(cfg, rdb, instructorRepo)
	majorService := service.NewMajorService(majorRepo)
	studentService := service.NewStudentService(studentRepo)
	courseService := service.NewCourseService(courseRepo, materialRepo, store, log)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, studentRepo, courseRepo, enrollmentFeed, log)
	gradeService := service.NewGradeService(gradeRepo, log)
	materialService := service.NewMaterialService(courseRepo, materialRepo, store, cfg.MaxUploadBytes, log)
	dashboardService := service.NewDashboardService(dashboardRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Major:      handler.NewMajorHandler(majorService),
		Student:    handler.NewStudentHandler(studentService),
		Course:     handler.NewCourseHandler(courseService),
		Enrollment: handler.NewEnrollmentHandler(enrollmentService),
		Grade:      handler.NewGradeHandler(gradeService),
		Material:   handler.NewMaterialHandler(materialService),
		Dashboard:  handler.NewDashboardHandler(dashboardService),
		WS:         handler.NewWSHandler(enrollmentFeed, courseService, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	sweeper := worker.NewSweeper(store, materialRepo, cfg.SweepInterval, cfg.SweepGracePeriod, log)
	go sweeper.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the background sweeper.
	workerCancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
