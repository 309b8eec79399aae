package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/acadsys/registra-backend/internal/config"
	"github.com/acadsys/registra-backend/internal/handler"
	"github.com/acadsys/registra-backend/internal/middleware"
	"github.com/acadsys/registra-backend/internal/response"
	"github.com/acadsys/registra-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Major      *handler.MajorHandler
	Student    *handler.StudentHandler
	Course     *handler.CourseHandler
	Enrollment *handler.EnrollmentHandler
	Grade      *handler.GradeHandler
	Material   *handler.MaterialHandler
	Dashboard  *handler.DashboardHandler
	WS         *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Serve uploaded course materials statically with aggressive caching
	// (1 year); storage paths embed a unique suffix, so stale caches cannot
	// shadow a re-upload.
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 1. Public Group (No Auth) ─────────────────────────────────────
	publicAPI := router.Group("/api/v1")
	{
		publicAPI.GET("/majors", handlers.Major.List)
		publicAPI.GET("/majors/:id", handlers.Major.GetByID)
		publicAPI.GET("/courses", handlers.Course.List)
		publicAPI.GET("/courses/:id", handlers.Course.GetByID)
	}

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 2. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/instructor/register", handlers.Auth.Register)
		auth.POST("/instructor/login", handlers.Auth.Login)

		// Authenticated profile routes
		auth.GET("/instructor/me", middleware.RequireInstructorJWT(authService), handlers.Auth.Me)
		auth.POST("/instructor/logout", middleware.RequireInstructorJWT(authService), handlers.Auth.Logout)
	}

	// ─── 3. Instructor Group (JWT + Session) ───────────────────────────
	instructorAPI := router.Group("/api/v1")
	instructorAPI.Use(middleware.RequireInstructorJWT(authService))
	{
		// Student directory
		instructorAPI.POST("/students", handlers.Student.Create)
		instructorAPI.GET("/students", handlers.Student.List)
		instructorAPI.GET("/students/:id", handlers.Student.GetByID)
		instructorAPI.DELETE("/students/:id", handlers.Student.Delete)
		instructorAPI.GET("/students/:id/courses", handlers.Student.Courses)

		// Course catalog
		instructorAPI.POST("/courses", handlers.Course.Create)
		instructorAPI.DELETE("/courses/:id", handlers.Course.Delete)
		instructorAPI.GET("/courses/:id/students", handlers.Course.Roster)

		// Enrollment ledger
		instructorAPI.POST("/enrollments", handlers.Enrollment.Enroll)

		// Grade book
		instructorAPI.PUT("/grades/:student_id/:course_id", handlers.Grade.Update)

		// Course materials
		instructorAPI.POST("/courses/:id/materials", handlers.Material.Upload)
		instructorAPI.GET("/courses/:id/materials", handlers.Material.List)
		instructorAPI.DELETE("/courses/:id/materials/:materialId", handlers.Material.Delete)

		// Dashboard
		instructorAPI.GET("/dashboard", handlers.Dashboard.GetDashboard)
	}

	// ─── 4. WebSocket Group (Instructor WS Auth) ───────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireInstructorWSAuth(authService))
	{
		ws.GET("/courses/:id/enrollments/stream", handlers.WS.EnrollmentStream)
	}

	return router
}
