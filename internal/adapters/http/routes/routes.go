package routes

import (
	"time"

	"geoattend/internal/adapters/http/handlers"
	"geoattend/internal/adapters/http/middleware"
	"geoattend/internal/adapters/persistence/repositories"
	"geoattend/internal/config"
	"geoattend/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	attendanceRepo := repositories.NewAttendanceRepository(db)
	settingRepo := repositories.NewSettingRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo)
	settingsService := services.NewSettingsService(settingRepo)
	attendanceService := services.NewAttendanceService(attendanceRepo, settingsService)
	reportService := services.NewReportService(attendanceRepo)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, userService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	reportHandler := handlers.NewReportHandler(reportService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, healthHandler, authHandler, userHandler,
		attendanceHandler, settingsHandler, reportHandler, dashboardHandler, cfg)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	attendanceHandler *handlers.AttendanceHandler,
	settingsHandler *handlers.SettingsHandler,
	reportHandler *handlers.ReportHandler,
	dashboardHandler *handlers.DashboardHandler,
	cfg *config.Config,
) {
	// API Info
	router.Get("/", healthHandler.APIInfo)

	// Auth routes (public, stricter rate limit, never cached)
	authRoutes := router.Group("/auth")
	authRoutes.Use(middleware.NoCacheHeaders())
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// User management routes (Admin only)
	userRoutes := router.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	userRoutes.Use(middleware.AdminOnly())
	setupUserRoutes(userRoutes, userHandler)

	// Attendance routes (Authenticated users)
	attendanceRoutes := router.Group("/attendance")
	attendanceRoutes.Use(middleware.AuthMiddleware(cfg))
	attendanceRoutes.Use(middleware.NoCacheHeaders())
	setupAttendanceRoutes(attendanceRoutes, attendanceHandler)

	// Settings routes (read for everyone authenticated, writes for admins)
	settingsRoutes := router.Group("/settings")
	settingsRoutes.Use(middleware.AuthMiddleware(cfg))
	setupSettingsRoutes(settingsRoutes, settingsHandler)

	// Report routes (Admin only)
	reportRoutes := router.Group("/reports")
	reportRoutes.Use(middleware.AuthMiddleware(cfg))
	reportRoutes.Use(middleware.AdminOnly())
	setupReportRoutes(reportRoutes, reportHandler)

	// Dashboard routes (Admin only, briefly cacheable)
	dashboardRoutes := router.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	dashboardRoutes.Use(middleware.AdminOnly())
	dashboardRoutes.Use(middleware.PrivateCacheHeaders(30 * time.Second))
	setupDashboardRoutes(dashboardRoutes, dashboardHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", middleware.AuthRateLimiter(), handler.Refresh)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/profile", middleware.AuthMiddleware(cfg), handler.Profile)
}

// setupUserRoutes configures user management routes (Admin only)
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Put("/:id/status", handler.SetStatus)
}

// setupAttendanceRoutes configures attendance routes
func setupAttendanceRoutes(router fiber.Router, handler *handlers.AttendanceHandler) {
	router.Post("/checkin", handler.CheckIn)
	router.Put("/checkout/:id", handler.CheckOut)
	router.Get("/user/:user_id", handler.History)
	router.Get("/latest-pending/:user_id", handler.LatestPending)
	router.Get("/today", handler.Today)
	router.Get("/date-range", handler.DateRange)
}

// setupSettingsRoutes configures settings routes
func setupSettingsRoutes(router fiber.Router, handler *handlers.SettingsHandler) {
	// Employees read the schedule and geofence to render their client UI
	router.Get("/work-schedule", handler.GetWorkSchedule)
	router.Get("/office-location", handler.GetOfficeLocation)

	// Admin only
	router.Put("/work-schedule", middleware.AdminOnly(), handler.UpdateWorkSchedule)
	router.Put("/office-location", middleware.AdminOnly(), handler.UpdateOfficeLocation)
}

// setupReportRoutes configures report routes (Admin only)
func setupReportRoutes(router fiber.Router, handler *handlers.ReportHandler) {
	router.Post("/generate", handler.Generate)
}

// setupDashboardRoutes configures dashboard routes (Admin only)
func setupDashboardRoutes(router fiber.Router, handler *handlers.DashboardHandler) {
	router.Get("/summary", handler.Summary)
}
