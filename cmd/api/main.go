package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/nkamgang/scolaris-api/docs" // Swagger docs
	"github.com/nkamgang/scolaris-api/internal/config"
	"github.com/nkamgang/scolaris-api/internal/database"
	"github.com/nkamgang/scolaris-api/internal/handlers"
	"github.com/nkamgang/scolaris-api/internal/jobs"
	"github.com/nkamgang/scolaris-api/internal/middleware"
	"github.com/nkamgang/scolaris-api/internal/models"
	"github.com/nkamgang/scolaris-api/internal/repository"
	"github.com/nkamgang/scolaris-api/internal/services"
	"github.com/nkamgang/scolaris-api/internal/storage"
	"github.com/nkamgang/scolaris-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title Scolaris API
// @version 1.0
// @description REST API for school administration: enrollment, tuition and receipts
// @termsOfService http://swagger.io/terms/

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	// Run migrations and seed the payment plan catalog
	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("Database migrated")

	// Initialize storage for generated receipt PDFs
	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized local storage")

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos, worker, cfg, db)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs)

	// Initialize handlers
	h := handlers.NewHandlers(svcs, store)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	worker.Shutdown()
	logger.Info("Background worker stopped")

	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Redirect root to swagger
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check (public)
		v1.GET("/health", h.Health.Index)

		// Authentication (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
		}

		// Protected routes (requires authentication)
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			// Admin-only routes
			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				// Staff account management
				admin.GET("/users", h.User.Index)
				admin.POST("/users", h.User.Create)
				admin.GET("/users/:user_id", h.User.Show)
				admin.PUT("/users/:user_id", h.User.Update)
				admin.DELETE("/users/:user_id", h.User.Delete)
				admin.PATCH("/users/:user_id/toggle_status", h.User.ToggleStatus)

				// Destructive school-structure operations
				admin.DELETE("/classes/:class_id", h.Class.Delete)
				admin.DELETE("/teachers/:teacher_id", h.Teacher.Delete)
				admin.DELETE("/fee-schedules/:schedule_id", h.FeeSchedule.Delete)
			}

			// Bursar + Admin routes (money operations)
			bursar := protected.Group("")
			bursar.Use(middleware.RequireRole(models.RoleAdmin, models.RoleBursar))
			{
				bursar.GET("/fee-schedules", h.FeeSchedule.Index)
				bursar.GET("/fee-schedules/:schedule_id", h.FeeSchedule.Show)
				bursar.POST("/fee-schedules", h.FeeSchedule.Create)
				bursar.PUT("/fee-schedules/:schedule_id", h.FeeSchedule.Update)

				bursar.GET("/payment-plans", h.Payment.Plans)
				bursar.POST("/payments/compute", h.Payment.Compute)
				bursar.POST("/payments", h.Payment.Create)

				bursar.GET("/receipts", h.Payment.Index)
				bursar.GET("/receipts/:receipt_id", h.Payment.Show)
				bursar.PATCH("/receipts/:receipt_id/status", h.Payment.UpdateStatus)
				bursar.GET("/receipts/:receipt_id/download", h.Payment.Download)

				bursar.GET("/students/:student_id/receipts", h.Student.Receipts)
				bursar.GET("/students/:student_id/balance", h.Student.Balance)

				bursar.GET("/reports/receipts/csv", h.Report.ReceiptsCSV)
				bursar.GET("/reports/receipts/xlsx", h.Report.ReceiptsXLSX)
				bursar.GET("/reports/unpaid-balances/csv", h.Report.UnpaidBalancesCSV)
				bursar.GET("/reports/students/:student_id/statement", h.Report.BalanceStatementPDF)

				bursar.GET("/dashboard/overview", h.Dashboard.Overview)
				bursar.GET("/dashboard/trend", h.Dashboard.Trend)
			}

			// All staff: school structure and day-to-day records
			protected.GET("/students", h.Student.Index)
			protected.GET("/students/:student_id", h.Student.Show)
			protected.POST("/students", h.Student.Create)
			protected.PUT("/students/:student_id", h.Student.Update)
			protected.DELETE("/students/:student_id", h.Student.Delete)

			protected.GET("/teachers", h.Teacher.Index)
			protected.GET("/teachers/:teacher_id", h.Teacher.Show)
			protected.POST("/teachers", h.Teacher.Create)
			protected.PUT("/teachers/:teacher_id", h.Teacher.Update)

			protected.GET("/classes", h.Class.Index)
			protected.GET("/classes/:class_id", h.Class.Show)
			protected.GET("/classes/:class_id/students", h.Class.Students)
			protected.GET("/classes/:class_id/schedule", h.Schedule.ByClass)
			protected.POST("/classes", h.Class.Create)
			protected.PUT("/classes/:class_id", h.Class.Update)

			protected.GET("/courses", h.Course.Index)
			protected.GET("/courses/:course_id", h.Course.Show)
			protected.POST("/courses", h.Course.Create)
			protected.PUT("/courses/:course_id", h.Course.Update)
			protected.DELETE("/courses/:course_id", h.Course.Delete)

			protected.POST("/schedule", h.Schedule.Place)
			protected.DELETE("/schedule/:slot_id", h.Schedule.Remove)

			protected.GET("/evaluations", h.Evaluation.Index)
			protected.POST("/evaluations", h.Evaluation.Create)
			protected.DELETE("/evaluations/:evaluation_id", h.Evaluation.Delete)

			// Own account
			protected.PATCH("/profile/password", h.User.ChangePassword)

			// Notifications; static route first so "read-all" is not
			// matched as :notification_id
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", h.Notification.Index)
				notifications.PATCH("/read-all", h.Notification.MarkAllAsRead)
				notifications.PATCH("/:notification_id/read", h.Notification.MarkAsRead)
			}
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services) {
	// Flag pending receipts past the grace period every hour
	worker.ScheduleEvery(1*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Checking late receipts...")
		return svcs.Receipt.MarkLateReceipts(ctx)
	})

	// Refresh dashboard cache every 15 minutes
	worker.ScheduleEvery(15*time.Minute, func(ctx context.Context) error {
		logger.Info("[Job] Refreshing dashboard cache...")
		return svcs.Dashboard.RefreshCache(ctx)
	})

	logger.Info("Scheduled recurring jobs")
}
