package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/Scoheart/lostfound-backend/internal/config"
	"github.com/Scoheart/lostfound-backend/internal/database"
	"github.com/Scoheart/lostfound-backend/internal/dto"
	"github.com/Scoheart/lostfound-backend/internal/handlers"
	"github.com/Scoheart/lostfound-backend/internal/logging"
	"github.com/Scoheart/lostfound-backend/internal/middleware"
	"github.com/Scoheart/lostfound-backend/internal/routes"
	"github.com/Scoheart/lostfound-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	stdoutHandler := logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// DB log handler (ERROR+ async batch)
	dbLogHandler := logging.NewDBHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(stdoutHandler, dbLogHandler)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, 30, cleanupDone)

	// Bootstrap sysadmin
	if err := database.EnsureSysadmin(database.DB, cfg); err != nil {
		slog.Error("sysadmin bootstrap failed", "error", err)
		os.Exit(1)
	}

	// Services
	authService := services.NewAuthService(database.DB, cfg)
	userService := services.NewUserService(database.DB)
	lostItemService := services.NewLostItemService(database.DB)
	foundItemService := services.NewFoundItemService(database.DB)
	claimService := services.NewClaimService(database.DB)
	reportService := services.NewReportService(database.DB, userService)
	itemCommentService := services.NewItemCommentService(database.DB)
	postCommentService := services.NewPostCommentService(database.DB)
	postService := services.NewPostService(database.DB)
	announcementService := services.NewAnnouncementService(database.DB)
	fileService := services.NewFileService(cfg)

	// Handlers
	h := &routes.Handlers{
		Auth:         handlers.NewAuthHandler(authService),
		User:         handlers.NewUserHandler(userService, fileService),
		Admin:        handlers.NewAdminHandler(userService),
		Resident:     handlers.NewResidentHandler(userService),
		LostItem:     handlers.NewLostItemHandler(lostItemService),
		FoundItem:    handlers.NewFoundItemHandler(foundItemService),
		Claim:        handlers.NewClaimHandler(claimService),
		Report:       handlers.NewReportHandler(reportService),
		ItemComment:  handlers.NewItemCommentHandler(itemCommentService),
		PostComment:  handlers.NewPostCommentHandler(postCommentService),
		Post:         handlers.NewPostHandler(postService),
		Announcement: handlers.NewAnnouncementHandler(announcementService),
		Upload:       handlers.NewUploadHandler(fileService),
		System:       handlers.NewSystemHandler(database.DB, userService),
	}

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    8 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, h)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "服务器内部错误"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "服务器内部错误"
	}

	return c.Status(code).JSON(dto.Fail(message, code))
}
