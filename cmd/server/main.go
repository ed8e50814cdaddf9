package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/pawhelp/pawhelp-backend/internal/config"
	"github.com/pawhelp/pawhelp-backend/internal/database"
	"github.com/pawhelp/pawhelp-backend/internal/feed"
	"github.com/pawhelp/pawhelp-backend/internal/geo"
	"github.com/pawhelp/pawhelp-backend/internal/handlers"
	"github.com/pawhelp/pawhelp-backend/internal/logging"
	"github.com/pawhelp/pawhelp-backend/internal/middleware"
	"github.com/pawhelp/pawhelp-backend/internal/routes"
	"github.com/pawhelp/pawhelp-backend/internal/services"
	"github.com/pawhelp/pawhelp-backend/internal/store"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(db)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cfg.LogRetentionDays, cleanupDone)

	// Evidence storage. Without config, submissions still work; only
	// file uploads and signed URLs fail fast.
	var evidenceStore store.EvidenceStore = store.DisabledEvidenceStore{}
	if cfg.EvidenceConfigured() {
		s3Store, err := store.NewS3EvidenceStore(context.Background(), store.S3Options{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
		})
		if err != nil {
			slog.Error("evidence storage init failed", "error", err)
			os.Exit(1)
		}
		evidenceStore = s3Store
	} else {
		slog.Warn("evidence storage not configured; uploads disabled")
	}

	// Redis for the live moderation feed
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	publisher := feed.NewRedisPublisher(rdb)

	records := store.NewGormStore(db)

	hubCtx, hubCancel := context.WithCancel(context.Background())
	hub := feed.NewHub(feed.NewRedisSubscriber(rdb), func(ctx context.Context) ([]feed.Summary, error) {
		reports, _, err := records.ListReports(ctx, store.ReportFilter{Limit: 100})
		if err != nil {
			return nil, err
		}
		summaries := make([]feed.Summary, 0, len(reports))
		for i := range reports {
			summaries = append(summaries, feed.Summarize(&reports[i]))
		}
		return summaries, nil
	})
	go hub.Run(hubCtx)

	// Services
	authService := services.NewAuthService(db, cfg)
	submissionService := services.NewSubmissionService(records, evidenceStore, publisher)
	moderationService := services.NewModerationService(records, publisher, cfg.UndoGraceWindow)
	adoptionService := services.NewAdoptionService(records)
	evidenceService := services.NewEvidenceService(records, evidenceStore, cfg.SignedURLExpiry)
	geocoder := geo.NewClient(cfg.GeocoderURL)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler(db, evidenceService)
	reportHandler := handlers.NewReportHandler(submissionService, moderationService, evidenceService)
	adoptionHandler := handlers.NewAdoptionHandler(adoptionService)
	moderationHandler := handlers.NewModerationHandler(moderationService)
	feedHandler := handlers.NewFeedHandler(hub)
	geoHandler := handlers.NewGeoHandler(geocoder)

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
		BodyLimit:    16 * 1024 * 1024, // evidence photos and short videos
		ErrorHandler: customErrorHandler,
	})

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
	routes.Setup(app, cfg, db, authHandler, healthHandler, reportHandler, adoptionHandler, moderationHandler, feedHandler, geoHandler)

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
	hub.Stop()
	hubCancel()
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if err := rdb.Close(); err != nil {
		slog.Error("redis close error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
