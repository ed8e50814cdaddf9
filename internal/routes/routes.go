package routes

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/pawhelp/pawhelp-backend/internal/config"
	"github.com/pawhelp/pawhelp-backend/internal/handlers"
	"github.com/pawhelp/pawhelp-backend/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	reportHandler *handlers.ReportHandler,
	adoptionHandler *handlers.AdoptionHandler,
	moderationHandler *handlers.ModerationHandler,
	feedHandler *handlers.FeedHandler,
	geoHandler *handlers.GeoHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Health)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Citizen surface. Submissions work anonymously; a valid token just
	// attributes the record to its author.
	api.Post("/reports", middleware.OptionalJWT(cfg), reportHandler.Submit)
	api.Get("/reports", reportHandler.List)
	api.Get("/reports/:id", reportHandler.Get)
	api.Get("/reports/:id/evidence", reportHandler.EvidenceURL)
	api.Post("/adoptions", middleware.OptionalJWT(cfg), adoptionHandler.Submit)

	// Geocoding proxy for the submission form
	api.Get("/geo/search", geoHandler.Search)
	api.Get("/geo/reverse", geoHandler.Reverse)

	// Staff console (protected + staff role required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.StaffRequired(db, cfg))
	admin.Get("/reports", moderationHandler.List)
	admin.Get("/reports/:id", moderationHandler.Get)
	admin.Put("/reports/:id/status", moderationHandler.SetStatus)
	admin.Put("/reports/:id/publish", moderationHandler.SetPublished)
	admin.Patch("/reports/:id", moderationHandler.Edit)
	admin.Delete("/reports/:id", moderationHandler.Delete)
	admin.Post("/reports/undo", moderationHandler.Undo)
	admin.Get("/adoptions", adoptionHandler.List)
	admin.Get("/adoptions/:id", adoptionHandler.Get)
	admin.Put("/adoptions/:id/decision", adoptionHandler.Decide)

	// Live moderation feed over websocket
	admin.Get("/feed", feedHandler.Upgrade, websocket.New(feedHandler.Stream))
}
