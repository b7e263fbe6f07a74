package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/features"
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	healthHandler *handlers.HealthHandler,
	userHandler *handlers.UserHandler,
	userService *services.UserService,
	featureList []features.Feature,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		LimitReached: func(c *fiber.Ctx) error {
			return handlers.Fail(c, fiber.StatusTooManyRequests, "RATE_LIMITED", "Too many requests")
		},
	}))

	// Health (public)
	api.Get("/health", healthHandler.Check)

	// Everything below requires a verified Supabase session. The group
	// middleware covers all of /api, so public routes stay above it.
	var identify fiber.Handler
	if cfg.SyncUsers {
		identify = middleware.SyncUser(userService)
	} else {
		identify = middleware.Identify()
	}
	protected := api.Group("", middleware.JWTProtected(cfg), identify)

	protected.Get("/me", userHandler.Me)
	protected.Patch("/me", userHandler.UpdateMe)

	for _, f := range featureList {
		f.RegisterRoutes(protected, db, cfg)
	}
}
