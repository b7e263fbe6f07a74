package middleware

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS allows the dashboard origins listed in CORS_ORIGINS. Credentials are
// only allowed for an explicit origin list; fiber rejects them with "*".
func CORS(cfg *config.Config) fiber.Handler {
	origins := strings.Join(strings.Fields(strings.ReplaceAll(cfg.CORSOrigins, ",", " ")), ",")
	if origins == "" {
		origins = "*"
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept, X-Request-ID, X-Correlation-ID",
		AllowMethods:     fiber.MethodGet + "," + fiber.MethodPost + "," + fiber.MethodPatch + "," + fiber.MethodDelete + "," + fiber.MethodOptions,
		ExposeHeaders:    "X-Request-ID",
		AllowCredentials: origins != "*",
		MaxAge:           600,
	})
}
