package middleware

import (
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/session"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// JWTProtected verifies Supabase access tokens. With SUPABASE_JWT_SECRET set
// tokens are checked as HS256; otherwise against the project's JWKS.
func JWTProtected(cfg *config.Config) fiber.Handler {
	jwtCfg := jwtware.Config{
		ContextKey: session.ContextKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Code:    "UNAUTHORIZED",
				Message: "Unauthorized: invalid or expired token",
			})
		},
	}
	if cfg.SupabaseJWTSecret != "" {
		jwtCfg.SigningKey = jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.SupabaseJWTSecret)}
	} else {
		jwtCfg.JWKSetURLs = []string{cfg.JWKSURL()}
	}
	return jwtware.New(jwtCfg)
}
