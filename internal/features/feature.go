package features

import (
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Feature is a self-contained slice of the API (its repository, service
// and handlers) mounted under the authenticated route group.
type Feature interface {
	// ID names the feature in logs.
	ID() string

	// RegisterRoutes mounts the feature's routes. The router already
	// requires a verified session.
	RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}
