package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/logging"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := "ok"
	dbStatus := "ok"
	if err := database.Ping(c.UserContext(), h.db); err != nil {
		logging.Logger(c.UserContext(), "handlers.health").Error("health.db_ping_failed", "error", err)
		status = "degraded"
		dbStatus = "unhealthy"
	}

	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(dto.HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
	})
}
