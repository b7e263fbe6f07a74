package middleware

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

const syncedUsersCacheSize = 10_000

// UserSyncer is satisfied by services.UserService.
type UserSyncer interface {
	Sync(ctx context.Context, id uuid.UUID, email string) error
}

// SyncUser makes sure the authenticated identity has a users row before any
// feature handler runs, so project inserts never trip the owner foreign key.
// Ids already synced by this process are remembered in an LRU. Must run
// after JWTProtected.
func SyncUser(syncer UserSyncer) fiber.Handler {
	synced, err := lru.New[uuid.UUID, struct{}](syncedUsersCacheSize)
	if err != nil {
		panic(err)
	}

	return func(c *fiber.Ctx) error {
		userID, err := session.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Code: "UNAUTHORIZED", Message: "Unauthorized",
			})
		}

		ctx := logging.SetUserID(c.UserContext(), userID.String())
		c.SetUserContext(ctx)

		if synced.Contains(userID) {
			return c.Next()
		}

		email := session.GetEmail(c)
		if err := syncer.Sync(ctx, userID, email); err != nil {
			logging.Logger(ctx, "middleware.sync_user").Error("user.sync_failed", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Code: "INTERNAL_ERROR", Message: "Internal server error",
			})
		}
		synced.Add(userID, struct{}{})
		return c.Next()
	}
}

// Identify binds the authenticated user id to the request context without
// touching the database. Used when user sync is disabled.
func Identify() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID, err := session.GetUserID(c); err == nil {
			c.SetUserContext(logging.SetUserID(c.UserContext(), userID.String()))
		}
		return c.Next()
	}
}
