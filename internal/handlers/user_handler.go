package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/session"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return Fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
	}

	user, err := h.userService.Get(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return Fail(c, fiber.StatusNotFound, "USER_NOT_FOUND", "User not found")
		}
		return RespondError(c, err)
	}

	return c.JSON(user)
}

func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return Fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return Fail(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	user, err := h.userService.UpdateProfile(c.UserContext(), userID, req)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return Fail(c, fiber.StatusNotFound, "USER_NOT_FOUND", "User not found")
		}
		return RespondError(c, err)
	}

	return c.JSON(user)
}
