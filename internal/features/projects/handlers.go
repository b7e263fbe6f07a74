package projects

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProjectHandler struct {
	service *Service
}

func NewProjectHandler(service *Service) *ProjectHandler {
	return &ProjectHandler{service: service}
}

func (h *ProjectHandler) List(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	projects, total, err := h.service.ListOwned(c.UserContext(), userID)
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return c.JSON(ProjectListResponse{Projects: projects, Total: total})
}

func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return handlers.Fail(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	project, err := h.service.Create(c.UserContext(), userID, req)
	if err != nil {
		if errors.Is(err, ErrInvalidSlug) {
			return handlers.Fail(c, fiber.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		}
		return handlers.RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(project)
}

func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c)
	}

	project, err := h.service.Get(c.UserContext(), userID, projectID)
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return c.JSON(project)
}

func (h *ProjectHandler) GetBySlug(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	project, err := h.service.GetBySlug(c.UserContext(), userID, c.Params("slug"))
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return c.JSON(project)
}

func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c)
	}

	var req UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return handlers.Fail(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	project, err := h.service.Update(c.UserContext(), userID, projectID, req)
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return c.JSON(project)
}

func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c)
	}

	if err := h.service.Delete(c.UserContext(), userID, projectID); err != nil {
		return handlers.RespondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func unauthorized(c *fiber.Ctx) error {
	return handlers.Fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
}

func invalidID(c *fiber.Ctx) error {
	return handlers.Fail(c, fiber.StatusBadRequest, "INVALID_ID", "Invalid project ID")
}
