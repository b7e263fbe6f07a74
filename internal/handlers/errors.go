package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/logging"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CodedError is implemented by domain errors that carry their own stable
// code and HTTP status.
type CodedError interface {
	error
	Code() string
	StatusCode() int
}

func Fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{
		Error: true, Code: code, Message: message,
	})
}

// RespondError writes err as the JSON error body. Details of 5xx errors
// are logged, never returned.
func RespondError(c *fiber.Ctx, err error) error {
	var coded CodedError
	if errors.As(err, &coded) {
		return Fail(c, coded.StatusCode(), coded.Code(), coded.Error())
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return Fail(c, fiber.StatusBadRequest, "VALIDATION_FAILED", validationMessage(validationErrs))
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code < 500 {
		return Fail(c, fiberErr.Code, "", fiberErr.Message)
	}

	logging.Logger(c.UserContext(), "http").Error("request.failed",
		"method", c.Method(), "path", c.Path(), "error", err)
	return Fail(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}

// ErrorHandler is the fiber.Config ErrorHandler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}
	if sendErr := RespondError(c, err); sendErr != nil {
		slog.Error("failed to write error response", "error", sendErr)
		return sendErr
	}
	return nil
}

func validationMessage(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Invalid request"
	}
	first := errs[0]
	return "Invalid field " + first.Field() + ": failed " + first.Tag() + " validation"
}
