package middleware

import (
	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/logging"
	"github.com/gofiber/fiber/v2"
)

const correlationHeader = "X-Correlation-ID"

// RequestContext binds the request id (set by the requestid middleware) and
// the caller's correlation id to the request's context.Context for logging.
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID, _ := c.Locals("requestid").(string)
		if requestID == "" {
			requestID = logging.GenerateRequestID()
		}

		c.SetUserContext(logging.WithRequestContext(c.UserContext(), logging.RequestContext{
			RequestID:     requestID,
			CorrelationID: c.Get(correlationHeader),
		}))
		return c.Next()
	}
}
