package logging

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// RequestContext is bound to every log record emitted while serving a request.
type RequestContext struct {
	RequestID     string
	UserID        string
	CorrelationID string
}

type requestContextKey struct{}

func WithRequestContext(ctx context.Context, rc RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, rc)
}

func FromContext(ctx context.Context) (RequestContext, bool) {
	rc, ok := ctx.Value(requestContextKey{}).(RequestContext)
	return rc, ok
}

// SetUserID returns a copy of ctx whose request context carries userID.
func SetUserID(ctx context.Context, userID string) context.Context {
	rc, _ := FromContext(ctx)
	rc.UserID = userID
	return WithRequestContext(ctx, rc)
}

func GenerateRequestID() string {
	return uuid.NewString()
}

// Logger returns a child of the default logger for a dotted component name
// (e.g. "projects.service"). Request context values present in ctx are bound.
//
// Event messages follow domain.action_state:
//
//	logging.Logger(ctx, "projects.service").Info("project.create_completed", "project_id", id)
func Logger(ctx context.Context, component string) *slog.Logger {
	args := []any{"component", component}
	if rc, ok := FromContext(ctx); ok {
		if rc.RequestID != "" {
			args = append(args, "request_id", rc.RequestID)
		}
		if rc.UserID != "" {
			args = append(args, "user_id", rc.UserID)
		}
		if rc.CorrelationID != "" {
			args = append(args, "correlation_id", rc.CorrelationID)
		}
	}
	return slog.Default().With(args...)
}
