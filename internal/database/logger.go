package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SentryLogger forwards storage errors to Sentry before handing them to the
// wrapped GORM logger. Record-not-found is not an error worth reporting.
type SentryLogger struct {
	next logger.Interface
}

func NewSentryLogger(next logger.Interface) *SentryLogger {
	return &SentryLogger{next: next}
}

func (s *SentryLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &SentryLogger{next: s.next.LogMode(level)}
}

func (s *SentryLogger) Info(ctx context.Context, msg string, data ...any) {
	s.next.Info(ctx, msg, data...)
}

func (s *SentryLogger) Warn(ctx context.Context, msg string, data ...any) {
	s.next.Warn(ctx, msg, data...)
}

func (s *SentryLogger) Error(ctx context.Context, msg string, data ...any) {
	s.capture(ctx, fmt.Errorf(msg, data...))
	s.next.Error(ctx, msg, data...)
}

func (s *SentryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.capture(ctx, err)
	}
	s.next.Trace(ctx, begin, fc, err)
}

func (s *SentryLogger) capture(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.CaptureException(err)
}
