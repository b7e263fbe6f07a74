package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	systemLogBatchSize     = 50
	systemLogFlushInterval = 5 * time.Second
)

// systemLogSink is shared by a SystemLogHandler and all handlers derived
// from it through WithAttrs. All writes happen on the flush loop, so Stop
// returns only after the last batch is written.
type systemLogSink struct {
	write    func([]models.SystemLog) error
	mu       sync.Mutex
	buffer   []models.SystemLog
	ticker   *time.Ticker
	full     chan struct{}
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
}

// SystemLogHandler is an slog.Handler that batches ERROR+ records into the
// system_logs table.
type SystemLogHandler struct {
	sink  *systemLogSink
	attrs []slog.Attr
}

func NewSystemLogHandler(db *gorm.DB) *SystemLogHandler {
	return newSystemLogHandler(func(batch []models.SystemLog) error {
		return db.CreateInBatches(batch, systemLogBatchSize).Error
	}, systemLogFlushInterval)
}

func newSystemLogHandler(write func([]models.SystemLog) error, interval time.Duration) *SystemLogHandler {
	sink := &systemLogSink{
		write:   write,
		buffer:  make([]models.SystemLog, 0, systemLogBatchSize),
		ticker:  time.NewTicker(interval),
		full:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go sink.flushLoop()
	return &SystemLogHandler{sink: sink}
}

func (s *systemLogSink) flushLoop() {
	defer close(s.stopped)
	for {
		select {
		case <-s.ticker.C:
			s.flush()
		case <-s.full:
			s.flush()
		case <-s.done:
			s.flush()
			return
		}
	}
}

func (s *systemLogSink) flush() {
	s.mu.Lock()
	if len(s.buffer) == 0 {
		s.mu.Unlock()
		return
	}
	batch := s.buffer
	s.buffer = make([]models.SystemLog, 0, systemLogBatchSize)
	s.mu.Unlock()

	// Warn stays below this handler's threshold, so a failing database
	// cannot feed records back into the buffer.
	if err := s.write(batch); err != nil {
		slog.Warn("system_logs.flush_failed", "error", err, "count", len(batch))
	}
}

func (s *systemLogSink) push(entry models.SystemLog) {
	s.mu.Lock()
	s.buffer = append(s.buffer, entry)
	full := len(s.buffer) >= systemLogBatchSize
	s.mu.Unlock()

	if full {
		select {
		case s.full <- struct{}{}:
		default:
		}
	}
}

// Stop flushes buffered records and waits for the flush loop to exit.
func (h *SystemLogHandler) Stop() {
	h.sink.stopOnce.Do(func() {
		h.sink.ticker.Stop()
		close(h.sink.done)
	})
	<-h.sink.stopped
}

// Enabled only handles ERROR and above.
func (h *SystemLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *SystemLogHandler) Handle(_ context.Context, record slog.Record) error {
	entry := models.SystemLog{
		ID:        uuid.New(),
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]any)
	apply := func(a slog.Attr) {
		switch a.Key {
		case "component":
			entry.Component = a.Value.String()
		case "request_id":
			entry.RequestID = a.Value.String()
		case "user_id":
			s := a.Value.String()
			entry.UserID = &s
		case "error":
			entry.Error = a.Value.String()
		case "app":
			// constant per process
		default:
			extra[a.Key] = a.Value.Resolve().Any()
		}
	}
	for _, a := range h.attrs {
		apply(a)
	}
	record.Attrs(func(a slog.Attr) bool {
		apply(a)
		return true
	})

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	h.sink.push(entry)
	return nil
}

func (h *SystemLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &SystemLogHandler{sink: h.sink, attrs: merged}
}

// WithGroup keeps keys flat; system_logs has no notion of groups.
func (h *SystemLogHandler) WithGroup(string) slog.Handler {
	return h
}
