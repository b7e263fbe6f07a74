package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useJSONDefault(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &out))
	return out
}

func TestLogger(t *testing.T) {
	t.Run("binds component only without request context", func(t *testing.T) {
		buf := useJSONDefault(t)

		Logger(context.Background(), "projects.service").Info("project.create_started")

		line := decodeLine(t, buf)
		assert.Equal(t, "projects.service", line["component"])
		assert.Equal(t, "project.create_started", line["msg"])
		assert.NotContains(t, line, "request_id")
		assert.NotContains(t, line, "user_id")
	})

	t.Run("binds request context values", func(t *testing.T) {
		buf := useJSONDefault(t)

		ctx := WithRequestContext(context.Background(), RequestContext{
			RequestID:     "req-1",
			CorrelationID: "corr-1",
		})
		ctx = SetUserID(ctx, "user-1")

		Logger(ctx, "http").Info("request.completed")

		line := decodeLine(t, buf)
		assert.Equal(t, "req-1", line["request_id"])
		assert.Equal(t, "user-1", line["user_id"])
		assert.Equal(t, "corr-1", line["correlation_id"])
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

type captured struct {
	mu      sync.Mutex
	entries []models.SystemLog
}

func (c *captured) write(batch []models.SystemLog) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, batch...)
	return nil
}

func TestSystemLogHandler(t *testing.T) {
	t.Run("persists only error records with mapped fields", func(t *testing.T) {
		sink := &captured{}
		h := newSystemLogHandler(sink.write, time.Hour)
		logger := slog.New(h).With("component", "projects.repository", "request_id", "req-9")

		logger.Info("project.create_started")
		logger.Error("project.create_failed", "error", errors.New("boom"), "user_id", "u-1", "slug", "alpha")
		h.Stop()

		require.Len(t, sink.entries, 1)
		entry := sink.entries[0]
		assert.Equal(t, "ERROR", entry.Level)
		assert.Equal(t, "project.create_failed", entry.Message)
		assert.Equal(t, "projects.repository", entry.Component)
		assert.Equal(t, "req-9", entry.RequestID)
		assert.Equal(t, "boom", entry.Error)
		require.NotNil(t, entry.UserID)
		assert.Equal(t, "u-1", *entry.UserID)
		assert.JSONEq(t, `{"slug":"alpha"}`, string(entry.Extra))
	})

	t.Run("stop waits for full batches", func(t *testing.T) {
		var (
			mu       sync.Mutex
			written  int
			stopped  bool
			lateRows int
		)
		write := func(batch []models.SystemLog) error {
			time.Sleep(5 * time.Millisecond)
			mu.Lock()
			defer mu.Unlock()
			written += len(batch)
			if stopped {
				lateRows += len(batch)
			}
			return nil
		}
		h := newSystemLogHandler(write, time.Hour)
		logger := slog.New(h)

		total := 2*systemLogBatchSize + 3
		for i := 0; i < total; i++ {
			logger.Error("request.failed", "n", i)
		}
		h.Stop()

		mu.Lock()
		stopped = true
		assert.Equal(t, total, written)
		mu.Unlock()

		time.Sleep(20 * time.Millisecond)
		mu.Lock()
		defer mu.Unlock()
		assert.Zero(t, lateRows)
	})

	t.Run("stop is idempotent", func(t *testing.T) {
		h := newSystemLogHandler((&captured{}).write, time.Hour)
		h.Stop()
		h.Stop()
	})
}

func TestMultiHandler(t *testing.T) {
	var a, b bytes.Buffer
	info := slog.NewJSONHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo})
	errOnly := slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelError})

	logger := slog.New(NewMultiHandler(info, errOnly)).With("component", "test")
	logger.Info("only first")
	assert.NotEmpty(t, a.String())
	assert.Empty(t, b.String())

	logger.Error("both")
	assert.Contains(t, b.String(), `"component":"test"`)
}
