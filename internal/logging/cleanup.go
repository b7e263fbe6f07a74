package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/dashboard-backend/internal/models"
	"gorm.io/gorm"
)

// StartCleanup deletes system_logs older than retention once a day until
// ctx is cancelled.
func StartCleanup(ctx context.Context, db *gorm.DB, retention time.Duration) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				deleted, err := PurgeSystemLogs(ctx, db, time.Now().Add(-retention))
				if err != nil {
					slog.Error("system_logs.cleanup_failed", "error", err)
				} else if deleted > 0 {
					slog.Info("system_logs.cleanup_completed", "deleted", deleted)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// PurgeSystemLogs removes records logged before cutoff.
func PurgeSystemLogs(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.WithContext(ctx).Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}
