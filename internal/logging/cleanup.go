package logging

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/trafficwatch/internal/models"
	"gorm.io/gorm"
)

const Retention = 30 * 24 * time.Hour

// Cleanup deletes system_logs older than the retention window and returns
// the number of rows removed.
func Cleanup(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Where("timestamp < ?", now.Add(-Retention)).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}

// StartCleanup runs Cleanup once a day until done is closed.
func StartCleanup(db *gorm.DB, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				deleted, err := Cleanup(db, time.Now())
				if err != nil {
					slog.Error("log cleanup failed", "component", "logging", "error", err)
				} else if deleted > 0 {
					slog.Info("log cleanup completed", "component", "logging", "deleted", deleted)
				}
			case <-done:
				return
			}
		}
	}()
}
