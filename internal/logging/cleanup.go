package logging

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/keralakitchen/kitchen-backend/internal/models"
)

const Retention = 30 * 24 * time.Hour

// PurgeOlderThan deletes system_logs recorded before cutoff.
func PurgeOlderThan(db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return res.RowsAffected, res.Error
}

// StartCleanup purges system_logs past Retention once a day until done closes.
func StartCleanup(db *gorm.DB, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				n, err := PurgeOlderThan(db, time.Now().Add(-Retention))
				if err != nil {
					slog.Error("log cleanup failed", "action", "logging.cleanup", "error", err)
				} else if n > 0 {
					slog.Info("log cleanup completed", "deleted", n)
				}
			case <-done:
				return
			}
		}
	}()
}
