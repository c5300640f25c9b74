package rules

import (
	"time"

	"github.com/keralakitchen/kitchen-backend/internal/models"
)

// CutoffHour is the local hour after which tomorrow's menu is locked.
const CutoffHour = 12

// CanEditNextDay reports whether now is before today's cutoff. The day and
// the cutoff are taken in now's location, so callers pass a time already
// converted to the kitchen's zone.
func CanEditNextDay(now time.Time) bool {
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), CutoffHour, 0, 0, 0, now.Location())
	return now.Before(cutoff)
}

// DefaultCutoffTime is the display cutoff stored on a menu when the admin leaves it blank.
func DefaultCutoffTime(slot models.TimeSlot) string {
	if slot == models.SlotNight {
		return "18:00"
	}
	return "12:00"
}

const DateLayout = "2006-01-02"

// Today and Tomorrow format calendar dates in now's location.
func Today(now time.Time) string { return now.Format(DateLayout) }

func Tomorrow(now time.Time) string { return now.AddDate(0, 0, 1).Format(DateLayout) }
