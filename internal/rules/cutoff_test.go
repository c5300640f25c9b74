package rules

import (
	"testing"
	"time"

	"github.com/keralakitchen/kitchen-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCanEditNextDay(t *testing.T) {
	loc := time.FixedZone("GST", 4*60*60)
	day := func(d, h, m int) time.Time { return time.Date(2026, 3, d, h, m, 0, 0, loc) }

	assert.True(t, CanEditNextDay(day(10, 11, 59)))
	assert.False(t, CanEditNextDay(day(10, 12, 0)))
	assert.False(t, CanEditNextDay(day(10, 12, 1)))
	assert.False(t, CanEditNextDay(day(10, 23, 59)))
	assert.True(t, CanEditNextDay(day(11, 0, 0)))
}

func TestCanEditNextDayUsesLocation(t *testing.T) {
	// 09:00 UTC is 13:00 in UTC+4.
	utc := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	assert.True(t, CanEditNextDay(utc))
	assert.False(t, CanEditNextDay(utc.In(time.FixedZone("GST", 4*60*60))))
}

func TestTomorrowAndDefaults(t *testing.T) {
	now := time.Date(2026, 12, 31, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-12-31", Today(now))
	assert.Equal(t, "2027-01-01", Tomorrow(now))
	assert.Equal(t, "12:00", DefaultCutoffTime(models.SlotAfternoon))
	assert.Equal(t, "18:00", DefaultCutoffTime(models.SlotNight))
}
