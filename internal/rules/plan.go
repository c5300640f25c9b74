package rules

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/keralakitchen/kitchen-backend/internal/models"
)

const (
	AfternoonDeliveryTime = "01:00 PM"
	NightDeliveryTime     = "09:00 PM"
)

var clockPattern = regexp.MustCompile(`^(0[1-9]|1[0-2]):([0-5][0-9]) (AM|PM)$`)

// DefaultDeliveryTime is the delivery time assigned at registration.
func DefaultDeliveryTime(pref models.TimePreference) string {
	if pref == models.PreferNight {
		return NightDeliveryTime
	}
	return AfternoonDeliveryTime
}

// SlotDefaultTime is the default time for a single slot.
func SlotDefaultTime(slot models.TimeSlot) string {
	if slot == models.SlotNight {
		return NightDeliveryTime
	}
	return AfternoonDeliveryTime
}

// DeliveryTimes lists the fixed or chosen delivery times for a subscriber.
// Users on both slots always get the two defaults.
func DeliveryTimes(pref models.TimePreference, estimated string) []string {
	if pref == models.PreferBoth {
		return []string{AfternoonDeliveryTime, NightDeliveryTime}
	}
	if estimated == "" {
		return []string{DefaultDeliveryTime(pref)}
	}
	return []string{estimated}
}

// DeliveryTimeEditable is false for users on both slots.
func DeliveryTimeEditable(pref models.TimePreference) bool {
	return pref != models.PreferBoth
}

// ParseClock converts "hh:mm AM/PM" to minutes after midnight.
func ParseClock(s string) (int, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("time %q must look like 01:30 PM", s)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	hour %= 12
	if m[3] == "PM" {
		hour += 12
	}
	return hour*60 + minute, nil
}

// slot windows in minutes after midnight, inclusive.
var slotWindows = map[models.TimeSlot][2]int{
	models.SlotAfternoon: {12 * 60, 15 * 60},
	models.SlotNight:     {19 * 60, 22 * 60},
}

// SlotFor returns the slot whose window contains the time, if any.
func SlotFor(clock string) (models.TimeSlot, bool) {
	mins, err := ParseClock(clock)
	if err != nil {
		return "", false
	}
	for slot, w := range slotWindows {
		if mins >= w[0] && mins <= w[1] {
			return slot, true
		}
	}
	return "", false
}

// ValidDeliveryTime checks that clock parses and falls inside slot's window
// (afternoon 12:00 PM-3:00 PM, night 7:00 PM-10:00 PM).
func ValidDeliveryTime(slot models.TimeSlot, clock string) error {
	mins, err := ParseClock(clock)
	if err != nil {
		return err
	}
	w, ok := slotWindows[slot]
	if !ok {
		return fmt.Errorf("unknown time slot %q", slot)
	}
	if mins < w[0] || mins > w[1] {
		return fmt.Errorf("time %s is outside the %s delivery window", clock, slot)
	}
	return nil
}

// DaysRemaining is the number of started days until expiry, rounded up.
// It is negative once the plan has expired and nil when there is no expiry.
func DaysRemaining(expiry *time.Time, now time.Time) *int {
	if expiry == nil {
		return nil
	}
	days := int(math.Ceil(expiry.Sub(now).Hours() / 24))
	return &days
}
