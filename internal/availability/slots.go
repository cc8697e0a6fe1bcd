// Package availability is the slot-computation engine: pure functions over a
// schedule configuration and a day's bookings. It performs no I/O and keeps
// no state, so every caller (REST handlers, tests, batch queries) gets the
// same answer for the same inputs.
package availability

import (
	"fmt"
	"time"

	"turnex/internal/domain"
)

// SlotMinutes is the booking grid granularity. All generated start times are
// aligned to it and working-hours boundaries are whole hours, so alignment
// is exact.
const SlotMinutes = 30

const dateKeyLayout = "2006-01-02"

// DateKey returns the canonical YYYY-MM-DD key for a date.
func DateKey(date time.Time) string {
	return date.Format(dateKeyLayout)
}

// ParseDateKey parses a YYYY-MM-DD key back into a date.
func ParseDateKey(key string) (time.Time, error) {
	return time.Parse(dateKeyLayout, key)
}

// MinuteOfDay converts an HH:MM label to minutes since midnight, or -1 when
// the label is malformed.
func MinuteOfDay(label string) int {
	t, err := time.Parse("15:04", label)
	if err != nil {
		return -1
	}
	return t.Hour()*60 + t.Minute()
}

// MinuteLabel formats minutes since midnight as an HH:MM label.
func MinuteLabel(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// IsDayBlocked reports whether the whole date is closed by a day-level block
// or a blocked date range, regardless of working hours.
func IsDayBlocked(cfg domain.ScheduleConfig, date time.Time) bool {
	key := DateKey(date)
	for _, d := range cfg.BlockedDays {
		if d == key {
			return true
		}
	}
	for _, r := range cfg.BlockedDateRanges {
		// ISO date keys compare lexicographically; ranges are inclusive.
		if r.From <= key && key <= r.To {
			return true
		}
	}
	return false
}

// IsWorkingDay reports whether the date's weekday has working hours and the
// date is not closed by a day-level block.
func IsWorkingDay(cfg domain.ScheduleConfig, date time.Time) bool {
	_, ok := cfg.WorkingHours[int(date.Weekday())]
	return ok && !IsDayBlocked(cfg, date)
}

// IsTimeBlocked reports whether the HH:MM label falls inside any [from, to)
// blocked window configured for the date key.
func IsTimeBlocked(cfg domain.ScheduleConfig, dateKey, label string) bool {
	minute := MinuteOfDay(label)
	if minute < 0 {
		return false
	}
	for _, w := range cfg.BlockedTimes[dateKey] {
		from, to := MinuteOfDay(w.From), MinuteOfDay(w.To)
		if from < 0 || to < 0 {
			continue
		}
		if from <= minute && minute < to {
			return true
		}
	}
	return false
}

// GenerateSlots produces the ordered candidate start times for a date: the
// grid from open to close in SlotMinutes steps, minus blocked-time windows.
// A weekday without working hours yields an empty sequence, as does a window
// with close <= open. Day-level blocks are deliberately not consulted here;
// IsWorkingDay is the caller's pre-check.
func GenerateSlots(cfg domain.ScheduleConfig, date time.Time) []string {
	window, ok := cfg.WorkingHours[int(date.Weekday())]
	if !ok {
		return nil
	}
	open, close := window.Open*60, window.Close*60
	if close <= open {
		return nil
	}

	key := DateKey(date)
	slots := make([]string, 0, (close-open)/SlotMinutes)
	for m := open; m < close; m += SlotMinutes {
		label := MinuteLabel(m)
		if IsTimeBlocked(cfg, key, label) {
			continue
		}
		slots = append(slots, label)
	}
	return slots
}
