package availability

import (
	"turnex/internal/domain"
)

// Segments returns how many grid cells a duration occupies, never less
// than one. A duration that is not a multiple of SlotMinutes rounds up.
func Segments(duration int) int {
	segments := (duration + SlotMinutes - 1) / SlotMinutes
	if segments < 1 {
		segments = 1
	}
	return segments
}

// SlotSpan lists the grid-cell labels a booking starting at startTime with
// the given duration occupies, or nil when startTime is malformed.
func SlotSpan(startTime string, duration int) []string {
	start := MinuteOfDay(startTime)
	if start < 0 {
		return nil
	}
	labels := make([]string, 0, Segments(duration))
	for i := 0; i < Segments(duration); i++ {
		labels = append(labels, MinuteLabel(start+i*SlotMinutes))
	}
	return labels
}

// ExpandOccupancy converts bookings (already filtered to one date) into the
// set of grid cells they occupy: Segments(duration) consecutive labels
// starting at each booking's time. A booking of 60 minutes at 10:00 blocks
// both 10:00 and 10:30, which is what keeps overlapping bookings of
// different durations apart. Overlaps between bookings simply union.
// Bookings without a stored duration fall back to fallbackDuration
// (SlotMinutes when that is unset too).
func ExpandOccupancy(bookings []domain.Booking, fallbackDuration int) map[string]struct{} {
	if fallbackDuration <= 0 {
		fallbackDuration = SlotMinutes
	}

	occupied := make(map[string]struct{})
	for _, b := range bookings {
		duration := b.Duration
		if duration <= 0 {
			duration = fallbackDuration
		}
		start := MinuteOfDay(b.Time)
		if start < 0 {
			continue
		}
		for i := 0; i < Segments(duration); i++ {
			occupied[MinuteLabel(start+i*SlotMinutes)] = struct{}{}
		}
	}
	return occupied
}
