package availability

import (
	"time"

	"github.com/google/uuid"

	"turnex/internal/domain"
)

// CanFit is the fit check: whether a booking of the given duration may start
// at startTime on date without leaving working hours, touching a blocked
// window or a blocked day, or overlapping the occupancy of bookingsOnDate.
// Pass excludeID to ignore one booking (editing a booking must not conflict
// with itself); uuid.Nil excludes nothing.
//
// Duration is taken as already validated by the caller; a value that is not
// a multiple of SlotMinutes simply rounds up to whole grid cells.
func CanFit(cfg domain.ScheduleConfig, bookingsOnDate []domain.Booking, date time.Time, startTime string, duration int, excludeID uuid.UUID) bool {
	window, ok := cfg.WorkingHours[int(date.Weekday())]
	if !ok || IsDayBlocked(cfg, date) {
		return false
	}

	start := MinuteOfDay(startTime)
	if start < 0 || duration <= 0 {
		return false
	}
	// The booking must finish by closing time, even when every cell it
	// touches is individually open.
	if start+duration > window.Close*60 {
		return false
	}

	rest := bookingsOnDate
	if excludeID != uuid.Nil {
		rest = make([]domain.Booking, 0, len(bookingsOnDate))
		for _, b := range bookingsOnDate {
			if b.ID != excludeID {
				rest = append(rest, b)
			}
		}
	}
	occupied := ExpandOccupancy(rest, duration)

	open := make(map[string]struct{})
	for _, slot := range GenerateSlots(cfg, date) {
		open[slot] = struct{}{}
	}

	for i := 0; i < Segments(duration); i++ {
		label := MinuteLabel(start + i*SlotMinutes)
		if _, ok := open[label]; !ok {
			return false
		}
		if _, ok := occupied[label]; ok {
			return false
		}
	}
	return true
}

// FreeSlots returns the generated start times on date where a booking of the
// given duration still fits. Non-working and blocked days yield an empty
// sequence rather than an error.
func FreeSlots(cfg domain.ScheduleConfig, bookingsOnDate []domain.Booking, date time.Time, duration int) []string {
	if !IsWorkingDay(cfg, date) {
		return nil
	}

	var free []string
	for _, slot := range GenerateSlots(cfg, date) {
		if CanFit(cfg, bookingsOnDate, date, slot, duration, uuid.Nil) {
			free = append(free, slot)
		}
	}
	return free
}
