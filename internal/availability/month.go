package availability

import (
	"context"
	"sync"
	"time"

	"turnex/internal/domain"
)

// FetchPolicy names what a month scan does with a per-date fetch failure.
type FetchPolicy string

const (
	// AssumeFree marks a date available when its bookings cannot be
	// fetched. A transient error must never make a day look full and
	// discourage a booking; the write path re-checks authoritatively.
	AssumeFree FetchPolicy = "assume-free"

	// AssumeFull marks a date unavailable on fetch failure.
	AssumeFull FetchPolicy = "assume-full"
)

// BookingFetcher loads the bookings occupying slots on one date key.
type BookingFetcher func(ctx context.Context, dateKey string) ([]domain.Booking, error)

type DayAvailability struct {
	Free bool `json:"free"`
}

// MonthOptions tunes a MonthAvailability scan. Duration is the occupancy
// fallback for bookings without a stored one. Now anchors the past-date
// cutoff (zero means time.Now). OnFetchError defaults to AssumeFree.
type MonthOptions struct {
	Duration     int
	Now          time.Time
	OnFetchError FetchPolicy
}

// MonthAvailability annotates every date of a calendar grid with whether it
// still has at least one unoccupied generated slot. Non-working, blocked and
// past dates are marked not free without a fetch. All remaining dates are
// fetched concurrently; each date settles independently, so one failure
// never blocks or fails the others.
func MonthAvailability(ctx context.Context, cfg domain.ScheduleConfig, dates []time.Time, fetch BookingFetcher, opts MonthOptions) map[string]DayAvailability {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	// Compare date keys, not instants: dates are UTC midnights while now is
	// wall clock, and today must count as today in any zone.
	todayKey := DateKey(now)

	policy := opts.OnFetchError
	if policy == "" {
		policy = AssumeFree
	}

	result := make(map[string]DayAvailability, len(dates))

	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, date := range dates {
		key := DateKey(date)

		if key < todayKey || !IsWorkingDay(cfg, date) {
			result[key] = DayAvailability{Free: false}
			continue
		}

		wg.Add(1)
		go func(date time.Time, key string) {
			defer wg.Done()

			free := false
			bookings, err := fetch(ctx, key)
			if err != nil {
				free = policy == AssumeFree
			} else {
				occupied := ExpandOccupancy(bookings, opts.Duration)
				for _, slot := range GenerateSlots(cfg, date) {
					if _, taken := occupied[slot]; !taken {
						free = true
						break
					}
				}
			}

			mu.Lock()
			result[key] = DayAvailability{Free: free}
			mu.Unlock()
		}(date, key)
	}

	wg.Wait()
	return result
}

// MonthDates returns every date of the given month, in order.
func MonthDates(year int, month time.Month) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	var dates []time.Time
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
