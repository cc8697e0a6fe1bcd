package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"turnex/internal/availability"
	"turnex/internal/domain"
	"turnex/internal/repository"
)

type AvailabilityServiceImpl struct {
	bookingRepo repository.BookingRepository
	schedule    ScheduleService
	logger      *zap.Logger
}

func NewAvailabilityService(
	bookingRepo repository.BookingRepository,
	schedule ScheduleService,
	logger *zap.Logger,
) *AvailabilityServiceImpl {
	return &AvailabilityServiceImpl{
		bookingRepo: bookingRepo,
		schedule:    schedule,
		logger:      logger,
	}
}

// DaySlots returns the start labels a booking of the given duration could
// take on the date, in chronological order. A blocked or non-working date
// yields an empty list, not an error.
func (s *AvailabilityServiceImpl) DaySlots(ctx context.Context, dateKey string, duration int) ([]string, error) {
	date, err := availability.ParseDateKey(dateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
	}
	if duration <= 0 || duration%availability.SlotMinutes != 0 {
		return nil, fmt.Errorf("%w: duration must be a positive multiple of %d minutes", domain.ErrValidation, availability.SlotMinutes)
	}

	cfg, err := s.schedule.Get(ctx)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.ListActiveByDate(ctx, dateKey)
	if err != nil {
		s.logger.Error("fetching bookings for date", zap.String("date", dateKey), zap.Error(err))
		return nil, fmt.Errorf("fetching bookings: %w", err)
	}

	return availability.FreeSlots(cfg, bookings, date, duration), nil
}

// Month reports, per date of the month, whether at least one slot of the
// given duration is still free. Dates whose booking fetch fails are assumed
// free and the error is logged; a stale optimistic answer here is corrected
// by the authoritative check at booking time.
func (s *AvailabilityServiceImpl) Month(ctx context.Context, year, month, duration int) (map[string]availability.DayAvailability, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", domain.ErrValidation)
	}
	if year < 2000 || year > 2100 {
		return nil, fmt.Errorf("%w: year out of range", domain.ErrValidation)
	}
	if duration <= 0 || duration%availability.SlotMinutes != 0 {
		return nil, fmt.Errorf("%w: duration must be a positive multiple of %d minutes", domain.ErrValidation, availability.SlotMinutes)
	}

	cfg, err := s.schedule.Get(ctx)
	if err != nil {
		return nil, err
	}

	fetch := func(ctx context.Context, dateKey string) ([]domain.Booking, error) {
		bookings, err := s.bookingRepo.ListActiveByDate(ctx, dateKey)
		if err != nil {
			s.logger.Warn("month availability fetch failed, assuming free",
				zap.String("date", dateKey), zap.Error(err))
		}
		return bookings, err
	}

	opts := availability.MonthOptions{
		Duration:     duration,
		OnFetchError: availability.AssumeFree,
	}

	dates := availability.MonthDates(year, time.Month(month))

	return availability.MonthAvailability(ctx, cfg, dates, fetch, opts), nil
}
