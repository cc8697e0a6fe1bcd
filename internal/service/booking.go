package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"turnex/internal/availability"
	"turnex/internal/domain"
	"turnex/internal/repository"
	"turnex/pkg/validator"
)

type BookingServiceImpl struct {
	repo        repository.BookingRepository
	serviceRepo repository.ServiceRepository
	schedule    ScheduleService
	logger      *zap.Logger
}

func NewBookingService(
	repo repository.BookingRepository,
	serviceRepo repository.ServiceRepository,
	schedule ScheduleService,
	logger *zap.Logger,
) *BookingServiceImpl {
	return &BookingServiceImpl{
		repo:        repo,
		serviceRepo: serviceRepo,
		schedule:    schedule,
		logger:      logger,
	}
}

// Create places a booking after an authoritative fit check against the
// current state for that date. The duration is resolved from the service
// catalog exactly once, here, and stored on the booking. The fit check and
// the insert are not one atomic step; the unique slot constraint in the
// repository settles whichever race remains, surfacing as ErrSlotConflict.
//
// New bookings start out confirmed: there is no payment or approval step in
// this product, so a created booking is immediately firm.
func (s *BookingServiceImpl) Create(ctx context.Context, dto domain.CreateBookingDTO) (*domain.Booking, error) {
	date, err := availability.ParseDateKey(dto.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
	}
	if availability.MinuteOfDay(dto.Time) < 0 {
		return nil, fmt.Errorf("%w: time must be HH:MM", domain.ErrValidation)
	}
	if !validator.ValidateEmail(dto.CustomerEmail) {
		return nil, fmt.Errorf("%w: malformed customer email", domain.ErrValidation)
	}
	if err := rejectPastStart(date, dto.Time, time.Now()); err != nil {
		return nil, err
	}

	svc, err := s.serviceRepo.GetByID(ctx, dto.ServiceID)
	if err != nil {
		s.logger.Error("fetching service for booking", zap.Int64("serviceID", dto.ServiceID), zap.Error(err))
		return nil, fmt.Errorf("fetching service: %w", err)
	}
	if svc == nil {
		return nil, fmt.Errorf("%w: service %d", domain.ErrNotFound, dto.ServiceID)
	}
	if svc.Duration <= 0 || svc.Duration%availability.SlotMinutes != 0 {
		return nil, fmt.Errorf("%w: service duration %d is not a positive multiple of %d", domain.ErrValidation, svc.Duration, availability.SlotMinutes)
	}

	cfg, err := s.schedule.Get(ctx)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.ListActiveByDate(ctx, dto.Date)
	if err != nil {
		s.logger.Error("fetching bookings for date", zap.String("date", dto.Date), zap.Error(err))
		return nil, fmt.Errorf("fetching bookings: %w", err)
	}

	if !availability.CanFit(cfg, bookings, date, dto.Time, svc.Duration, uuid.Nil) {
		return nil, domain.ErrSlotConflict
	}

	now := time.Now()
	booking := domain.Booking{
		ID:            uuid.New(),
		ServiceID:     svc.ID,
		ServiceName:   svc.Name,
		Date:          dto.Date,
		Time:          dto.Time,
		Duration:      svc.Duration,
		CustomerName:  validator.SanitizeString(dto.CustomerName),
		CustomerEmail: dto.CustomerEmail,
		Status:        domain.BookingStatusConfirmed,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.repo.Create(ctx, booking, availability.SlotSpan(booking.Time, booking.Duration))
	if err != nil {
		if errors.Is(err, domain.ErrSlotConflict) {
			return nil, err
		}
		s.logger.Error("creating booking", zap.Error(err))
		return nil, fmt.Errorf("creating booking: %w", err)
	}

	return &booking, nil
}

func (s *BookingServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("fetching booking", zap.String("id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("fetching booking: %w", err)
	}
	if booking == nil {
		return nil, domain.ErrNotFound
	}
	return booking, nil
}

// Update applies a patch to a booking. Date/time changes re-run the fit
// check with the booking itself excluded, so moving a booking back to its
// own slot never self-conflicts. Status-only patches skip the fit check but
// must follow the status machine.
func (s *BookingServiceImpl) Update(ctx context.Context, id uuid.UUID, dto domain.UpdateBookingDTO) (*domain.Booking, error) {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reschedule := dto.Date != nil || dto.Time != nil

	if dto.Status != nil && *dto.Status != booking.Status {
		if !domain.CanTransition(booking.Status, *dto.Status) {
			return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, booking.Status, *dto.Status)
		}
		booking.Status = *dto.Status
	}

	if reschedule {
		if booking.Status.IsTerminal() {
			return nil, fmt.Errorf("%w: cannot reschedule a %s booking", domain.ErrInvalidTransition, booking.Status)
		}

		if dto.Date != nil {
			booking.Date = *dto.Date
		}
		if dto.Time != nil {
			booking.Time = *dto.Time
		}

		date, err := availability.ParseDateKey(booking.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
		}
		if availability.MinuteOfDay(booking.Time) < 0 {
			return nil, fmt.Errorf("%w: time must be HH:MM", domain.ErrValidation)
		}
		if err := rejectPastStart(date, booking.Time, time.Now()); err != nil {
			return nil, err
		}

		cfg, err := s.schedule.Get(ctx)
		if err != nil {
			return nil, err
		}

		bookings, err := s.repo.ListActiveByDate(ctx, booking.Date)
		if err != nil {
			s.logger.Error("fetching bookings for date", zap.String("date", booking.Date), zap.Error(err))
			return nil, fmt.Errorf("fetching bookings: %w", err)
		}

		if !availability.CanFit(cfg, bookings, date, booking.Time, booking.Duration, booking.ID) {
			return nil, domain.ErrSlotConflict
		}
	}

	booking.UpdatedAt = time.Now()

	slots := []string{}
	if booking.Status.IsActive() {
		slots = availability.SlotSpan(booking.Time, booking.Duration)
	}

	err = s.repo.Update(ctx, *booking, slots)
	if err != nil {
		if errors.Is(err, domain.ErrSlotConflict) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("updating booking", zap.String("id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("updating booking: %w", err)
	}

	return booking, nil
}

// Cancel moves a booking to cancelled and releases its slots. Cancelling an
// id that does not exist is an error, not a silent no-op, so client/server
// state mismatches surface immediately.
func (s *BookingServiceImpl) Cancel(ctx context.Context, id uuid.UUID) error {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !domain.CanTransition(booking.Status, domain.BookingStatusCancelled) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, booking.Status, domain.BookingStatusCancelled)
	}

	booking.Status = domain.BookingStatusCancelled
	booking.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, *booking, []string{}); err != nil {
		s.logger.Error("cancelling booking", zap.String("id", id.String()), zap.Error(err))
		return fmt.Errorf("cancelling booking: %w", err)
	}

	return nil
}

func (s *BookingServiceImpl) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	bookings, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("listing bookings", zap.Error(err))
		return nil, 0, fmt.Errorf("listing bookings: %w", err)
	}

	return bookings, total, nil
}

// ListByDay returns every active booking occupying slots on one date, in
// start order. Unpaginated: a day holds at most as many active bookings as
// it has grid cells.
func (s *BookingServiceImpl) ListByDay(ctx context.Context, dateKey string) ([]domain.Booking, error) {
	if _, err := availability.ParseDateKey(dateKey); err != nil {
		return nil, fmt.Errorf("%w: malformed date", domain.ErrValidation)
	}

	bookings, err := s.repo.ListActiveByDate(ctx, dateKey)
	if err != nil {
		s.logger.Error("listing bookings for date", zap.String("date", dateKey), zap.Error(err))
		return nil, fmt.Errorf("listing bookings for date: %w", err)
	}

	return bookings, nil
}

func rejectPastStart(date time.Time, label string, now time.Time) error {
	start := date.Add(time.Duration(availability.MinuteOfDay(label)) * time.Minute)
	nowLocal := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), 0, 0, time.UTC)
	if start.Before(nowLocal) {
		return fmt.Errorf("%w: booking start is in the past", domain.ErrValidation)
	}
	return nil
}
