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

type ScheduleServiceImpl struct {
	repo   repository.ScheduleConfigRepository
	logger *zap.Logger
}

func NewScheduleService(repo repository.ScheduleConfigRepository, logger *zap.Logger) *ScheduleServiceImpl {
	return &ScheduleServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

// Get returns the saved schedule configuration, or the defaults when nothing
// has been saved yet. The configuration is re-read on every call; callers
// that want caching layer it on top.
func (s *ScheduleServiceImpl) Get(ctx context.Context) (domain.ScheduleConfig, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		s.logger.Error("fetching schedule config", zap.Error(err))
		return domain.ScheduleConfig{}, fmt.Errorf("fetching schedule config: %w", err)
	}
	if cfg == nil {
		return domain.DefaultScheduleConfig(), nil
	}

	if cfg.BlockedDays == nil {
		cfg.BlockedDays = []string{}
	}
	if cfg.BlockedDateRanges == nil {
		cfg.BlockedDateRanges = []domain.DateRange{}
	}
	if cfg.BlockedTimes == nil {
		cfg.BlockedTimes = map[string][]domain.TimeRange{}
	}

	return *cfg, nil
}

func (s *ScheduleServiceImpl) Update(ctx context.Context, dto domain.UpdateScheduleConfigDTO) (domain.ScheduleConfig, error) {
	cfg, err := s.Get(ctx)
	if err != nil {
		return domain.ScheduleConfig{}, err
	}

	if dto.WorkingHours != nil {
		cfg.WorkingHours = *dto.WorkingHours
	}
	if dto.BlockedDays != nil {
		cfg.BlockedDays = *dto.BlockedDays
	}
	if dto.BlockedDateRanges != nil {
		cfg.BlockedDateRanges = *dto.BlockedDateRanges
	}
	if dto.BlockedTimes != nil {
		cfg.BlockedTimes = *dto.BlockedTimes
	}

	if err := validateScheduleConfig(cfg); err != nil {
		return domain.ScheduleConfig{}, err
	}

	if err := s.repo.Save(ctx, cfg); err != nil {
		s.logger.Error("saving schedule config", zap.Error(err))
		return domain.ScheduleConfig{}, fmt.Errorf("saving schedule config: %w", err)
	}

	return cfg, nil
}

func validateScheduleConfig(cfg domain.ScheduleConfig) error {
	for day, window := range cfg.WorkingHours {
		if day < 0 || day > 6 {
			return fmt.Errorf("%w: day of week %d out of range", domain.ErrValidation, day)
		}
		if window.Open < 0 || window.Close > 24 || window.Open >= window.Close {
			return fmt.Errorf("%w: working hours %d-%d for day %d", domain.ErrValidation, window.Open, window.Close, day)
		}
	}

	for _, d := range cfg.BlockedDays {
		if _, err := availability.ParseDateKey(d); err != nil {
			return fmt.Errorf("%w: blocked day %q is not a YYYY-MM-DD date", domain.ErrValidation, d)
		}
	}

	for _, r := range cfg.BlockedDateRanges {
		from, err := availability.ParseDateKey(r.From)
		if err != nil {
			return fmt.Errorf("%w: blocked range start %q is not a YYYY-MM-DD date", domain.ErrValidation, r.From)
		}
		to, err := availability.ParseDateKey(r.To)
		if err != nil {
			return fmt.Errorf("%w: blocked range end %q is not a YYYY-MM-DD date", domain.ErrValidation, r.To)
		}
		if to.Before(from) {
			return fmt.Errorf("%w: blocked range %s..%s is reversed", domain.ErrValidation, r.From, r.To)
		}
	}

	for day, windows := range cfg.BlockedTimes {
		if _, err := availability.ParseDateKey(day); err != nil {
			return fmt.Errorf("%w: blocked-times key %q is not a YYYY-MM-DD date", domain.ErrValidation, day)
		}
		for _, w := range windows {
			if _, err := time.Parse("15:04", w.From); err != nil {
				return fmt.Errorf("%w: blocked time %q is not HH:MM", domain.ErrValidation, w.From)
			}
			if _, err := time.Parse("15:04", w.To); err != nil {
				return fmt.Errorf("%w: blocked time %q is not HH:MM", domain.ErrValidation, w.To)
			}
			if availability.MinuteOfDay(w.From) >= availability.MinuteOfDay(w.To) {
				return fmt.Errorf("%w: blocked window %s-%s on %s is empty", domain.ErrValidation, w.From, w.To, day)
			}
		}
	}

	return nil
}
