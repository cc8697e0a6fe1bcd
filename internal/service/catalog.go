package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"turnex/internal/availability"
	"turnex/internal/domain"
	"turnex/internal/repository"
	"turnex/internal/storage"
)

type CatalogServiceImpl struct {
	repo        repository.ServiceRepository
	bookingRepo repository.BookingRepository
	storage     storage.FileStorage
	logger      *zap.Logger
}

func NewCatalogService(
	repo repository.ServiceRepository,
	bookingRepo repository.BookingRepository,
	fileStorage storage.FileStorage,
	logger *zap.Logger,
) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		storage:     fileStorage,
		logger:      logger,
	}
}

func validateServiceDuration(duration int) error {
	if duration <= 0 || duration%availability.SlotMinutes != 0 {
		return fmt.Errorf("%w: duration must be a positive multiple of %d minutes", domain.ErrValidation, availability.SlotMinutes)
	}
	return nil
}

func (s *CatalogServiceImpl) Create(ctx context.Context, dto domain.CreateServiceDTO) (int64, error) {
	if strings.TrimSpace(dto.Name) == "" {
		return 0, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if err := validateServiceDuration(dto.Duration); err != nil {
		return 0, err
	}
	if dto.Price < 0 {
		return 0, fmt.Errorf("%w: price cannot be negative", domain.ErrValidation)
	}

	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("creating service", zap.Error(err))
		return 0, fmt.Errorf("creating service: %w", err)
	}

	return id, nil
}

func (s *CatalogServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("fetching service", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("fetching service: %w", err)
	}
	if svc == nil {
		return nil, domain.ErrNotFound
	}
	return svc, nil
}

// Update edits catalog fields. Changing the duration affects only future
// bookings: existing bookings keep the duration captured at creation time.
func (s *CatalogServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateServiceDTO) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if dto.Duration != nil {
		if err := validateServiceDuration(*dto.Duration); err != nil {
			return err
		}
	}
	if dto.Price != nil && *dto.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", domain.ErrValidation)
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		s.logger.Error("updating service", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("updating service: %w", err)
	}

	return nil
}

// Delete removes a service unless active bookings still reference it from
// today forward.
func (s *CatalogServiceImpl) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	today := availability.DateKey(time.Now())
	count, err := s.bookingRepo.CountActiveByService(ctx, id, today)
	if err != nil {
		s.logger.Error("counting bookings for service", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("counting bookings: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %d upcoming bookings reference this service", domain.ErrServiceHasBookings, count)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		s.logger.Error("deleting service", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("deleting service: %w", err)
	}

	return nil
}

func (s *CatalogServiceImpl) List(ctx context.Context) ([]domain.Service, error) {
	services, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("listing services", zap.Error(err))
		return nil, fmt.Errorf("listing services: %w", err)
	}
	return services, nil
}

func (s *CatalogServiceImpl) UploadImage(ctx context.Context, id int64, data []byte, filename string) (string, error) {
	if s.storage == nil {
		return "", errors.New("file storage is not configured")
	}

	if _, err := s.GetByID(ctx, id); err != nil {
		return "", err
	}

	url, err := s.storage.UploadFile(ctx, data, filename)
	if err != nil {
		s.logger.Error("uploading service image", zap.Int64("id", id), zap.Error(err))
		return "", fmt.Errorf("uploading image: %w", err)
	}

	if err := s.repo.UpdateImage(ctx, id, url); err != nil {
		s.logger.Error("saving service image url", zap.Int64("id", id), zap.Error(err))
		return "", fmt.Errorf("saving image url: %w", err)
	}

	return url, nil
}

func (s *CatalogServiceImpl) DeleteImage(ctx context.Context, id int64) error {
	if s.storage == nil {
		return errors.New("file storage is not configured")
	}

	svc, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if svc.ImageURL == "" {
		return nil
	}

	if err := s.storage.DeleteFile(ctx, svc.ImageURL); err != nil {
		s.logger.Error("deleting service image", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("deleting image: %w", err)
	}

	if err := s.repo.UpdateImage(ctx, id, ""); err != nil {
		return fmt.Errorf("clearing image url: %w", err)
	}

	return nil
}
