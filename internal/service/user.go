package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"turnex/internal/domain"
	"turnex/internal/repository"
	"turnex/pkg/auth"
	"turnex/pkg/validator"
)

type UserServiceImpl struct {
	repo   repository.UserRepository
	logger *zap.Logger
}

func NewUserService(repo repository.UserRepository, logger *zap.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *UserServiceImpl) Create(ctx context.Context, dto domain.CreateUserDTO) (int64, error) {
	if !validator.ValidateEmail(dto.Email) {
		return 0, fmt.Errorf("%w: malformed email", domain.ErrValidation)
	}
	if dto.Phone != "" && !validator.ValidatePhone(dto.Phone) {
		return 0, fmt.Errorf("%w: malformed phone number", domain.ErrValidation)
	}

	existing, err := s.repo.GetByEmail(ctx, dto.Email)
	if err == nil && existing != nil {
		return 0, errors.New("a user with this email already exists")
	}

	hashedPassword, err := auth.HashPassword(dto.Password)
	if err != nil {
		s.logger.Error("hashing password", zap.Error(err))
		return 0, errors.New("could not create user")
	}

	dto.Password = hashedPassword
	dto.FirstName = validator.SanitizeString(dto.FirstName)
	dto.LastName = validator.SanitizeString(dto.LastName)

	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("creating user", zap.Error(err))
		return 0, errors.New("could not create user")
	}

	return id, nil
}

func (s *UserServiceImpl) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("fetching user", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	return user, nil
}

func (s *UserServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("fetching user: %w", err)
	}
	if user == nil {
		return domain.ErrNotFound
	}

	if dto.Email != nil {
		if !validator.ValidateEmail(*dto.Email) {
			return fmt.Errorf("%w: malformed email", domain.ErrValidation)
		}
		existing, err := s.repo.GetByEmail(ctx, *dto.Email)
		if err == nil && existing != nil && existing.ID != id {
			return errors.New("a user with this email already exists")
		}
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("updating user", zap.Int64("id", id), zap.Error(err))
		return errors.New("could not update user")
	}

	return nil
}

func (s *UserServiceImpl) UpdatePassword(ctx context.Context, id int64, dto domain.PasswordUpdateDTO) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("fetching user: %w", err)
	}
	if user == nil {
		return domain.ErrNotFound
	}

	ok, err := auth.VerifyPassword(dto.OldPassword, user.PasswordHash)
	if err != nil || !ok {
		return errors.New("current password is incorrect")
	}

	hashedPassword, err := auth.HashPassword(dto.NewPassword)
	if err != nil {
		s.logger.Error("hashing new password", zap.Error(err))
		return errors.New("could not update password")
	}

	if err := s.repo.UpdatePassword(ctx, id, hashedPassword); err != nil {
		s.logger.Error("updating password", zap.Int64("id", id), zap.Error(err))
		return errors.New("could not update password")
	}

	return nil
}

func (s *UserServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		s.logger.Error("deleting user", zap.Int64("id", id), zap.Error(err))
		return errors.New("could not delete user")
	}

	return nil
}

func (s *UserServiceImpl) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}

	if offset < 0 {
		offset = 0
	}

	users, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("listing users", zap.Error(err))
		return nil, fmt.Errorf("listing users: %w", err)
	}

	return users, nil
}
