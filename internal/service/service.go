package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"turnex/config"
	"turnex/internal/availability"
	"turnex/internal/domain"
	"turnex/internal/repository"
	"turnex/internal/storage"
)

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
}

type Services struct {
	User         UserService
	Auth         AuthService
	Catalog      CatalogService
	Schedule     ScheduleService
	Booking      BookingService
	Availability AvailabilityService
}

func NewServices(deps Deps) *Services {
	schedule := NewScheduleService(deps.Repos.Schedule, deps.Logger)

	return &Services{
		User:         NewUserService(deps.Repos.User, deps.Logger),
		Auth:         NewAuthService(deps.Repos.Auth, deps.Repos.User, deps.Config.JWT, deps.Logger),
		Catalog:      NewCatalogService(deps.Repos.Service, deps.Repos.Booking, deps.FileStorage, deps.Logger),
		Schedule:     schedule,
		Booking:      NewBookingService(deps.Repos.Booking, deps.Repos.Service, schedule, deps.Logger),
		Availability: NewAvailabilityService(deps.Repos.Booking, schedule, deps.Logger),
	}
}

type UserService interface {
	Create(ctx context.Context, dto domain.CreateUserDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, dto domain.PasswordUpdateDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type AuthService interface {
	Register(ctx context.Context, dto domain.RegisterRequest) (int64, error)
	Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ParseToken(ctx context.Context, token string) (int64, domain.UserRole, error)
}

type CatalogService interface {
	Create(ctx context.Context, dto domain.CreateServiceDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	Update(ctx context.Context, id int64, dto domain.UpdateServiceDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Service, error)
	UploadImage(ctx context.Context, id int64, data []byte, filename string) (string, error)
	DeleteImage(ctx context.Context, id int64) error
}

type ScheduleService interface {
	Get(ctx context.Context) (domain.ScheduleConfig, error)
	Update(ctx context.Context, dto domain.UpdateScheduleConfigDTO) (domain.ScheduleConfig, error)
}

type BookingService interface {
	Create(ctx context.Context, dto domain.CreateBookingDTO) (*domain.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	Update(ctx context.Context, id uuid.UUID, dto domain.UpdateBookingDTO) (*domain.Booking, error)
	Cancel(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int, error)
	ListByDay(ctx context.Context, dateKey string) ([]domain.Booking, error)
}

type AvailabilityService interface {
	DaySlots(ctx context.Context, dateKey string, duration int) ([]string, error)
	Month(ctx context.Context, year, month, duration int) (map[string]availability.DayAvailability, error)
}
