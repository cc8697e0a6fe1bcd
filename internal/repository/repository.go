package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"turnex/internal/domain"
)

type Repositories struct {
	User     UserRepository
	Auth     AuthRepository
	Service  ServiceRepository
	Booking  BookingRepository
	Schedule ScheduleConfigRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Auth:     NewAuthRepository(db),
		Service:  NewServiceRepository(db),
		Booking:  NewBookingRepository(db),
		Schedule: NewScheduleConfigRepository(db),
	}
}

type UserRepository interface {
	Create(ctx context.Context, user domain.CreateUserDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id int64, user domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteSessionsByUserID(ctx context.Context, userID int64) error
}

type ServiceRepository interface {
	Create(ctx context.Context, dto domain.CreateServiceDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	Update(ctx context.Context, id int64, dto domain.UpdateServiceDTO) error
	UpdateImage(ctx context.Context, id int64, imageURL string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Service, error)
}

// BookingRepository persists bookings together with the atomic slot rows
// they occupy. Create and Update run in one transaction with the slot rows;
// the UNIQUE (date, slot_time) constraint on booking_slots is the
// authoritative guard against two concurrent writers taking the same slot.
type BookingRepository interface {
	Create(ctx context.Context, booking domain.Booking, slots []string) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	// Update rewrites the booking row and replaces its slot rows with the
	// given set; pass an empty set to release all slots (cancellation and
	// other terminal transitions).
	Update(ctx context.Context, booking domain.Booking, slots []string) error
	List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int, error)
	// ListActiveByDate returns the bookings occupying slots on a date key
	// (pending and confirmed only).
	ListActiveByDate(ctx context.Context, dateKey string) ([]domain.Booking, error)
	// CountActiveByService counts active bookings for a service on or
	// after the given date key.
	CountActiveByService(ctx context.Context, serviceID int64, fromDate string) (int, error)
}

type ScheduleConfigRepository interface {
	// Get returns nil when no configuration has been saved yet.
	Get(ctx context.Context) (*domain.ScheduleConfig, error)
	Save(ctx context.Context, cfg domain.ScheduleConfig) error
}
