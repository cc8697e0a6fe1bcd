package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusNoShow    BookingStatus = "no_show"
)

// IsTerminal reports whether no further status transition is allowed.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled || s == BookingStatusNoShow
}

// IsActive reports whether the booking still occupies its slots.
func (s BookingStatus) IsActive() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// CanTransition encodes the booking status machine:
// pending -> confirmed -> completed, pending|confirmed -> cancelled,
// confirmed -> no_show. Terminal states have no outgoing transitions.
func CanTransition(from, to BookingStatus) bool {
	switch from {
	case BookingStatusPending:
		return to == BookingStatusConfirmed || to == BookingStatusCancelled
	case BookingStatusConfirmed:
		return to == BookingStatusCompleted || to == BookingStatusCancelled || to == BookingStatusNoShow
	default:
		return false
	}
}

// Booking snapshots the service name and duration at creation time, so the
// row stays meaningful after the service is edited or deleted.
type Booking struct {
	ID            uuid.UUID     `json:"id"`
	ServiceID     int64         `json:"service_id"`
	ServiceName   string        `json:"service_name"`
	Date          string        `json:"date"`
	Time          string        `json:"time"`
	Duration      int           `json:"duration"`
	CustomerName  string        `json:"customer_name"`
	CustomerEmail string        `json:"customer_email"`
	Status        BookingStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type CreateBookingDTO struct {
	ServiceID     int64  `json:"service_id" binding:"required"`
	Date          string `json:"date" binding:"required"`
	Time          string `json:"time" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
}

type UpdateBookingDTO struct {
	Date   *string        `json:"date,omitempty"`
	Time   *string        `json:"time,omitempty"`
	Status *BookingStatus `json:"status,omitempty" binding:"omitempty,oneof=pending confirmed completed cancelled no_show"`
}

type BookingFilter struct {
	Date          *string        `json:"date"`
	Status        *BookingStatus `json:"status"`
	CustomerEmail *string        `json:"customer_email"`
	StartDate     *string        `json:"start_date"`
	EndDate       *string        `json:"end_date"`
	Limit         int            `json:"limit"`
	Offset        int            `json:"offset"`
}
