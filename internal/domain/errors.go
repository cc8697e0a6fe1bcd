package domain

import "errors"

// Error taxonomy for the booking core. The availability engine itself only
// returns values; these are raised by the services around it and translated
// to protocol responses by the REST layer.
var (
	// ErrNotFound covers lookups of bookings, services and users by id.
	ErrNotFound = errors.New("not found")

	// ErrSlotConflict means a fit check failed at write time: the requested
	// start time does not fit working hours, blocks or existing occupancy.
	// Expected and recoverable, never logged as a fault.
	ErrSlotConflict = errors.New("time not available")

	// ErrServiceHasBookings rejects deleting a service that future
	// non-cancelled bookings still reference.
	ErrServiceHasBookings = errors.New("service has upcoming bookings")

	// ErrInvalidTransition rejects a status change the booking state
	// machine does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrValidation covers malformed dates, times, durations and config
	// payloads.
	ErrValidation = errors.New("validation failed")
)
