package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"turnex/internal/domain"
)

const uniqueViolationCode = "23505"

type BookingRepo struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) *BookingRepo {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) Create(ctx context.Context, booking domain.Booking, slots []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO bookings (id, service_id, date, time, duration, customer_name, customer_email, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = tx.Exec(
		ctx,
		query,
		booking.ID,
		booking.ServiceID,
		booking.ServiceName,
		booking.Date,
		booking.Time,
		booking.Duration,
		booking.CustomerName,
		booking.CustomerEmail,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating booking: %w", err)
	}

	if err := insertSlots(ctx, tx, booking, slots); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing booking: %w", err)
	}

	return nil
}

func (r *BookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	query := `
		SELECT id, service_id, service_name, date, time, duration, customer_name, customer_email, status, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var booking domain.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.ServiceID,
		&booking.ServiceName,
		&booking.Date,
		&booking.Time,
		&booking.Duration,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching booking: %w", err)
	}

	return &booking, nil
}

func (r *BookingRepo) Update(ctx context.Context, booking domain.Booking, slots []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE bookings
		SET service_id = $1, service_name = $2, date = $3, time = $4, duration = $5, customer_name = $6, customer_email = $7, status = $8, updated_at = $9
		WHERE id = $10
	`

	tag, err := tx.Exec(
		ctx,
		query,
		booking.ServiceID,
		booking.ServiceName,
		booking.Date,
		booking.Time,
		booking.Duration,
		booking.CustomerName,
		booking.CustomerEmail,
		booking.Status,
		booking.UpdatedAt,
		booking.ID,
	)
	if err != nil {
		return fmt.Errorf("updating booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	_, err = tx.Exec(ctx, `DELETE FROM booking_slots WHERE booking_id = $1`, booking.ID)
	if err != nil {
		return fmt.Errorf("releasing booking slots: %w", err)
	}

	if err := insertSlots(ctx, tx, booking, slots); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing booking update: %w", err)
	}

	return nil
}

func (r *BookingRepo) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int, error) {
	countQuery := `SELECT COUNT(*) FROM bookings WHERE 1=1`
	selectQuery := `
		SELECT id, service_id, service_name, date, time, duration, customer_name, customer_email, status, created_at, updated_at
		FROM bookings
		WHERE 1=1
	`

	var conditions string
	var args []interface{}
	argPos := 1

	if filter.Date != nil {
		conditions += fmt.Sprintf(" AND date = $%d", argPos)
		args = append(args, *filter.Date)
		argPos++
	}

	if filter.Status != nil {
		conditions += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, *filter.Status)
		argPos++
	}

	if filter.CustomerEmail != nil {
		conditions += fmt.Sprintf(" AND customer_email = $%d", argPos)
		args = append(args, *filter.CustomerEmail)
		argPos++
	}

	if filter.StartDate != nil {
		conditions += fmt.Sprintf(" AND date >= $%d", argPos)
		args = append(args, *filter.StartDate)
		argPos++
	}

	if filter.EndDate != nil {
		conditions += fmt.Sprintf(" AND date <= $%d", argPos)
		args = append(args, *filter.EndDate)
		argPos++
	}

	countQuery += conditions
	selectQuery += conditions

	selectQuery += fmt.Sprintf(" ORDER BY date, time LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	var total int
	err := r.db.QueryRow(ctx, countQuery, args[:argPos-1]...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("counting bookings: %w", err)
	}

	rows, err := r.db.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing bookings: %w", err)
	}
	defer rows.Close()

	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

func (r *BookingRepo) ListActiveByDate(ctx context.Context, dateKey string) ([]domain.Booking, error) {
	query := `
		SELECT id, service_id, service_name, date, time, duration, customer_name, customer_email, status, created_at, updated_at
		FROM bookings
		WHERE date = $1 AND status IN ($2, $3)
		ORDER BY time
	`

	rows, err := r.db.Query(ctx, query, dateKey, domain.BookingStatusPending, domain.BookingStatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("listing bookings for date: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *BookingRepo) CountActiveByService(ctx context.Context, serviceID int64, fromDate string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings
		WHERE service_id = $1 AND date >= $2 AND status IN ($3, $4)
	`

	var count int
	err := r.db.QueryRow(ctx, query, serviceID, fromDate, domain.BookingStatusPending, domain.BookingStatusConfirmed).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting bookings for service: %w", err)
	}

	return count, nil
}

// insertSlots writes one row per occupied grid cell. The unique index on
// (date, slot_time) makes the second of two racing writers fail here, which
// surfaces as ErrSlotConflict.
func insertSlots(ctx context.Context, tx pgx.Tx, booking domain.Booking, slots []string) error {
	for _, slot := range slots {
		_, err := tx.Exec(ctx,
			`INSERT INTO booking_slots (booking_id, date, slot_time) VALUES ($1, $2, $3)`,
			booking.ID, booking.Date, slot,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
				return domain.ErrSlotConflict
			}
			return fmt.Errorf("reserving slot %s: %w", slot, err)
		}
	}
	return nil
}

func scanBookings(rows pgx.Rows) ([]domain.Booking, error) {
	var bookings []domain.Booking
	for rows.Next() {
		var booking domain.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.ServiceID,
			&booking.ServiceName,
			&booking.Date,
			&booking.Time,
			&booking.Duration,
			&booking.CustomerName,
			&booking.CustomerEmail,
			&booking.Status,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading booking rows: %w", err)
	}
	return bookings, nil
}
