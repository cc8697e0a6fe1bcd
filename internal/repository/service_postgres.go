package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"turnex/internal/domain"
)

type ServiceRepo struct {
	db *pgxpool.Pool
}

func NewServiceRepository(db *pgxpool.Pool) *ServiceRepo {
	return &ServiceRepo{db: db}
}

func (r *ServiceRepo) Create(ctx context.Context, dto domain.CreateServiceDTO) (int64, error) {
	var id int64

	query := `
		INSERT INTO services (name, description, duration, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		dto.Name,
		dto.Description,
		dto.Duration,
		dto.Price,
		time.Now(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("creating service: %w", err)
	}

	return id, nil
}

func (r *ServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	query := `
		SELECT id, name, description, duration, price, COALESCE(image_url, ''), created_at, updated_at
		FROM services
		WHERE id = $1
	`

	var service domain.Service
	err := r.db.QueryRow(ctx, query, id).Scan(
		&service.ID,
		&service.Name,
		&service.Description,
		&service.Duration,
		&service.Price,
		&service.ImageURL,
		&service.CreatedAt,
		&service.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching service: %w", err)
	}

	return &service, nil
}

func (r *ServiceRepo) Update(ctx context.Context, id int64, dto domain.UpdateServiceDTO) error {
	service, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if service == nil {
		return domain.ErrNotFound
	}

	if dto.Name != nil {
		service.Name = *dto.Name
	}
	if dto.Description != nil {
		service.Description = *dto.Description
	}
	if dto.Duration != nil {
		service.Duration = *dto.Duration
	}
	if dto.Price != nil {
		service.Price = *dto.Price
	}

	query := `
		UPDATE services
		SET name = $1, description = $2, duration = $3, price = $4, updated_at = $5
		WHERE id = $6
	`

	_, err = r.db.Exec(ctx, query,
		service.Name,
		service.Description,
		service.Duration,
		service.Price,
		time.Now(),
		id,
	)
	if err != nil {
		return fmt.Errorf("updating service: %w", err)
	}

	return nil
}

func (r *ServiceRepo) UpdateImage(ctx context.Context, id int64, imageURL string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE services SET image_url = NULLIF($1, ''), updated_at = $2 WHERE id = $3`,
		imageURL, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("updating service image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *ServiceRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *ServiceRepo) List(ctx context.Context) ([]domain.Service, error) {
	query := `
		SELECT id, name, description, duration, price, COALESCE(image_url, ''), created_at, updated_at
		FROM services
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing services: %w", err)
	}
	defer rows.Close()

	var services []domain.Service
	for rows.Next() {
		var service domain.Service
		err := rows.Scan(
			&service.ID,
			&service.Name,
			&service.Description,
			&service.Duration,
			&service.Price,
			&service.ImageURL,
			&service.CreatedAt,
			&service.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning service row: %w", err)
		}
		services = append(services, service)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading service rows: %w", err)
	}

	return services, nil
}
