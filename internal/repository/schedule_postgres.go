package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"turnex/internal/domain"
)

// ScheduleConfigRepo stores the single tenant-wide schedule configuration as
// one JSONB row, read back in full on every access so callers always see the
// latest saved state.
type ScheduleConfigRepo struct {
	db *pgxpool.Pool
}

func NewScheduleConfigRepository(db *pgxpool.Pool) *ScheduleConfigRepo {
	return &ScheduleConfigRepo{db: db}
}

func (r *ScheduleConfigRepo) Get(ctx context.Context) (*domain.ScheduleConfig, error) {
	query := `SELECT config FROM schedule_config WHERE id = 1`

	var raw []byte
	err := r.db.QueryRow(ctx, query).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching schedule config: %w", err)
	}

	var cfg domain.ScheduleConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("decoding schedule config: %w", err)
	}

	return &cfg, nil
}

func (r *ScheduleConfigRepo) Save(ctx context.Context, cfg domain.ScheduleConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding schedule config: %w", err)
	}

	query := `
		INSERT INTO schedule_config (id, config, updated_at)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET config = EXCLUDED.config, updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.Exec(ctx, query, raw, time.Now()); err != nil {
		return fmt.Errorf("saving schedule config: %w", err)
	}

	return nil
}
