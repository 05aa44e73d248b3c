package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"campaigner/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSlotRepository implements repositories.Slot on a key/value table
type PostgresSlotRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

var _ repositories.Slot = (*PostgresSlotRepository)(nil)

// NewSlotRepository creates a new PostgresSlotRepository
func NewSlotRepository(config *RepositoryConfig) *PostgresSlotRepository {
	return &PostgresSlotRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// EnsureSchema creates the slot table if it does not exist
func (r *PostgresSlotRepository) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`, r.tables.Slots)

	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("create %s: %w", r.tables.Slots, err)
	}
	return nil
}

// Read returns the stored value, or ErrSlotEmpty when no row exists
func (r *PostgresSlotRepository) Read(ctx context.Context, key string) ([]byte, error) {
	query := fmt.Sprintf(`
		SELECT value
		FROM %s
		WHERE key = $1
	`, r.tables.Slots)

	var value string
	err := r.pool.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		// A missing table means nothing was ever written
		if IsPgNoRowsError(err) || IsPgUndefinedTableError(err) {
			return nil, repositories.ErrSlotEmpty
		}
		return nil, fmt.Errorf("get slot %s: %w", key, err)
	}
	return []byte(value), nil
}

// Write upserts the value
func (r *PostgresSlotRepository) Write(ctx context.Context, key string, data []byte) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, r.tables.Slots)

	if _, err := r.pool.Exec(ctx, query, key, string(data)); err != nil {
		return fmt.Errorf("upsert slot %s: %w", key, err)
	}

	r.logger.Debug("slot written", "backend", "postgres", "table", r.tables.Slots, "key", key, "bytes", len(data))
	return nil
}
