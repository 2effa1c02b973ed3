package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"trimplan/internal/domain/repositories"
)

// PostgresPlanStorage implements PlanStorage as a JSONB key/value table
type PostgresPlanStorage struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewPlanStorage creates a new PostgresPlanStorage
func NewPlanStorage(config *RepositoryConfig) repositories.PlanStorage {
	return &PostgresPlanStorage{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Get retrieves the value stored under key
func (r *PostgresPlanStorage) Get(ctx context.Context, key string) ([]byte, error) {
	query := fmt.Sprintf(`
		SELECT value
		FROM %s
		WHERE key = $1
	`, r.tables.PlanStorage)

	var value []byte
	err := r.pool.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if IsPgNoRowsError(err) {
			// Nothing stored yet - return nil (not an error)
			return nil, nil
		}
		if IsPgUndefinedTableError(err) {
			r.logger.Debug("plan storage table missing", "table", r.tables.PlanStorage)
			return nil, nil
		}
		return nil, fmt.Errorf("get plan %s: %w", key, err)
	}

	return value, nil
}

// Put creates or replaces the value under key
func (r *PostgresPlanStorage) Put(ctx context.Context, key string, value []byte) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (key, value, created_at, updated_at)
		VALUES ($1, $2, now(), now())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, r.tables.PlanStorage)

	if _, err := r.pool.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("upsert plan %s: %w", key, err)
	}

	return nil
}

// Delete removes key
func (r *PostgresPlanStorage) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, r.tables.PlanStorage)

	if _, err := r.pool.Exec(ctx, query, key); err != nil {
		return fmt.Errorf("delete plan %s: %w", key, err)
	}

	return nil
}

// Name returns "postgres"
func (r *PostgresPlanStorage) Name() string {
	return "postgres"
}
