package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	PlanStorage string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		PlanStorage: fmt.Sprintf("%splan_storage", prefix),
	}
}

// CreateConnectionPool creates a pgx connection pool.
//
// Port 6543 is the PgBouncer transaction pooler on hosted Postgres, which
// rejects prepared statements. On that port the pool switches to
// QueryExecModeCacheDescribe unless the connection string already chose a
// mode via ?default_query_exec_mode=...
//
// Table names are interpolated with fmt.Sprintf before the query is sent,
// so each environment prefix gets its own cached statements.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	// A single document needs very few connections
	config.MaxConns = 4
	config.MinConns = 1

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// EnsureSchema creates the tables used by this package if they are missing
func EnsureSchema(ctx context.Context, config *RepositoryConfig) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key        TEXT PRIMARY KEY,
			value      JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`, config.Tables.PlanStorage)

	if _, err := config.Pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("create %s: %w", config.Tables.PlanStorage, err)
	}
	config.Logger.Debug("schema ready", "table", config.Tables.PlanStorage)
	return nil
}
