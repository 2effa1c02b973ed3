// Package repository selects and opens the configured storage backend
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"trimplan/internal/config"
	"trimplan/internal/domain/repositories"
	"trimplan/internal/repository/filestore"
	"trimplan/internal/repository/memory"
	"trimplan/internal/repository/postgres"
	"trimplan/internal/repository/redis"
)

// Open connects the backend named by cfg.StorageBackend.
// The returned cleanup func releases connections and is never nil.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.PlanStorage, func(), error) {
	noop := func() {}

	switch cfg.StorageBackend {
	case config.StorageFile:
		storage, err := filestore.NewPlanStorage(cfg.DataDir)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("storage ready", "backend", storage.Name(), "data_dir", cfg.DataDir)
		return storage, noop, nil

	case config.StorageMemory:
		logger.Warn("using in-memory storage, changes are lost on exit")
		return memory.NewPlanStorage(), noop, nil

	case config.StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, noop, fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		repoConfig := &postgres.RepositoryConfig{
			Pool:   pool,
			Tables: postgres.NewTableNames(cfg.TablePrefix),
			Logger: logger,
		}
		if err := postgres.EnsureSchema(ctx, repoConfig); err != nil {
			pool.Close()
			return nil, noop, err
		}
		logger.Info("storage ready", "backend", "postgres", "table", repoConfig.Tables.PlanStorage)
		return postgres.NewPlanStorage(repoConfig), pool.Close, nil

	case config.StorageRedis:
		rdb, err := redis.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("storage ready", "backend", "redis", "addr", cfg.RedisAddr, "prefix", cfg.TablePrefix)
		return redis.NewPlanStorage(rdb, cfg.TablePrefix), func() { _ = rdb.Close() }, nil

	default:
		return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
