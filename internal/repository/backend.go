// Package repository selects the slot backend that holds the history log.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"campaigner/internal/config"
	"campaigner/internal/domain/repositories"
	"campaigner/internal/repository/file"
	"campaigner/internal/repository/memory"
	"campaigner/internal/repository/postgres"
	"campaigner/internal/repository/redis"
)

// OpenSlot connects the backend named by HISTORY_BACKEND.
// The returned close function releases pools and clients; it is never nil.
func OpenSlot(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.Slot, func(), error) {
	noop := func() {}

	switch cfg.HistoryBackend {
	case config.BackendMemory:
		logger.Warn("history is in memory only and will not survive a restart")
		return memory.NewSlotRepository(), noop, nil

	case config.BackendFile:
		logger.Info("history slot", "backend", cfg.HistoryBackend, "file", cfg.HistoryFile)
		return file.NewSlotRepository(cfg.HistoryKey, cfg.HistoryFile, logger), noop, nil

	case config.BackendPostgres:
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("connect to database: %w", err)
		}

		slot := postgres.NewSlotRepository(&postgres.RepositoryConfig{
			Pool:   pool,
			Tables: postgres.NewTableNames(cfg.TablePrefix),
			Logger: logger,
		})
		if err := slot.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("ensure slot schema: %w", err)
		}
		logger.Info("history slot", "backend", cfg.HistoryBackend, "table_prefix", cfg.TablePrefix)
		return slot, pool.Close, nil

	case config.BackendRedis:
		client, err := redis.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, noop, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("history slot", "backend", cfg.HistoryBackend, "addr", cfg.RedisAddr)
		return redis.NewSlotRepository(client, cfg.TablePrefix, logger), func() { _ = client.Close() }, nil

	default:
		return nil, noop, fmt.Errorf("unsupported history backend: %s", cfg.HistoryBackend)
	}
}
