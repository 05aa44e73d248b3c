// Package redis stores slots as plain redis string keys.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"campaigner/internal/domain/repositories"

	goredis "github.com/redis/go-redis/v9"
)

// NewClient connects to redis and pings it
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	if addr == "" {
		return nil, errors.New("redis address not configured")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis %s (db %d): %w", addr, db, err)
	}
	return rdb, nil
}

// SlotRepository implements repositories.Slot on GET/SET
type SlotRepository struct {
	client goredis.Cmdable
	prefix string
	logger *slog.Logger
}

var _ repositories.Slot = (*SlotRepository)(nil)

// NewSlotRepository namespaces keys with prefix (e.g. "dev_")
func NewSlotRepository(client goredis.Cmdable, prefix string, logger *slog.Logger) *SlotRepository {
	return &SlotRepository{client: client, prefix: prefix, logger: logger}
}

// Read returns the stored value, or ErrSlotEmpty on redis.Nil
func (r *SlotRepository) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, repositories.ErrSlotEmpty
		}
		return nil, fmt.Errorf("get slot %s: %w", key, err)
	}
	return data, nil
}

// Write overwrites the value with no expiry
func (r *SlotRepository) Write(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, r.prefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("set slot %s: %w", key, err)
	}
	r.logger.Debug("slot written", "backend", "redis", "key", r.prefix+key, "bytes", len(data))
	return nil
}
