package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"trimplan/internal/domain/repositories"
)

// PlanStorage keeps each key as a plain Redis string under a namespace prefix
type PlanStorage struct {
	rdb    *goredis.Client
	prefix string
}

// Connect dials addr and verifies the connection with PING
func Connect(ctx context.Context, addr string) (*goredis.Client, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// NewPlanStorage stores keys as <prefix><key>. The prefix follows the
// environment table prefix so dev and prod can share one instance.
func NewPlanStorage(rdb *goredis.Client, prefix string) *PlanStorage {
	return &PlanStorage{rdb: rdb, prefix: prefix}
}

var _ repositories.PlanStorage = (*PlanStorage)(nil)

// Get returns the value under key, or nil when the key does not exist
func (s *PlanStorage) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

// Put sets key without expiry
func (s *PlanStorage) Put(ctx context.Context, key string, value []byte) error {
	if err := s.rdb.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes key
func (s *PlanStorage) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Name returns "redis"
func (s *PlanStorage) Name() string {
	return "redis"
}
