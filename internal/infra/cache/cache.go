package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"goeat-api/internal/pkg/config"

	"github.com/redis/go-redis/v9"
)

// Store is a thin JSON read-through cache over Redis. A nil *Store is valid
// and disables caching, so callers never branch on configuration.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(cfg config.RedisConfig) (*Store, func(), error) {
	if cfg.Addr == "" {
		return nil, func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, err
	}

	cleanup := func() {
		if err := rdb.Close(); err != nil {
			slog.Warn("failed to close redis client", "error", err.Error())
		}
	}
	return &Store{rdb: rdb, ttl: cfg.TTL}, cleanup, nil
}

// GetJSON reports whether the key was found; cache failures degrade to a miss.
func (s *Store) GetJSON(ctx context.Context, key string, dest any) bool {
	if s == nil {
		return false
	}
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("cache get failed", "key", key, "error", err.Error())
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		slog.Warn("cache entry corrupt", "key", key, "error", err.Error())
		return false
	}
	return true
}

func (s *Store) SetJSON(ctx context.Context, key string, value any) {
	if s == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		slog.Warn("cache set failed", "key", key, "error", err.Error())
	}
}

func (s *Store) Delete(ctx context.Context, keys ...string) {
	if s == nil || len(keys) == 0 {
		return
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("cache delete failed", "keys", keys, "error", err.Error())
	}
}
