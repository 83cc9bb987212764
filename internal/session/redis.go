// internal/session/redis.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-client/internal/config"
)

// RedisStore persists the session snapshot in Redis, for deployments where
// several processes share one storefront identity (kiosks, workers).
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a Redis-backed session store and verifies the
// connection before returning.
func NewRedisStore(cfg *config.Config) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Session.Redis.Password,
		DB:           cfg.Session.Redis.DB,
		PoolSize:     cfg.Session.Redis.PoolSize,
		MinIdleConns: cfg.Session.Redis.MinIdleConns,

		// Connection timeouts
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		client: rdb,
		key:    cfg.Session.Redis.KeyPrefix,
	}, nil
}

// Load returns the stored session, or ErrNoSession when the key is absent
func (s *RedisStore) Load() (*Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	data, err := s.client.Get(ctx, s.key).Result()
	if err == redis.Nil {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session from Redis: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &sess, nil
}

// Save replaces the stored session in a single SET
func (s *RedisStore) Save(sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save session to Redis: %w", err)
	}
	return nil
}

// Clear deletes the session key
func (s *RedisStore) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to clear session in Redis: %w", err)
	}
	return nil
}

// Close closes the underlying Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
