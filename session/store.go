package session

import (
	"context"
	"os"
	"time"

	"restaurant-reservation/logger"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// Store tracks active token ids (jti) in Redis so logout actually revokes a
// token before it expires. When REDIS_ADDR is unset the store is disabled
// and tokens live until their exp claim.
type Store struct {
	client *redis.Client
}

func New() *Store {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		logger.Warning("REDIS_ADDR not set - token revocation on logout is disabled")
		return &Store{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	return &Store{client: client}
}

func (s *Store) Enabled() bool {
	return s.client != nil
}

// Save records an issued token id for its lifetime.
func (s *Store) Save(ctx context.Context, jti, userID string, ttl time.Duration) error {
	if s.client == nil {
		return nil
	}
	return s.client.Set(ctx, keyPrefix+jti, userID, ttl).Err()
}

// Revoke drops the token id; subsequent requests with it are rejected.
func (s *Store) Revoke(ctx context.Context, jti string) error {
	if s.client == nil {
		return nil
	}
	return s.client.Del(ctx, keyPrefix+jti).Err()
}

// IsActive reports whether the token id is still live. With the store
// disabled every token is considered active.
func (s *Store) IsActive(ctx context.Context, jti string) (bool, error) {
	if s.client == nil {
		return true, nil
	}
	n, err := s.client.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
