package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "medstock:session:"

// Store keeps active sessions in Redis, keyed by the token's jti. A token
// is only accepted while its session key exists, which makes logout an
// actual revocation rather than a client-side discard.
type Store struct {
	redis *redis.Client
}

// NewStore creates a new session store
func NewStore(redisClient *redis.Client) *Store {
	return &Store{redis: redisClient}
}

func key(sessionID string) string {
	return keyPrefix + sessionID
}

// Create records a session with the given lifetime
func (s *Store) Create(ctx context.Context, sessionID string, adminID uint, ttl time.Duration) error {
	if err := s.redis.Set(ctx, key(sessionID), strconv.FormatUint(uint64(adminID), 10), ttl).Err(); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// Exists reports whether a session is still active
func (s *Store) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.redis.Exists(ctx, key(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session: %w", err)
	}
	return n > 0, nil
}

// Revoke removes a session immediately
func (s *Store) Revoke(ctx context.Context, sessionID string) error {
	if err := s.redis.Del(ctx, key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}
