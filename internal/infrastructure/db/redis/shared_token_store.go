package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskforge/rewards-api/internal/core/domain"
)

// SharedTokenStore persists out-of-band login tokens in Redis. The key TTL
// is the expiry: expired tokens disappear on their own, so Lookup never has
// to compare timestamps.
type SharedTokenStore struct {
	client *redis.Client
}

// NewSharedTokenStore creates a SharedTokenStore wrapping the given client.
func NewSharedTokenStore(client *redis.Client) *SharedTokenStore {
	return &SharedTokenStore{client: client}
}

// Save stores the token → uid mapping with the given TTL.
func (s *SharedTokenStore) Save(ctx context.Context, token, uid string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(token), uid, ttl).Err(); err != nil {
		return fmt.Errorf("save shared token: %w", err)
	}
	return nil
}

// Lookup resolves a token to its target uid.
func (s *SharedTokenStore) Lookup(ctx context.Context, token string) (string, error) {
	uid, err := s.client.Get(ctx, s.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrInvalidSharedToken
		}
		return "", fmt.Errorf("lookup shared token: %w", err)
	}
	return uid, nil
}

func (s *SharedTokenStore) key(token string) string {
	return "shared_token:" + token
}
