// Package tokenstore provides a Redis-backed store for refresh token hashes.
package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"user_backend/internal/feature/auth/domain"
	"user_backend/internal/feature/auth/usecase"
)

// DefaultPrefix namespaces refresh token keys.
const DefaultPrefix = "refresh"

// RefreshRedis keeps one refresh token hash per user under "<prefix>:<userID>".
// Keys expire with the refresh token lifetime.
type RefreshRedis struct {
	client *redis.Client
	prefix string
}

var _ usecase.RefreshTokenStore = (*RefreshRedis)(nil)

// NewRefreshRedis creates a new RefreshRedis instance.
func NewRefreshRedis(client *redis.Client, prefix string) *RefreshRedis {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &RefreshRedis{
		client: client,
		prefix: prefix,
	}
}

func (r *RefreshRedis) key(userID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", r.prefix, userID)
}

// Save overwrites the user's hash. A non-positive ttl stores the key without expiry.
func (r *RefreshRedis) Save(ctx context.Context, userID uuid.UUID, hash string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := r.client.Set(ctx, r.key(userID), hash, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

// Find returns domain.ErrRefreshTokenNotFound if no hash is stored or it has expired.
func (r *RefreshRedis) Find(ctx context.Context, userID uuid.UUID) (string, error) {
	hash, err := r.client.Get(ctx, r.key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrRefreshTokenNotFound
		}
		return "", err
	}
	return hash, nil
}
