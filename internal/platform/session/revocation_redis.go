// Package session keeps track of access tokens revoked by logout.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationRedis stores revoked token ids in Redis until the token would
// have expired anyway.
type RevocationRedis struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRevocationRedis creates a new RevocationRedis instance.
func NewRevocationRedis(client *redis.Client, prefix string) *RevocationRedis {
	return &RevocationRedis{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

// revokedKey returns the Redis key for a revoked token id.
func (r *RevocationRedis) revokedKey(jti string) string {
	return fmt.Sprintf("%s:%s", r.prefix, jti)
}

// Revoke marks jti revoked until expiresAt. Tokens already expired need no entry.
func (r *RevocationRedis) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return errors.New("empty token id")
	}
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, r.revokedKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether jti has been revoked.
func (r *RevocationRedis) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, r.revokedKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token: %w", err)
	}
	return n > 0, nil
}
