package di

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authadapters "admin_backend/internal/feature/auth/adapters"
	"admin_backend/internal/platform/session"
)

// TokenRevocations records logged out token ids and answers lookups for the
// auth middleware.
type TokenRevocations interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// NewTokenRevoker creates a TokenRevocations implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the database.
func NewTokenRevoker(rdb *redis.Client, db *gorm.DB) TokenRevocations {
	if rdb != nil {
		return session.NewRevocationRedis(rdb, "revoked")
	}
	return authadapters.NewRevokedTokenGorm(db)
}

type expiredSweeper interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// SweepRevokedTokens periodically deletes expired rows when revocations live
// in the database. Redis expires its keys on its own, so nothing runs there.
// It blocks until ctx is done.
func SweepRevokedTokens(ctx context.Context, revoker TokenRevocations, every time.Duration, logger *zap.Logger) {
	sweeper, ok := revoker.(expiredSweeper)
	if !ok {
		return
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := sweeper.DeleteExpired(ctx)
			if err != nil {
				logger.Warn("sweeping revoked tokens failed", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Info("swept revoked tokens", zap.Int64("deleted", n))
			}
		}
	}
}
