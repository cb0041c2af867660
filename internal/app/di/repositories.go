// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	categoryadapters "admin_backend/internal/feature/category/adapters"
	categoryusecase "admin_backend/internal/feature/category/usecase"
	useradapters "admin_backend/internal/feature/user/adapters"
	userusecase "admin_backend/internal/feature/user/usecase"
	"admin_backend/internal/platform/cache"
	"admin_backend/internal/platform/config"
)

// CacheBackend is what the caching repositories write to. A nil Store means
// the plain repositories are used.
type CacheBackend struct {
	Store   cache.Store
	Options cache.Options
}

// Enabled reports whether repositories should be wrapped.
func (b CacheBackend) Enabled() bool { return b.Store != nil }

// NewCacheBackend builds the Redis cache behind a circuit breaker. It returns
// a disabled backend when Redis is unavailable or caching is switched off.
func NewCacheBackend(rdb *redis.Client, cfg config.Config, logger *zap.Logger, obs cache.Observer) CacheBackend {
	opts := cache.Options{
		Namespace:    cfg.Cache.Namespace,
		DefaultLimit: cfg.Paginate.Limit,
		TTL:          cache.RandomTTL(cfg.Cache.TTLMin, cfg.Cache.TTLMax),
		Logger:       logger,
		Observer:     obs,
	}
	if rdb == nil || !cfg.Cache.Enabled {
		logger.Info("repository cache disabled", zap.Bool("redis", rdb != nil), zap.Bool("enabled", cfg.Cache.Enabled))
		return CacheBackend{Options: opts}
	}

	breaker := cache.NewBreakerStore(cache.NewRedisStore(rdb), cache.DefaultBreakerConfig("redis-cache"), logger)
	return CacheBackend{Store: breaker, Options: opts}
}

// NewCategoryRepository returns the category repository, cached when the backend is enabled.
func NewCategoryRepository(db *gorm.DB, limit int, backend CacheBackend) categoryusecase.CategoryRepository {
	repo := categoryadapters.NewCategoryRepository(db, limit)
	if !backend.Enabled() {
		return repo
	}
	return cache.NewCachingCategoryRepository(repo, backend.Store, backend.Options)
}

// NewUserRepository returns the user repository, cached when the backend is enabled.
func NewUserRepository(db *gorm.DB, hasher useradapters.PasswordHasher, limit int, backend CacheBackend) userusecase.UserRepository {
	repo := useradapters.NewUserRepository(db, hasher, limit)
	if !backend.Enabled() {
		return repo
	}
	return cache.NewCachingUserRepository(repo, backend.Store, backend.Options)
}
