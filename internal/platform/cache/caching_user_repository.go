package cache

import (
	"context"

	"go.uber.org/zap"

	"admin_backend/internal/feature/user/domain/entity"
	"admin_backend/internal/feature/user/usecase"
	"admin_backend/internal/platform/store"
)

const kindUser = "User"

// CachingUserRepository decorates a UserRepository with read-through caching.
// Credential checks are never cached.
type CachingUserRepository struct {
	inner usecase.UserRepository
	decorator
}

var _ usecase.UserRepository = (*CachingUserRepository)(nil)

// NewCachingUserRepository decorates inner. A nil s bypasses the cache.
func NewCachingUserRepository(inner usecase.UserRepository, s Store, opts Options) *CachingUserRepository {
	return &CachingUserRepository{inner: inner, decorator: newDecorator(s, kindUser, opts)}
}

func (c *CachingUserRepository) FindByCredentials(ctx context.Context, email, password string) (*entity.User, error) {
	return c.inner.FindByCredentials(ctx, email, password)
}

// CreateUser populates the entity key of the new user.
func (c *CachingUserRepository) CreateUser(ctx context.Context, attrs usecase.UserAttributes) (*entity.User, error) {
	created, err := c.inner.CreateUser(ctx, attrs)
	if err != nil || !c.enabled() {
		return created, err
	}
	put(ctx, &c.decorator, c.keys.Info(created.ID), userSnapshot(*created))
	return created, nil
}

func (c *CachingUserRepository) GetAllUsers(ctx context.Context, req store.PageRequest) (store.Page[entity.User], error) {
	req = req.Normalize(c.keys.defaultLimit)
	return readThrough(ctx, &c.decorator, c.keys.List(req.Page, req.Limit),
		func() (store.Page[entity.User], error) { return c.inner.GetAllUsers(ctx, req) },
		func(p store.Page[entity.User]) store.Page[UserSnapshot] { return store.MapPage(p, userSnapshot) },
		func(p store.Page[UserSnapshot]) store.Page[entity.User] { return store.MapPage(p, UserSnapshot.entity) },
	)
}

func (c *CachingUserRepository) GetInfoUser(ctx context.Context, id uint) (*entity.User, error) {
	return readThrough(ctx, &c.decorator, c.keys.Info(id),
		func() (*entity.User, error) { return c.inner.GetInfoUser(ctx, id) },
		func(u *entity.User) UserSnapshot { return userSnapshot(*u) },
		func(s UserSnapshot) *entity.User { return ptr(s.entity()) },
	)
}

// UpdateByID evicts the entity key and repopulates it from the inner repository.
func (c *CachingUserRepository) UpdateByID(ctx context.Context, attrs usecase.UserAttributes, id uint) (*entity.User, error) {
	updated, err := c.inner.UpdateByID(ctx, attrs, id)
	if err != nil || !c.enabled() {
		return updated, err
	}

	key := c.keys.Info(id)
	c.evict(ctx, key)
	fresh, err := c.inner.GetInfoUser(ctx, id)
	if err != nil {
		c.logger.Warn("cache refresh after update failed", zap.String("key", key), zap.Error(err))
		return updated, nil
	}
	put(ctx, &c.decorator, key, userSnapshot(*fresh))
	return updated, nil
}

// DeleteByID evicts the entity key once the inner delete succeeded.
func (c *CachingUserRepository) DeleteByID(ctx context.Context, id uint) (bool, error) {
	ok, err := c.inner.DeleteByID(ctx, id)
	if err != nil || !c.enabled() {
		return ok, err
	}
	c.evict(ctx, c.keys.Info(id))
	return ok, nil
}
