package cache

import (
	"context"

	"go.uber.org/zap"

	"admin_backend/internal/feature/category/domain/entity"
	"admin_backend/internal/feature/category/usecase"
	"admin_backend/internal/platform/store"
)

const kindCategory = "Category"

// CachingCategoryRepository decorates a CategoryRepository with read-through
// caching. Writes go to the inner repository first; afterwards the entity key
// is evicted and refreshed. Page and parent keys are left to expire.
type CachingCategoryRepository struct {
	inner usecase.CategoryRepository
	decorator
}

var _ usecase.CategoryRepository = (*CachingCategoryRepository)(nil)

// NewCachingCategoryRepository decorates inner. A nil s bypasses the cache.
func NewCachingCategoryRepository(inner usecase.CategoryRepository, s Store, opts Options) *CachingCategoryRepository {
	return &CachingCategoryRepository{inner: inner, decorator: newDecorator(s, kindCategory, opts)}
}

func (c *CachingCategoryRepository) GetAllCategory(ctx context.Context, req store.PageRequest) (store.Page[entity.Category], error) {
	req = req.Normalize(c.keys.defaultLimit)
	return readThrough(ctx, &c.decorator, c.keys.List(req.Page, req.Limit),
		func() (store.Page[entity.Category], error) { return c.inner.GetAllCategory(ctx, req) },
		func(p store.Page[entity.Category]) store.Page[CategorySnapshot] { return store.MapPage(p, categorySnapshot) },
		func(p store.Page[CategorySnapshot]) store.Page[entity.Category] { return store.MapPage(p, CategorySnapshot.entity) },
	)
}

func (c *CachingCategoryRepository) GetCategory(ctx context.Context, id uint) (*entity.Category, error) {
	return readThrough(ctx, &c.decorator, c.keys.Info(id),
		func() (*entity.Category, error) { return c.inner.GetCategory(ctx, id) },
		func(e *entity.Category) CategorySnapshot { return categorySnapshot(*e) },
		func(s CategorySnapshot) *entity.Category { return ptr(s.entity()) },
	)
}

func (c *CachingCategoryRepository) GetParent(ctx context.Context) ([]entity.Category, error) {
	return readThrough(ctx, &c.decorator, c.keys.ListParent(),
		func() ([]entity.Category, error) { return c.inner.GetParent(ctx) },
		mapSlice[entity.Category, CategorySnapshot](categorySnapshot),
		mapSlice[CategorySnapshot, entity.Category](CategorySnapshot.entity),
	)
}

// Create populates the entity key of the new category.
func (c *CachingCategoryRepository) Create(ctx context.Context, attrs usecase.CategoryAttributes) (*entity.Category, error) {
	created, err := c.inner.Create(ctx, attrs)
	if err != nil || !c.enabled() {
		return created, err
	}
	put(ctx, &c.decorator, c.keys.Info(created.ID), categorySnapshot(*created))
	return created, nil
}

// Update evicts the entity key and repopulates it from the inner repository.
func (c *CachingCategoryRepository) Update(ctx context.Context, attrs usecase.CategoryAttributes, id uint) (*entity.Category, error) {
	updated, err := c.inner.Update(ctx, attrs, id)
	if err != nil || !c.enabled() {
		return updated, err
	}

	key := c.keys.Info(id)
	c.evict(ctx, key)
	fresh, err := c.inner.GetCategory(ctx, id)
	if err != nil {
		c.logger.Warn("cache refresh after update failed", zap.String("key", key), zap.Error(err))
		return updated, nil
	}
	put(ctx, &c.decorator, key, categorySnapshot(*fresh))
	return updated, nil
}

// DeleteCategory evicts the entity key once the inner delete succeeded.
func (c *CachingCategoryRepository) DeleteCategory(ctx context.Context, id uint) (bool, error) {
	ok, err := c.inner.DeleteCategory(ctx, id)
	if err != nil || !c.enabled() {
		return ok, err
	}
	c.evict(ctx, c.keys.Info(id))
	return ok, nil
}

func ptr[T any](v T) *T { return &v }

func mapSlice[E, T any](fn func(E) T) func([]E) []T {
	return func(in []E) []T {
		out := make([]T, 0, len(in))
		for _, e := range in {
			out = append(out, fn(e))
		}
		return out
	}
}
