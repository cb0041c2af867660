// Package adapters provides the repository implementation of the category feature.
package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"admin_backend/internal/feature/category/domain/entity"
	"admin_backend/internal/feature/category/usecase"
	"admin_backend/internal/platform/store"
	"admin_backend/internal/shared/apperr"
	"admin_backend/internal/shared/messages"
)

// maxDepth bounds the ancestor walk used for cycle detection.
const maxDepth = 64

// categoryRepository implements usecase.CategoryRepository on a gorm store.
type categoryRepository struct {
	store *store.Store[entity.Category]
	limit int
}

var _ usecase.CategoryRepository = (*categoryRepository)(nil)

// NewCategoryRepository creates the plain category repository. limit is the
// page size used when a request carries none.
func NewCategoryRepository(db *gorm.DB, limit int) *categoryRepository {
	if limit <= 0 {
		limit = store.DefaultLimit
	}
	return &categoryRepository{
		store: store.New[entity.Category](db, "name", "slug", "parent_id"),
		limit: limit,
	}
}

func (r *categoryRepository) GetAllCategory(ctx context.Context, req store.PageRequest) (store.Page[entity.Category], error) {
	page, err := r.store.Paginate(ctx, req.Normalize(r.limit))
	if err != nil {
		return store.Page[entity.Category]{}, err
	}
	// An out-of-range page is reported the same way as an empty table.
	if page.IsEmpty() {
		return store.Page[entity.Category]{}, apperr.NotFound(messages.CategoryNotFound)
	}
	return page, nil
}

func (r *categoryRepository) GetCategory(ctx context.Context, id uint) (*entity.Category, error) {
	c, err := r.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound(messages.CategoryNotFound)
	}
	return c, nil
}

func (r *categoryRepository) GetParent(ctx context.Context) ([]entity.Category, error) {
	roots, err := r.store.FindWhere(ctx, "parent_id IS NULL")
	if err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return nil, apperr.NotFound(messages.CategoryNotFound)
	}
	return roots, nil
}

func (r *categoryRepository) Create(ctx context.Context, attrs usecase.CategoryAttributes) (*entity.Category, error) {
	if attrs.ParentID != nil {
		if err := r.checkParentExists(ctx, *attrs.ParentID); err != nil {
			return nil, err
		}
	}
	c := &entity.Category{Name: attrs.Name, Slug: attrs.Slug, ParentID: attrs.ParentID}
	if err := r.store.Create(ctx, c); err != nil {
		return nil, r.writeError(ctx, messages.CategoryCreateFail, attrs, 0, err)
	}
	return c, nil
}

func (r *categoryRepository) Update(ctx context.Context, attrs usecase.CategoryAttributes, id uint) (*entity.Category, error) {
	if _, err := r.GetCategory(ctx, id); err != nil {
		return nil, err
	}
	if attrs.ParentID != nil {
		if err := r.checkAncestry(ctx, id, *attrs.ParentID); err != nil {
			return nil, err
		}
	}

	updated, err := r.store.UpdateByID(ctx, id, map[string]any{
		"name":      attrs.Name,
		"slug":      attrs.Slug,
		"parent_id": attrs.ParentID,
	})
	if err != nil {
		return nil, r.writeError(ctx, messages.CategoryUpdateFail, attrs, id, err)
	}
	if updated == nil {
		// Deleted between the existence check and the write.
		return nil, apperr.NotFound(messages.CategoryNotFound)
	}
	return updated, nil
}

func (r *categoryRepository) DeleteCategory(ctx context.Context, id uint) (bool, error) {
	if _, err := r.GetCategory(ctx, id); err != nil {
		return false, err
	}

	hasChildren, err := r.store.ExistsByField(ctx, "parent_id", id)
	if err != nil {
		return false, err
	}
	if hasChildren {
		return false, apperr.Conflict(messages.CategoryDeleteHasChildren)
	}

	ok, err := r.store.Delete(ctx, id)
	if err != nil {
		return false, apperr.Persistence(messages.CategoryDeleteFail, err)
	}
	if !ok {
		return false, apperr.NotFound(messages.CategoryNotFound)
	}
	return true, nil
}

// writeError turns a unique violation into a validation error on the column
// already held by another category (self is excluded). Anything else is a
// persistence failure.
func (r *categoryRepository) writeError(ctx context.Context, message string, attrs usecase.CategoryAttributes, self uint, err error) error {
	if !errors.Is(err, store.ErrDuplicate) {
		return apperr.Persistence(message, err)
	}
	taken := []struct {
		field, value, message string
	}{
		{"name", attrs.Name, messages.CategoryNameUnique},
		{"slug", attrs.Slug, messages.CategorySlugUnique},
	}
	for _, col := range taken {
		other, lookupErr := r.store.FindFirstByField(ctx, col.field, col.value)
		if lookupErr != nil {
			return apperr.Persistence(message, errors.Join(err, lookupErr))
		}
		if other != nil && other.ID != self {
			return apperr.Invalid(col.field, col.message, err)
		}
	}
	return apperr.Persistence(message, err)
}

func (r *categoryRepository) checkParentExists(ctx context.Context, parentID uint) error {
	p, err := r.store.Find(ctx, parentID)
	if err != nil {
		return err
	}
	if p == nil {
		return apperr.NotFound(messages.CategoryParentNotFound)
	}
	return nil
}

// checkAncestry rejects a parent that is id itself or one of its descendants.
func (r *categoryRepository) checkAncestry(ctx context.Context, id, parentID uint) error {
	cur := parentID
	for depth := 0; depth < maxDepth; depth++ {
		if cur == id {
			return apperr.Conflict(messages.CategoryParentCycle)
		}
		node, err := r.store.Find(ctx, cur)
		if err != nil {
			return err
		}
		if node == nil {
			if cur == parentID {
				return apperr.NotFound(messages.CategoryParentNotFound)
			}
			return nil
		}
		if node.ParentID == nil {
			return nil
		}
		cur = *node.ParentID
	}
	return fmt.Errorf("category %d: ancestry deeper than %d", id, maxDepth)
}
