package usecase

import (
	"context"

	"admin_backend/internal/feature/category/domain/entity"
	"admin_backend/internal/platform/store"
)

// CategoryAttributes are the writable fields of a category.
type CategoryAttributes struct {
	Name     string
	Slug     string
	ParentID *uint
}

// CategoryRepository abstracts category persistence. Both the plain repository
// and its caching decorator implement it; which one is used is decided at wiring.
type CategoryRepository interface {
	// GetAllCategory returns one page of categories. An empty page is apperr.ErrNotFound.
	GetAllCategory(ctx context.Context, req store.PageRequest) (store.Page[entity.Category], error)

	// GetCategory returns the category with id or apperr.ErrNotFound.
	GetCategory(ctx context.Context, id uint) (*entity.Category, error)

	// GetParent returns the root categories or apperr.ErrNotFound when there are none.
	GetParent(ctx context.Context) ([]entity.Category, error)

	// Create persists a new category. Store rejections are apperr.ErrPersistence.
	Create(ctx context.Context, attrs CategoryAttributes) (*entity.Category, error)

	// Update replaces the attributes of the category with id and returns the refreshed row.
	Update(ctx context.Context, attrs CategoryAttributes, id uint) (*entity.Category, error)

	// DeleteCategory removes a childless category. apperr.ErrConflict if it has children.
	DeleteCategory(ctx context.Context, id uint) (bool, error)
}
