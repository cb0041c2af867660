// Package usecase implements the business logic for the category feature.
package usecase

import (
	"context"

	"admin_backend/internal/feature/category/domain/entity"
	"admin_backend/internal/platform/store"
)

// CategoryUsecase exposes category operations to the transport layer. It holds
// no caching or persistence logic of its own.
type CategoryUsecase struct {
	repo CategoryRepository
}

// NewCategoryUsecase creates a CategoryUsecase over repo.
func NewCategoryUsecase(repo CategoryRepository) *CategoryUsecase {
	return &CategoryUsecase{repo: repo}
}

func (u *CategoryUsecase) GetAllCategory(ctx context.Context, req store.PageRequest) (store.Page[entity.Category], error) {
	return u.repo.GetAllCategory(ctx, req)
}

func (u *CategoryUsecase) GetCategory(ctx context.Context, id uint) (*entity.Category, error) {
	return u.repo.GetCategory(ctx, id)
}

func (u *CategoryUsecase) GetParent(ctx context.Context) ([]entity.Category, error) {
	return u.repo.GetParent(ctx)
}

func (u *CategoryUsecase) Create(ctx context.Context, attrs CategoryAttributes) (*entity.Category, error) {
	return u.repo.Create(ctx, attrs)
}

func (u *CategoryUsecase) Update(ctx context.Context, attrs CategoryAttributes, id uint) (*entity.Category, error) {
	return u.repo.Update(ctx, attrs, id)
}

func (u *CategoryUsecase) Delete(ctx context.Context, id uint) (bool, error) {
	return u.repo.DeleteCategory(ctx, id)
}
