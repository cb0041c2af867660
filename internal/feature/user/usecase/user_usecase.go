// Package usecase implements the business logic for the user feature.
package usecase

import (
	"context"

	"admin_backend/internal/feature/user/domain/entity"
	"admin_backend/internal/platform/store"
)

// UserUsecase exposes user CRUD to the transport layer.
type UserUsecase struct {
	repo UserRepository
}

// NewUserUsecase creates a UserUsecase over repo.
func NewUserUsecase(repo UserRepository) *UserUsecase {
	return &UserUsecase{repo: repo}
}

func (u *UserUsecase) GetAllUsers(ctx context.Context, req store.PageRequest) (store.Page[entity.User], error) {
	return u.repo.GetAllUsers(ctx, req)
}

func (u *UserUsecase) GetInfoUser(ctx context.Context, id uint) (*entity.User, error) {
	return u.repo.GetInfoUser(ctx, id)
}

func (u *UserUsecase) CreateUser(ctx context.Context, attrs UserAttributes) (*entity.User, error) {
	return u.repo.CreateUser(ctx, attrs)
}

func (u *UserUsecase) UpdateUser(ctx context.Context, attrs UserAttributes, id uint) (*entity.User, error) {
	return u.repo.UpdateByID(ctx, attrs, id)
}

func (u *UserUsecase) DeleteUser(ctx context.Context, id uint) (bool, error) {
	return u.repo.DeleteByID(ctx, id)
}
