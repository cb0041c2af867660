package usecase

import (
	"context"

	"admin_backend/internal/feature/user/domain/entity"
	"admin_backend/internal/platform/store"
)

// UserAttributes are the writable fields of a user. Password is plaintext here
// and is hashed by the repository.
type UserAttributes struct {
	Name     string
	Email    string
	Password string
}

// UserRepository abstracts user persistence. Both the plain repository and
// its caching decorator implement it.
type UserRepository interface {
	// FindByCredentials returns the user owning email when password matches,
	// or (nil, nil) on any mismatch.
	FindByCredentials(ctx context.Context, email, password string) (*entity.User, error)

	// CreateUser persists a new user. Store rejections, including a taken
	// email, are apperr.ErrPersistence.
	CreateUser(ctx context.Context, attrs UserAttributes) (*entity.User, error)

	// GetAllUsers returns one page of users. An empty page is apperr.ErrNotFound.
	GetAllUsers(ctx context.Context, req store.PageRequest) (store.Page[entity.User], error)

	// GetInfoUser returns the user with id or apperr.ErrNotFound.
	GetInfoUser(ctx context.Context, id uint) (*entity.User, error)

	// UpdateByID updates the user with id. A blank password keeps the current one.
	UpdateByID(ctx context.Context, attrs UserAttributes, id uint) (*entity.User, error)

	// DeleteByID removes the user with id or returns apperr.ErrNotFound.
	DeleteByID(ctx context.Context, id uint) (bool, error)
}
