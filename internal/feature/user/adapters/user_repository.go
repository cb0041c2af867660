// Package adapters provides the repository implementation of the user feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"admin_backend/internal/feature/user/domain/entity"
	"admin_backend/internal/feature/user/usecase"
	"admin_backend/internal/platform/store"
	"admin_backend/internal/shared/apperr"
	"admin_backend/internal/shared/messages"
)

// PasswordHasher hashes new passwords and checks submitted credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// userRepository implements usecase.UserRepository on a gorm store.
type userRepository struct {
	store  *store.Store[entity.User]
	hasher PasswordHasher
	limit  int
}

var _ usecase.UserRepository = (*userRepository)(nil)

// NewUserRepository creates the plain user repository.
func NewUserRepository(db *gorm.DB, hasher PasswordHasher, limit int) *userRepository {
	if limit <= 0 {
		limit = store.DefaultLimit
	}
	return &userRepository{
		store:  store.New[entity.User](db, "email"),
		hasher: hasher,
		limit:  limit,
	}
}

// FindByCredentials looks the user up by email and verifies password. The
// hash comparison runs even for unknown emails.
func (r *userRepository) FindByCredentials(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := r.store.FindFirstByField(ctx, "email", email)
	if err != nil {
		return nil, err
	}
	hash := ""
	if u != nil {
		hash = u.Password
	}
	if !r.hasher.Verify(hash, password) || u == nil {
		return nil, nil
	}
	return u, nil
}

func (r *userRepository) CreateUser(ctx context.Context, attrs usecase.UserAttributes) (*entity.User, error) {
	hash, err := r.hasher.Hash(attrs.Password)
	if err != nil {
		return nil, apperr.Persistence(messages.UserCreateFail, err)
	}
	u := &entity.User{Name: attrs.Name, Email: attrs.Email, Password: hash}
	if err := r.store.Create(ctx, u); err != nil {
		return nil, writeError(messages.UserCreateFail, err)
	}
	return u, nil
}

func (r *userRepository) GetAllUsers(ctx context.Context, req store.PageRequest) (store.Page[entity.User], error) {
	page, err := r.store.Paginate(ctx, req.Normalize(r.limit))
	if err != nil {
		return store.Page[entity.User]{}, err
	}
	if page.IsEmpty() {
		return store.Page[entity.User]{}, apperr.NotFound(messages.UserNotFound)
	}
	return page, nil
}

func (r *userRepository) GetInfoUser(ctx context.Context, id uint) (*entity.User, error) {
	u, err := r.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound(messages.UserNotFound)
	}
	return u, nil
}

func (r *userRepository) UpdateByID(ctx context.Context, attrs usecase.UserAttributes, id uint) (*entity.User, error) {
	changes := map[string]any{
		"name":  attrs.Name,
		"email": attrs.Email,
	}
	if attrs.Password != "" {
		hash, err := r.hasher.Hash(attrs.Password)
		if err != nil {
			return nil, apperr.Persistence(messages.UserUpdateFail, err)
		}
		changes["password"] = hash
	}

	u, err := r.store.UpdateByID(ctx, id, changes)
	if err != nil {
		return nil, writeError(messages.UserUpdateFail, err)
	}
	if u == nil {
		return nil, apperr.NotFound(messages.UserNotFound)
	}
	return u, nil
}

func (r *userRepository) DeleteByID(ctx context.Context, id uint) (bool, error) {
	ok, err := r.store.Delete(ctx, id)
	if err != nil {
		return false, apperr.Persistence(messages.UserDeleteFail, err)
	}
	if !ok {
		return false, apperr.NotFound(messages.UserNotFound)
	}
	return true, nil
}

// writeError reports a taken email against the email field. Email is the only
// unique column of users.
func writeError(message string, err error) error {
	if errors.Is(err, store.ErrDuplicate) {
		return apperr.Invalid("email", messages.UserEmailUnique, err)
	}
	return apperr.Persistence(message, err)
}
