// Package dto defines data transfer objects for the user feature's HTTP transport layer.
package dto

import (
	"time"

	"admin_backend/internal/feature/user/domain/entity"
	"admin_backend/internal/feature/user/usecase"
)

// UserRes is the public representation of a user. The password hash is never exposed.
type UserRes struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromEntity converts a user entity to its response.
func FromEntity(u entity.User) UserRes {
	return UserRes{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// CreateUserReq is the body of POST /users.
type CreateUserReq struct {
	Name                 string `json:"name" binding:"required,min=5,max=20"`
	Email                string `json:"email" binding:"required,email,max=255"`
	Password             string `json:"password" binding:"required,min=8,max=32"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

func (r CreateUserReq) Attributes() usecase.UserAttributes {
	return usecase.UserAttributes{Name: r.Name, Email: r.Email, Password: r.Password}
}

// UpdateUserReq is the body of PUT /users/:id. An empty password keeps the current one.
type UpdateUserReq struct {
	Name                 string `json:"name" binding:"required,max=255"`
	Email                string `json:"email" binding:"required,email,max=255"`
	Password             string `json:"password" binding:"omitempty,min=8,max=32"`
	PasswordConfirmation string `json:"password_confirmation" binding:"eqfield=Password"`
}

func (r UpdateUserReq) Attributes() usecase.UserAttributes {
	return usecase.UserAttributes{Name: r.Name, Email: r.Email, Password: r.Password}
}
