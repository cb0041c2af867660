// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

import (
	"time"

	userdto "admin_backend/internal/feature/user/transport/http/dto"
)

// LoginReq represents the request body for the /login endpoint.
type LoginReq struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8,max=32"`
	RememberMe bool   `json:"remember_me"`
}

// SignupReq represents the request body for the /signup endpoint.
type SignupReq struct {
	Name                 string `json:"name" binding:"required,min=5,max=20"`
	Email                string `json:"email" binding:"required,email,max=255"`
	Password             string `json:"password" binding:"required,min=8,max=32"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
	RememberMe           bool   `json:"remember_me"`
}

// AuthRes is returned by login and signup.
type AuthRes struct {
	User      userdto.UserRes `json:"user"`
	Token     string          `json:"token"`
	TokenType string          `json:"token_type"`
	ExpiresAt time.Time       `json:"expires_at"`
}
