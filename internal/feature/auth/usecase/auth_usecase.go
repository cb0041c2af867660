// Package usecase implements the business logic for the auth feature.
package usecase

import (
	"context"
	"fmt"
	"time"

	"admin_backend/internal/feature/user/domain/entity"
	userusecase "admin_backend/internal/feature/user/usecase"
	jwtmw "admin_backend/internal/platform/jwt"
	"admin_backend/internal/shared/apperr"
	"admin_backend/internal/shared/messages"
)

// UserRepository is the part of the user repository the auth flow needs.
// Both the plain and the cached user repository satisfy it.
type UserRepository interface {
	FindByCredentials(ctx context.Context, email, password string) (*entity.User, error)
	CreateUser(ctx context.Context, attrs userusecase.UserAttributes) (*entity.User, error)
	GetInfoUser(ctx context.Context, id uint) (*entity.User, error)
}

// TokenGenerator issues signed access tokens.
type TokenGenerator interface {
	GenerateToken(userID uint, email string, rememberMe bool) (jwtmw.Token, error)
}

// TokenRevoker invalidates a token id until its expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
}

type LoginInput struct {
	Email      string
	Password   string
	RememberMe bool
}

type SignupInput struct {
	Name       string
	Email      string
	Password   string
	RememberMe bool
}

// AuthResult is returned by a successful login or signup.
type AuthResult struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

// Identity is the authenticated caller as established by the auth middleware.
type Identity struct {
	UserID    uint
	TokenID   string
	ExpiresAt time.Time
}

// authUsecase implements the login, signup, logout and me flows.
type authUsecase struct {
	users   UserRepository
	tokens  TokenGenerator
	revoker TokenRevoker
}

// NewAuthUsecase creates a new authUsecase.
func NewAuthUsecase(users UserRepository, tokens TokenGenerator, revoker TokenRevoker) *authUsecase {
	return &authUsecase{
		users:   users,
		tokens:  tokens,
		revoker: revoker,
	}
}

// Login checks the credentials and issues a token. Unknown emails and wrong
// passwords both yield apperr.ErrLogin.
func (u *authUsecase) Login(ctx context.Context, in LoginInput) (AuthResult, error) {
	user, err := u.users.FindByCredentials(ctx, in.Email, in.Password)
	if err != nil {
		return AuthResult{}, err
	}
	if user == nil {
		return AuthResult{}, apperr.Login(messages.LoginWrongPasswordOrUsername)
	}

	tok, err := u.tokens.GenerateToken(user.ID, user.Email, in.RememberMe)
	if err != nil {
		return AuthResult{}, fmt.Errorf("failed to generate token: %w", err)
	}
	return AuthResult{User: user, Token: tok.Value, ExpiresAt: tok.ExpiresAt}, nil
}

// Signup creates the user and logs them in with the submitted credentials.
func (u *authUsecase) Signup(ctx context.Context, in SignupInput) (AuthResult, error) {
	if _, err := u.users.CreateUser(ctx, userusecase.UserAttributes{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
	}); err != nil {
		return AuthResult{}, err
	}
	return u.Login(ctx, LoginInput{Email: in.Email, Password: in.Password, RememberMe: in.RememberMe})
}

// Logout revokes the token presented by id.
func (u *authUsecase) Logout(ctx context.Context, id Identity) error {
	if err := u.revoker.Revoke(ctx, id.TokenID, id.ExpiresAt); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// Me returns the authenticated user.
func (u *authUsecase) Me(ctx context.Context, id Identity) (*entity.User, error) {
	return u.users.GetInfoUser(ctx, id.UserID)
}
