// Package handler provides the HTTP handlers of the auth feature.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"admin_backend/internal/feature/auth/transport/http/dto"
	"admin_backend/internal/feature/auth/usecase"
	"admin_backend/internal/feature/user/domain/entity"
	userdto "admin_backend/internal/feature/user/transport/http/dto"
	"admin_backend/internal/platform/http/response"
	jwtmw "admin_backend/internal/platform/jwt"
	"admin_backend/internal/shared/messages"
)

// AuthUsecase defines the auth operations used by the handler.
// Following Go conventions, the consumer (handler) defines the interface.
type AuthUsecase interface {
	Login(ctx context.Context, in usecase.LoginInput) (usecase.AuthResult, error)
	Signup(ctx context.Context, in usecase.SignupInput) (usecase.AuthResult, error)
	Logout(ctx context.Context, id usecase.Identity) error
	Me(ctx context.Context, id usecase.Identity) (*entity.User, error)
}

// AuthHandler handles the HTTP requests of the auth flows.
type AuthHandler struct {
	auth         AuthUsecase
	logger       *zap.Logger
	secureCookie bool
	now          func() time.Time
}

// NewAuthHandler creates a new AuthHandler. secureCookie marks the token
// cookie Secure and should be set outside development.
func NewAuthHandler(auth AuthUsecase, logger *zap.Logger, secureCookie bool) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger, secureCookie: secureCookie, now: time.Now}
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("login validation failed", zap.Error(err), zap.String("remote_addr", c.ClientIP()))
		response.ValidationFailed(c, err)
		return
	}

	res, err := h.auth.Login(c.Request.Context(), usecase.LoginInput{
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	h.logger.Info("user login successful", zap.Uint("user_id", res.User.ID), zap.String("remote_addr", c.ClientIP()))
	h.writeToken(c, messages.LoginSuccess, res)
}

// Signup handles POST /signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("signup validation failed", zap.Error(err), zap.String("remote_addr", c.ClientIP()))
		response.ValidationFailed(c, err)
		return
	}

	res, err := h.auth.Signup(c.Request.Context(), usecase.SignupInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	h.logger.Info("user signup successful", zap.Uint("user_id", res.User.ID), zap.String("remote_addr", c.ClientIP()))
	h.writeToken(c, messages.SignupSuccess, res)
}

// Logout handles DELETE /users/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		response.Message(c, http.StatusUnauthorized, messages.TokenInvalid)
		return
	}
	if err := h.auth.Logout(c.Request.Context(), id); err != nil {
		response.Error(c, h.logger, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(jwtmw.CookieName, "", -1, "/", "", h.secureCookie, true)
	response.Success(c, messages.LogoutSuccess)
}

// Me handles GET /users/me.
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		response.Message(c, http.StatusUnauthorized, messages.TokenInvalid)
		return
	}
	u, err := h.auth.Me(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Data(c, http.StatusOK, messages.UserGetMeInfoSuccess, userdto.FromEntity(*u))
}

func (h *AuthHandler) writeToken(c *gin.Context, message string, res usecase.AuthResult) {
	maxAge := int(res.ExpiresAt.Sub(h.now()).Seconds())
	if maxAge > 0 {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(jwtmw.CookieName, res.Token, maxAge, "/", "", h.secureCookie, true)
	}
	response.Data(c, http.StatusOK, message, dto.AuthRes{
		User:      userdto.FromEntity(*res.User),
		Token:     res.Token,
		TokenType: "Bearer",
		ExpiresAt: res.ExpiresAt,
	})
}

func identity(c *gin.Context) (usecase.Identity, bool) {
	userID, tokenID, expiresAt, ok := jwtmw.Identity(c)
	if !ok {
		return usecase.Identity{}, false
	}
	return usecase.Identity{UserID: userID, TokenID: tokenID, ExpiresAt: expiresAt}, true
}
