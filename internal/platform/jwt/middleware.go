package jwtmw

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"admin_backend/internal/platform/http/response"
	"admin_backend/internal/shared/messages"
)

// Context keys set by AuthRequired.
const (
	ContextUserID      = "userID"
	ContextTokenID     = "tokenID"
	ContextTokenExpiry = "tokenExpiry"
)

// CookieName is the cookie that carries the token for browser clients.
const CookieName = "token"

// RevocationChecker reports whether a token id has been revoked by logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only. The token is read from
// the Authorization header, then from the token cookie.
func AuthRequired(secret string, revoked RevocationChecker, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			response.Message(c, http.StatusUnauthorized, messages.TokenMismatch)
			return
		}

		if secret == "" {
			logger.Error("jwt secret is not configured")
			response.Message(c, http.StatusInternalServerError, messages.InternalError)
			return
		}

		claims, err := Parse(secret, tokenStr)
		if err != nil {
			response.Message(c, http.StatusUnauthorized, messages.TokenInvalid)
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			response.Message(c, http.StatusUnauthorized, messages.TokenInvalid)
			return
		}

		if revoked != nil {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				logger.Error("revocation check failed", zap.String("jti", claims.ID), zap.Error(err))
				response.Message(c, http.StatusInternalServerError, messages.InternalError)
				return
			}
			if isRevoked {
				response.Message(c, http.StatusUnauthorized, messages.TokenInvalid)
				return
			}
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextTokenID, claims.ID)
		c.Set(ContextTokenExpiry, claims.ExpiresAt.Time)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	if auth := c.GetHeader("Authorization"); auth != "" {
		if !strings.HasPrefix(auth, "Bearer ") {
			return "", false
		}
		tok := strings.TrimPrefix(auth, "Bearer ")
		return tok, tok != ""
	}
	if tok, err := c.Cookie(CookieName); err == nil && tok != "" {
		return tok, true
	}
	return "", false
}

// Identity returns the user id, token id and expiry stored by AuthRequired.
func Identity(c *gin.Context) (userID uint, tokenID string, expiresAt time.Time, ok bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return 0, "", time.Time{}, false
	}
	userID, ok = v.(uint)
	if !ok {
		return 0, "", time.Time{}, false
	}
	tokenID = c.GetString(ContextTokenID)
	expiresAt = c.GetTime(ContextTokenExpiry)
	return userID, tokenID, expiresAt, true
}
