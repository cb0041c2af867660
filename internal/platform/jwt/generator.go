package jwtmw

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the payload carried by access tokens.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// UserID returns the numeric subject of the token.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid subject %q: %w", c.Subject, err)
	}
	return uint(id), nil
}

// Token is a signed access token and the metadata needed to revoke it.
type Token struct {
	Value     string
	ID        string
	ExpiresAt time.Time
}

// Generator defines the interface for JWT token generation.
type Generator interface {
	// GenerateToken creates a signed JWT token for the given user. rememberMe
	// selects the long lifetime.
	GenerateToken(userID uint, email string, rememberMe bool) (Token, error)
}

// generator implements the Generator interface.
type generator struct {
	secret     []byte
	expiration time.Duration
	rememberMe time.Duration
	now        func() time.Time
}

// NewGenerator creates a new JWT generator. rememberMe falls back to
// expiration when it is not longer than it.
func NewGenerator(secret string, expiration, rememberMe time.Duration) *generator {
	if rememberMe < expiration {
		rememberMe = expiration
	}
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
		rememberMe: rememberMe,
		now:        time.Now,
	}
}

// GenerateToken creates a signed HS256 token with a fresh jti.
func (g *generator) GenerateToken(userID uint, email string, rememberMe bool) (Token, error) {
	now := g.now()
	ttl := g.expiration
	if rememberMe {
		ttl = g.rememberMe
	}
	exp := now.Add(ttl)
	jti := uuid.NewString()

	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return Token{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return Token{Value: signed, ID: jti, ExpiresAt: exp.Truncate(time.Second)}, nil
}

// ErrInvalidToken is returned for any token that fails parsing or verification.
var ErrInvalidToken = errors.New("invalid token")

// Parse verifies tokenStr with secret and returns its claims. Only HMAC
// signatures are accepted.
func Parse(secret, tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("%w: missing jti", ErrInvalidToken)
	}
	return claims, nil
}
