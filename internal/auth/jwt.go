// Package auth issues and verifies the bearer tokens that stand in for
// sessions, and resolves each request's caller into an explicit Identity.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/example/blog-platform/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is the resolved caller of a request.
type Identity struct {
	ID   uint
	Role string
}

func (i Identity) IsAdmin() bool { return i.Role == models.RoleAdmin }

// CanMutate reports whether the caller may mutate a resource owned by
// ownerID: the owner themselves, or any admin.
func CanMutate(ownerID uint, caller Identity) bool {
	return caller.ID == ownerID || caller.IsAdmin()
}

type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Denylist records revoked token IDs until their natural expiry.
type Denylist interface {
	DenyToken(ctx context.Context, jti string, until time.Time) error
	IsTokenDenied(ctx context.Context, jti string) (bool, error)
}

type Manager struct {
	secret   []byte
	ttl      time.Duration
	denylist Denylist
}

// NewManager builds a token manager. denylist may be nil, in which case
// logout revocation is disabled and tokens stay valid until expiry.
func NewManager(secret string, ttl time.Duration, denylist Denylist) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, denylist: denylist}
}

func (m *Manager) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ID == "" {
		return nil, ErrInvalidToken
	}
	if m.denylist != nil {
		denied, err := m.denylist.IsTokenDenied(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if denied {
			return nil, ErrInvalidToken
		}
	}
	return claims, nil
}

// Revoke adds the token's JTI to the denylist until its expiry.
func (m *Manager) Revoke(ctx context.Context, claims *Claims) error {
	if m.denylist == nil || claims.ExpiresAt == nil {
		return nil
	}
	return m.denylist.DenyToken(ctx, claims.ID, claims.ExpiresAt.Time)
}
