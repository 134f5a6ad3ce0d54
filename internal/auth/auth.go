package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	userDatamodel "github.com/lawateaditya/Stock-Management/internal/core/datamodel/user"
)

// SessionCookieName is the cookie carrying the federated session token.
// The session row it references is the source of truth; the cookie is
// only the pointer to it.
const SessionCookieName = "session_token"

// User is the resolved identity attached to authenticated requests and
// returned by every endpoint. It never carries the password hash.
type User struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Picture   string    `json:"picture,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is a server-side login session created by the federated flow.
type Session struct {
	SessionToken string
	UserID       string
	ExpiresAt    time.Time
}

// Claims represents JWT token claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenGenerator creates and validates access tokens.
type TokenGenerator interface {
	GenerateAccessToken(userID string, email string) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

type JWTTokenGenerator struct {
	Secret         []byte
	AccessTokenTTL time.Duration
}

// ErrSessionNotFound signals between repository and service that no
// session row matches a presented cookie. It never reaches the wire:
// credential resolution falls back to bearer auth instead.
var ErrSessionNotFound = errors.New("session not found")

type ctxKey string

// ContextUserKey is where the authentication middleware stores the
// resolved user for downstream handlers.
const ContextUserKey ctxKey = "auth.user"

func ContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, user)
}

func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(ContextUserKey).(*User)
	return user, ok
}

// FromDataModel converts a persistence row to the sanitized domain user.
func FromDataModel(dm *userDatamodel.User) *User {
	return &User{
		UserID:    dm.UserID,
		Email:     dm.Email,
		Name:      dm.Name,
		Role:      Role(dm.Role),
		Picture:   dm.Picture,
		IsActive:  dm.IsActive,
		CreatedAt: dm.CreatedAt,
	}
}

func sessionFromDataModel(dm *userDatamodel.Session) *Session {
	return &Session{
		SessionToken: dm.SessionToken,
		UserID:       dm.UserID,
		ExpiresAt:    dm.ExpiresAt,
	}
}
