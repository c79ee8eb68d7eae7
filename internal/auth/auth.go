package auth

import (
	"context"
	"errors"
	"time"

	"wedding-rsvp/internal/models"
)

var (
	// ErrInvalidCredentials is shown inline on the login form
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUnauthenticated means the session token is missing, expired or revoked
	ErrUnauthenticated = errors.New("not signed in")
)

// Session is the result of a successful sign-in
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      models.AdminUser
}

// Provider authenticates admins. The RSVP wizard never goes through it.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (Session, error)
	SignOut(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (models.AdminUser, error)
}

type tokenKey struct{}

// WithToken attaches the signed-in admin's access token to ctx so that
// backends enforcing per-user policies can forward it
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom returns the access token attached by WithToken
func TokenFrom(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok && token != ""
}
