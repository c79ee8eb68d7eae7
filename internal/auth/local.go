package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"wedding-rsvp/internal/models"
	"wedding-rsvp/internal/storage"
)

// UserStore is the admin account storage used by Local
type UserStore interface {
	CreateAdminUser(ctx context.Context, email, passwordHash string) (models.AdminUser, error)
	GetAdminUserByEmail(ctx context.Context, email string) (models.AdminUser, error)
	GetAdminUser(ctx context.Context, id string) (models.AdminUser, error)
}

const issuer = "wedding-rsvp"

type sessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Local signs admins in against bcrypt hashes in the SQL store and issues
// HS256 session tokens. Sign-out revokes the token id until it would expire.
type Local struct {
	users  UserStore
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewLocal creates a Local provider; secret must be non-empty
func NewLocal(users UserStore, secret string, ttl time.Duration) (*Local, error) {
	if secret == "" {
		return nil, errors.New("session_secret is required for local admin sign-in")
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Local{
		users:   users,
		secret:  []byte(secret),
		ttl:     ttl,
		now:     time.Now,
		revoked: make(map[string]time.Time),
	}, nil
}

// HashPassword hashes a new admin password
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", errors.New("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CreateUser registers an admin account
func (l *Local) CreateUser(ctx context.Context, email, password string) (models.AdminUser, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return models.AdminUser{}, errors.New("email is required")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return models.AdminUser{}, err
	}
	return l.users.CreateAdminUser(ctx, email, hash)
}

// SignIn checks the password and issues a session token
func (l *Local) SignIn(ctx context.Context, email, password string) (Session, error) {
	user, err := l.users.GetAdminUserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, storage.ErrNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to load admin user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return Session{}, ErrInvalidCredentials
	}

	now := l.now()
	expires := now.Add(l.ttl)
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Email: user.Email,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(l.secret)
	if err != nil {
		return Session{}, fmt.Errorf("failed to sign session: %w", err)
	}
	return Session{Token: token, ExpiresAt: expires, User: user}, nil
}

// SignOut revokes the token. Signing out an invalid token is a no-op.
func (l *Local) SignOut(_ context.Context, token string) error {
	claims, err := l.parse(token)
	if err != nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.revoked[claims.ID] = claims.ExpiresAt.Time
	return nil
}

// CurrentUser resolves a session token to its admin
func (l *Local) CurrentUser(ctx context.Context, token string) (models.AdminUser, error) {
	claims, err := l.parse(token)
	if err != nil {
		return models.AdminUser{}, ErrUnauthenticated
	}
	if l.isRevoked(claims.ID) {
		return models.AdminUser{}, ErrUnauthenticated
	}
	user, err := l.users.GetAdminUser(ctx, claims.Subject)
	if errors.Is(err, storage.ErrNotFound) {
		return models.AdminUser{}, ErrUnauthenticated
	}
	if err != nil {
		return models.AdminUser{}, fmt.Errorf("failed to load admin user: %w", err)
	}
	return user, nil
}

func (l *Local) parse(token string) (*sessionClaims, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return l.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(l.now),
	)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, ErrUnauthenticated
	}
	return &claims, nil
}

func (l *Local) isRevoked(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for jti, exp := range l.revoked {
		if now.After(exp) {
			delete(l.revoked, jti)
		}
	}
	_, ok := l.revoked[id]
	return ok
}
