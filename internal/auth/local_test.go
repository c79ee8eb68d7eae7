package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-rsvp/internal/storage"
)

func newTestLocal(t *testing.T) (*Local, *storage.Storage) {
	t.Helper()
	s, err := storage.NewStorage(context.Background(), "sqlite3", filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	l, err := NewLocal(s, "test-secret", time.Hour)
	require.NoError(t, err)
	return l, s
}

func TestNewLocal_RequiresSecret(t *testing.T) {
	_, err := NewLocal(nil, "", time.Hour)
	assert.Error(t, err)
}

func TestHashPassword_MinimumLength(t *testing.T) {
	_, err := HashPassword("short")
	assert.Error(t, err)
}

func TestSignInAndCurrentUser(t *testing.T) {
	l, _ := newTestLocal(t)
	ctx := context.Background()

	created, err := l.CreateUser(ctx, "Couple@Example.com", "correct horse")
	require.NoError(t, err)

	_, err = l.SignIn(ctx, "couple@example.com", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = l.SignIn(ctx, "nobody@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	sess, err := l.SignIn(ctx, "couple@example.com", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, created.ID, sess.User.ID)

	user, err := l.CurrentUser(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, "couple@example.com", user.Email)
}

func TestCurrentUser_RejectsBadTokens(t *testing.T) {
	l, _ := newTestLocal(t)
	ctx := context.Background()
	_, err := l.CreateUser(ctx, "couple@example.com", "correct horse")
	require.NoError(t, err)
	sess, err := l.SignIn(ctx, "couple@example.com", "correct horse")
	require.NoError(t, err)

	other, err := NewLocal(l.users, "another-secret", time.Hour)
	require.NoError(t, err)
	_, err = other.CurrentUser(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": sess.User.ID, "iss": issuer})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = l.CurrentUser(ctx, unsigned)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = l.CurrentUser(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestCurrentUser_Expired(t *testing.T) {
	l, _ := newTestLocal(t)
	ctx := context.Background()
	_, err := l.CreateUser(ctx, "couple@example.com", "correct horse")
	require.NoError(t, err)

	now := time.Now()
	l.now = func() time.Time { return now }
	sess, err := l.SignIn(ctx, "couple@example.com", "correct horse")
	require.NoError(t, err)

	l.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = l.CurrentUser(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSignOut_RevokesToken(t *testing.T) {
	l, _ := newTestLocal(t)
	ctx := context.Background()
	_, err := l.CreateUser(ctx, "couple@example.com", "correct horse")
	require.NoError(t, err)
	sess, err := l.SignIn(ctx, "couple@example.com", "correct horse")
	require.NoError(t, err)

	require.NoError(t, l.SignOut(ctx, sess.Token))
	_, err = l.CurrentUser(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	assert.NoError(t, l.SignOut(ctx, "garbage"))
}
