package hosted

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/h2non/gock.v1"

	"wedding-rsvp/internal/auth"
)

func TestSignIn(t *testing.T) {
	c := newTestClient(t)

	gock.New(testURL).Post("/auth/v1/token").
		MatchParam("grant_type", "password").
		JSON(map[string]string{"email": "couple@example.com", "password": "secret"}).
		Reply(200).
		JSON(map[string]any{
			"access_token": "jwt-token",
			"expires_in":   3600,
			"user":         map[string]any{"id": "u-1", "email": "couple@example.com"},
		})

	sess, err := c.SignIn(context.Background(), "couple@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", sess.Token)
	assert.Equal(t, "u-1", sess.User.ID)
	assert.False(t, sess.ExpiresAt.IsZero())
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	c := newTestClient(t)

	gock.New(testURL).Post("/auth/v1/token").
		Reply(400).
		JSON(map[string]any{"error": "invalid_grant", "error_description": "Invalid login credentials"})

	_, err := c.SignIn(context.Background(), "couple@example.com", "nope")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestCurrentUser(t *testing.T) {
	c := newTestClient(t)

	gock.New(testURL).Get("/auth/v1/user").
		MatchHeader("Authorization", "Bearer jwt-token").
		Reply(200).
		JSON(map[string]any{"id": "u-1", "email": "couple@example.com"})
	gock.New(testURL).Get("/auth/v1/user").
		MatchHeader("Authorization", "Bearer expired").
		Reply(401).
		JSON(map[string]any{"msg": "invalid JWT"})

	user, err := c.CurrentUser(context.Background(), "jwt-token")
	require.NoError(t, err)
	assert.Equal(t, "couple@example.com", user.Email)

	_, err = c.CurrentUser(context.Background(), "expired")
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)

	_, err = c.CurrentUser(context.Background(), "")
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestSignOut(t *testing.T) {
	c := newTestClient(t)

	gock.New(testURL).Post("/auth/v1/logout").
		MatchHeader("Authorization", "Bearer jwt-token").
		Reply(204)

	require.NoError(t, c.SignOut(context.Background(), "jwt-token"))
	require.NoError(t, c.SignOut(context.Background(), ""))
	assert.True(t, gock.IsDone())
}
