package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminUsers(t *testing.T) {
	s := createTestStorage(t)
	ctx := context.Background()

	u, err := s.CreateAdminUser(ctx, " Couple@Example.com ", "hash")
	require.NoError(t, err)
	assert.Equal(t, "couple@example.com", u.Email)

	got, err := s.GetAdminUserByEmail(ctx, "COUPLE@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)

	byID, err := s.GetAdminUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, byID.Email)

	_, err = s.CreateAdminUser(ctx, "couple@example.com", "other")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	_, err = s.GetAdminUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
