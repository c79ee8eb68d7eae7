package storage

import (
	"context"
	"database/sql/driver"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"wedding-rsvp/internal/models"
)

// createTestStorage opens a fresh SQLite database under t.TempDir()
func createTestStorage(t *testing.T) *Storage {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := NewStorage(context.Background(), "sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// seedHousehold creates a household holding the given "First Last" members
func seedHousehold(t *testing.T, s *Storage, names ...[2]string) (models.Household, []models.Guest) {
	t.Helper()
	ctx := context.Background()
	h, err := s.CreateHousehold(ctx)
	require.NoError(t, err)

	var guests []models.Guest
	for _, n := range names {
		g, err := s.AddGuest(ctx, h.ID, n[0], n[1])
		require.NoError(t, err)
		guests = append(guests, g)
	}
	return h, guests
}

// Matching functions for sqlmock
type AnyTime struct{}

func (a AnyTime) Match(v driver.Value) bool {
	_, ok := v.(time.Time)
	return ok
}
