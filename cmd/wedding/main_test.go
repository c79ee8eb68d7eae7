package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-rsvp/internal/models"
	"wedding-rsvp/internal/storage"
)

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := newRootCommand()

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "migrate", "guests", "admin", "whatsapp"})
}

func TestPrintGuests(t *testing.T) {
	var buf bytes.Buffer
	printGuests(&buf, "All Guests", nil)
	assert.Equal(t, "No guests found.\n", buf.String())

	buf.Reset()
	printGuests(&buf, "All Guests", []models.Guest{
		{FirstName: "Jane", LastName: "Smith", HouseholdID: "h-1", RSVPStatus: "ACCEPTED",
			UpdatedAt: time.Date(2026, 5, 1, 10, 30, 0, 0, time.UTC)},
	})
	out := buf.String()
	assert.Contains(t, out, "All Guests (1 total):")
	assert.Contains(t, out, "Name: Jane Smith")
	assert.Contains(t, out, "Status: Accepted")
	assert.Contains(t, out, "Updated: 2026-05-01 10:30:00")
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_MigrateListAndCreateUser(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cli.db")
	t.Setenv("WEDDING_DATABASE_URL", dbPath)
	t.Setenv("WEDDING_SESSION_SECRET", "cli-secret")
	t.Setenv("WEDDING_LOG_LEVEL", "disabled")

	_, err := runCLI(t, "", "migrate")
	require.NoError(t, err)

	store, err := storage.NewStorage(context.Background(), "sqlite3", dbPath)
	require.NoError(t, err)
	h, err := store.CreateHousehold(context.Background())
	require.NoError(t, err)
	g, err := store.AddGuest(context.Background(), h.ID, "Jane", "Smith")
	require.NoError(t, err)
	require.NoError(t, store.UpdateRSVP(context.Background(), h.ID, g.ID, models.RSVPAccepted))
	_, err = store.AddGuest(context.Background(), h.ID, "John", "Smith")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	out, err := runCLI(t, "", "guests", "list", "--status", "accepted")
	require.NoError(t, err)
	assert.Contains(t, out, "Accepted Guests (1 total):")
	assert.Contains(t, out, "Jane Smith")
	assert.NotContains(t, out, "John Smith")

	_, err = runCLI(t, "", "guests", "list", "--status", "maybe")
	assert.Error(t, err)

	out, err = runCLI(t, "correct horse\n", "admin", "create-user", "--email", "couple@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Created admin couple@example.com")
}
