package admin

import (
	"strings"

	"wedding-rsvp/internal/models"
)

// EditBuffer holds an inline member edit until it is saved
type EditBuffer struct {
	GuestID     string
	HouseholdID string
	FirstName   string
	LastName    string
}

// StartEdit loads a guest into a fresh buffer
func StartEdit(g models.Guest) EditBuffer {
	return EditBuffer{
		GuestID:     g.ID,
		HouseholdID: g.HouseholdID,
		FirstName:   g.FirstName,
		LastName:    g.LastName,
	}
}

// Trimmed returns the buffer with surrounding whitespace removed from both names
func (e EditBuffer) Trimmed() EditBuffer {
	e.FirstName = strings.TrimSpace(e.FirstName)
	e.LastName = strings.TrimSpace(e.LastName)
	return e
}

// Validate requires both names
func (e EditBuffer) Validate() error {
	if strings.TrimSpace(e.FirstName) == "" || strings.TrimSpace(e.LastName) == "" {
		return ErrNameRequired
	}
	return nil
}
