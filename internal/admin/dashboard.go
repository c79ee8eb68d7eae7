package admin

import (
	"context"
	"fmt"

	"wedding-rsvp/internal/models"
)

// HouseholdRow is one household as shown on the dashboard
type HouseholdRow struct {
	models.Household
	Name  string
	Tally models.Tally
}

// MessageRow is one submitted note as shown on the dashboard
type MessageRow struct {
	models.Message
	Label string
}

// Dashboard is everything the admin overview renders
type Dashboard struct {
	Stats      models.Stats
	Households []HouseholdRow
	Messages   []MessageRow
}

// Pending is the number of guests who have not answered
func (d Dashboard) Pending() int {
	return d.Stats.Total - d.Stats.Accepted - d.Stats.Declined
}

// Dashboard loads totals, households newest first and messages newest first
func (m *Manager) Dashboard(ctx context.Context) (Dashboard, error) {
	stats, err := m.roster.Stats(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("failed to load stats: %w", err)
	}

	households, err := m.roster.ListHouseholds(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("failed to load households: %w", err)
	}

	messages, err := m.roster.ListMessages(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("failed to load messages: %w", err)
	}

	d := Dashboard{
		Stats:      stats,
		Households: make([]HouseholdRow, 0, len(households)),
		Messages:   make([]MessageRow, 0, len(messages)),
	}
	for _, h := range households {
		d.Households = append(d.Households, HouseholdRow{Household: h, Name: h.Label(), Tally: h.Tally()})
	}
	for _, msg := range messages {
		d.Messages = append(d.Messages, MessageRow{Message: msg, Label: msg.HouseholdLabel()})
	}
	return d, nil
}

// FindGuest locates a guest across the loaded households
func (d Dashboard) FindGuest(guestID string) (models.Guest, bool) {
	for _, h := range d.Households {
		for _, g := range h.Guests {
			if g.ID == guestID {
				return g, true
			}
		}
	}
	return models.Guest{}, false
}
