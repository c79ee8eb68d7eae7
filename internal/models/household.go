package models

import (
	"strings"
	"time"
)

// UnknownHousehold labels a household none of whose members has a last name
const UnknownHousehold = "Unknown Household"

// Household groups guests who RSVP together
type Household struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	Guests    []Guest   `json:"guests"`
}

// Label derives the display name from the most frequent last name among the
// members. Ties go to the name seen first.
func (h Household) Label() string {
	return HouseholdLabel(h.Guests)
}

// HouseholdLabel is Household.Label for a bare member list
func HouseholdLabel(guests []Guest) string {
	counts := make(map[string]int)
	var order []string
	for _, g := range guests {
		last := strings.TrimSpace(g.LastName)
		if last == "" {
			continue
		}
		if _, seen := counts[last]; !seen {
			order = append(order, last)
		}
		counts[last]++
	}

	best, bestCount := "", 0
	for _, name := range order {
		if counts[name] > bestCount {
			best, bestCount = name, counts[name]
		}
	}
	if best == "" {
		return UnknownHousehold
	}
	return best + " Household"
}

// Tally counts members per normalized status
func (h Household) Tally() Tally {
	t := Tally{Total: len(h.Guests)}
	for _, g := range h.Guests {
		switch g.Status() {
		case RSVPAccepted:
			t.Accepted++
		case RSVPDeclined:
			t.Declined++
		}
	}
	t.Pending = t.Total - t.Accepted - t.Declined
	return t
}

// Tally holds per-status member counts
type Tally struct {
	Total    int
	Accepted int
	Declined int
	Pending  int
}
