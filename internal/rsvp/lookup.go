package rsvp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"wedding-rsvp/internal/models"
)

// Directory is the slice of the data service the wizard needs
type Directory interface {
	FindGuests(ctx context.Context, firstName, lastNameContains string) ([]models.Guest, error)
	HouseholdMembers(ctx context.Context, householdID string) ([]models.Guest, error)
	SubmitRSVP(ctx context.Context, sub models.Submission) error
}

// ParseFullName splits free text into a first name and the remaining tokens
// joined by single spaces
func ParseFullName(fullName string) (first, rest string, err error) {
	parts := strings.Fields(fullName)
	if len(parts) < 2 {
		return "", "", ErrNameIncomplete
	}
	return parts[0], strings.Join(parts[1:], " "), nil
}

// LookupGuest resolves a full name to exactly one guest. Zero matches and
// ambiguous matches both fail with ErrGuestNotFound.
func LookupGuest(ctx context.Context, dir Directory, fullName string) (models.Guest, error) {
	first, rest, err := ParseFullName(fullName)
	if err != nil {
		return models.Guest{}, err
	}

	guests, err := dir.FindGuests(ctx, first, rest)
	if err != nil {
		return models.Guest{}, fmt.Errorf("%w: %v", ErrGuestNotFound, err)
	}
	if len(guests) != 1 {
		return models.Guest{}, ErrGuestNotFound
	}
	return guests[0], nil
}

// LoadRoster fetches a household's members ordered by last then first name
func LoadRoster(ctx context.Context, dir Directory, householdID string) ([]models.Guest, error) {
	if householdID == "" {
		return nil, ErrRosterLoad
	}
	members, err := dir.HouseholdMembers(ctx, householdID)
	if err != nil {
		return nil, errors.Join(ErrRosterLoad, err)
	}

	roster := make([]models.Guest, 0, len(members))
	for _, m := range members {
		if m.HouseholdID == "" || m.HouseholdID == householdID {
			m.HouseholdID = householdID
			roster = append(roster, m)
		}
	}
	sort.SliceStable(roster, func(i, j int) bool {
		if roster[i].LastName != roster[j].LastName {
			return roster[i].LastName < roster[j].LastName
		}
		return roster[i].FirstName < roster[j].FirstName
	})
	return roster, nil
}
