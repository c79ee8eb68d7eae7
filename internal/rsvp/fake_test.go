package rsvp

import (
	"context"
	"strings"

	"wedding-rsvp/internal/models"
)

// fakeDirectory is an in-memory Directory that counts calls
type fakeDirectory struct {
	guests []models.Guest

	findErr    error
	membersErr error
	submitErr  error

	findCalls    int
	membersCalls int
	submissions  []models.Submission
}

func (f *fakeDirectory) FindGuests(_ context.Context, first, last string) ([]models.Guest, error) {
	f.findCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []models.Guest
	for _, g := range f.guests {
		if strings.EqualFold(g.FirstName, first) && strings.Contains(strings.ToLower(g.LastName), strings.ToLower(last)) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeDirectory) HouseholdMembers(_ context.Context, householdID string) ([]models.Guest, error) {
	f.membersCalls++
	if f.membersErr != nil {
		return nil, f.membersErr
	}
	var out []models.Guest
	for _, g := range f.guests {
		if g.HouseholdID == householdID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeDirectory) SubmitRSVP(_ context.Context, sub models.Submission) error {
	f.submissions = append(f.submissions, sub)
	return f.submitErr
}

func smithHousehold() *fakeDirectory {
	return &fakeDirectory{guests: []models.Guest{
		{ID: "g-john", HouseholdID: "h-smith", FirstName: "John", LastName: "Smith"},
		{ID: "g-jane", HouseholdID: "h-smith", FirstName: "Jane", LastName: "Smith"},
		{ID: "g-amy", HouseholdID: "h-smith", FirstName: "Amy", LastName: "Adams"},
		{ID: "g-bob", HouseholdID: "h-jones", FirstName: "Bob", LastName: "Jones"},
	}}
}
