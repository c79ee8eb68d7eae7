package admin

import (
	"context"
	"fmt"
	"sync"

	"wedding-rsvp/internal/models"
)

type update struct {
	householdID, guestID string
	first, last          string
	status               models.RSVPStatus
}

// fakeRoster records mutations; block, when set, holds each mutation until closed
type fakeRoster struct {
	mu sync.Mutex

	households []models.Household
	stats      models.Stats
	messages   []models.Message

	err     error
	listErr error
	block   chan struct{}
	entered chan string

	renames  []update
	statuses []update
	deleted  []string
	nextID   int
}

func (f *fakeRoster) wait(id string) {
	if f.entered != nil {
		f.entered <- id
	}
	if f.block != nil {
		<-f.block
	}
}

func (f *fakeRoster) ListHouseholds(context.Context) ([]models.Household, error) {
	return f.households, f.listErr
}

func (f *fakeRoster) CreateHousehold(context.Context) (models.Household, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.Household{}, f.err
	}
	f.nextID++
	h := models.Household{ID: fmt.Sprintf("h-%d", f.nextID)}
	f.households = append(f.households, h)
	return h, nil
}

func (f *fakeRoster) DeleteHousehold(_ context.Context, householdID string) error {
	f.wait(householdID)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, householdID)
	return nil
}

func (f *fakeRoster) AddGuest(_ context.Context, householdID, first, last string) (models.Guest, error) {
	f.wait(householdID)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.Guest{}, f.err
	}
	f.nextID++
	return models.Guest{
		ID:          fmt.Sprintf("g-%d", f.nextID),
		HouseholdID: householdID,
		FirstName:   first,
		LastName:    last,
		RSVPStatus:  models.RSVPPending,
	}, nil
}

func (f *fakeRoster) UpdateGuestName(_ context.Context, householdID, guestID, first, last string) error {
	f.wait(guestID)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.renames = append(f.renames, update{householdID: householdID, guestID: guestID, first: first, last: last})
	return nil
}

func (f *fakeRoster) UpdateRSVP(_ context.Context, householdID, guestID string, status models.RSVPStatus) error {
	f.wait(guestID)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.statuses = append(f.statuses, update{householdID: householdID, guestID: guestID, status: status})
	return nil
}

func (f *fakeRoster) DeleteGuest(_ context.Context, householdID, guestID string) error {
	f.wait(guestID)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, householdID+"/"+guestID)
	return nil
}

func (f *fakeRoster) Stats(context.Context) (models.Stats, error) {
	return f.stats, nil
}

func (f *fakeRoster) ListMessages(context.Context) ([]models.Message, error) {
	return f.messages, nil
}
