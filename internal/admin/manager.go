package admin

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"wedding-rsvp/internal/models"
)

// Roster is the slice of the data service the admin dashboard needs
type Roster interface {
	ListHouseholds(ctx context.Context) ([]models.Household, error)
	CreateHousehold(ctx context.Context) (models.Household, error)
	DeleteHousehold(ctx context.Context, householdID string) error

	AddGuest(ctx context.Context, householdID, firstName, lastName string) (models.Guest, error)
	UpdateGuestName(ctx context.Context, householdID, guestID, firstName, lastName string) error
	UpdateRSVP(ctx context.Context, householdID, guestID string, status models.RSVPStatus) error
	DeleteGuest(ctx context.Context, householdID, guestID string) error

	Stats(ctx context.Context) (models.Stats, error)
	ListMessages(ctx context.Context) ([]models.Message, error)
}

// Manager applies admin mutations to the roster. Each mutation holds only its
// own row busy, so edits to different rows proceed independently. There is no
// version check: the last write wins.
type Manager struct {
	roster Roster
	busy   *BusySet
	log    zerolog.Logger
}

// NewManager creates a Manager over roster
func NewManager(roster Roster, log zerolog.Logger) *Manager {
	return &Manager{
		roster: roster,
		busy:   NewBusySet(),
		log:    log.With().Str("component", "admin").Logger(),
	}
}

// Busy exposes the in-flight row ids for rendering disabled controls
func (m *Manager) Busy() *BusySet { return m.busy }

// withBusy runs fn while id is marked busy. Service errors are returned
// unwrapped so their message can be shown verbatim.
func (m *Manager) withBusy(id string, fn func() error) error {
	if id == "" {
		return ErrMissingID
	}
	if !m.busy.Acquire(id) {
		return ErrBusy
	}
	defer m.busy.Release(id)
	return fn()
}

// CreateHousehold inserts an empty household
func (m *Manager) CreateHousehold(ctx context.Context) (models.Household, error) {
	h, err := m.roster.CreateHousehold(ctx)
	if err != nil {
		m.log.Error().Err(err).Msg("create household failed")
		return models.Household{}, err
	}
	m.log.Info().Str("household_id", h.ID).Msg("household created")
	return h, nil
}

// AddGuest adds a pending member to a household
func (m *Manager) AddGuest(ctx context.Context, householdID, firstName, lastName string) (models.Guest, error) {
	firstName, lastName = strings.TrimSpace(firstName), strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return models.Guest{}, ErrNameRequired
	}

	var guest models.Guest
	err := m.withBusy(householdID, func() error {
		var err error
		guest, err = m.roster.AddGuest(ctx, householdID, firstName, lastName)
		return err
	})
	if err != nil {
		m.logFailure(err, "add guest", householdID, "")
		return models.Guest{}, err
	}
	m.log.Info().Str("household_id", householdID).Str("guest_id", guest.ID).Msg("guest added")
	return guest, nil
}

// SaveEdit writes an edit buffer back, scoped to the guest's household
func (m *Manager) SaveEdit(ctx context.Context, e EditBuffer) error {
	e = e.Trimmed()
	if err := e.Validate(); err != nil {
		return err
	}
	if e.HouseholdID == "" {
		return ErrMissingID
	}
	err := m.withBusy(e.GuestID, func() error {
		return m.roster.UpdateGuestName(ctx, e.HouseholdID, e.GuestID, e.FirstName, e.LastName)
	})
	if err != nil {
		m.logFailure(err, "rename guest", e.HouseholdID, e.GuestID)
		return err
	}
	return nil
}

// SetStatus overrides a guest's RSVP status. Any of the three statuses is allowed.
func (m *Manager) SetStatus(ctx context.Context, householdID, guestID, raw string) error {
	status, ok := models.ParseStatus(raw)
	if !ok {
		return ErrInvalidStatus
	}
	if householdID == "" {
		return ErrMissingID
	}
	err := m.withBusy(guestID, func() error {
		return m.roster.UpdateRSVP(ctx, householdID, guestID, status)
	})
	if err != nil {
		m.logFailure(err, "set status", householdID, guestID)
		return err
	}
	m.log.Info().Str("guest_id", guestID).Str("status", string(status)).Msg("status overridden")
	return nil
}

// DeleteGuest removes one member once the admin has confirmed
func (m *Manager) DeleteGuest(ctx context.Context, householdID, guestID string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	if householdID == "" {
		return ErrMissingID
	}
	err := m.withBusy(guestID, func() error {
		return m.roster.DeleteGuest(ctx, householdID, guestID)
	})
	if err != nil {
		m.logFailure(err, "delete guest", householdID, guestID)
		return err
	}
	m.log.Info().Str("household_id", householdID).Str("guest_id", guestID).Msg("guest deleted")
	return nil
}

// DeleteHousehold removes a household and its members once confirmed
func (m *Manager) DeleteHousehold(ctx context.Context, householdID string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	err := m.withBusy(householdID, func() error {
		return m.roster.DeleteHousehold(ctx, householdID)
	})
	if err != nil {
		m.logFailure(err, "delete household", householdID, "")
		return err
	}
	m.log.Info().Str("household_id", householdID).Msg("household deleted")
	return nil
}

func (m *Manager) logFailure(err error, action, householdID, guestID string) {
	if IsValidation(err) || errors.Is(err, ErrBusy) {
		return
	}
	ev := m.log.Error().Err(err).Str("action", action).Str("household_id", householdID)
	if guestID != "" {
		ev = ev.Str("guest_id", guestID)
	}
	ev.Msg("admin mutation failed")
}
