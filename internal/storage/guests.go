package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wedding-rsvp/internal/models"
)

const guestColumns = `id, household_id, first_name, last_name, rsvp_status, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanGuest(row scanner) (models.Guest, error) {
	var (
		g      models.Guest
		status sql.NullString
	)
	if err := row.Scan(&g.ID, &g.HouseholdID, &g.FirstName, &g.LastName, &status, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return models.Guest{}, err
	}
	g.RSVPStatus = models.NormalizeStatus(status.String)
	return g, nil
}

func (s *Storage) queryGuests(ctx context.Context, query string, args ...any) ([]models.Guest, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	guests := make([]models.Guest, 0)
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, err
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

// FindGuests matches the first name exactly and the last name by substring,
// both case-insensitively. At most two rows are returned, which is enough for
// callers to tell a unique match from an ambiguous one.
func (s *Storage) FindGuests(ctx context.Context, firstName, lastNameContains string) ([]models.Guest, error) {
	pattern := "%" + escapeLike(foldName(lastNameContains)) + "%"
	guests, err := s.queryGuests(ctx, `
		SELECT `+guestColumns+` FROM guests
		WHERE `+s.fold("first_name")+` = ? AND `+s.fold("last_name")+` LIKE ? ESCAPE '\'
		ORDER BY last_name ASC, first_name ASC
		LIMIT 2
	`, foldName(firstName), pattern)
	if err != nil {
		return nil, fmt.Errorf("find guests: %w", err)
	}
	return guests, nil
}

// HouseholdMembers returns every guest of a household ordered by last then first name
func (s *Storage) HouseholdMembers(ctx context.Context, householdID string) ([]models.Guest, error) {
	guests, err := s.queryGuests(ctx, `
		SELECT `+guestColumns+` FROM guests
		WHERE household_id = ?
		ORDER BY last_name ASC, first_name ASC
	`, householdID)
	if err != nil {
		return nil, fmt.Errorf("household members: %w", err)
	}
	return guests, nil
}

// GetGuest retrieves a guest by id
func (s *Storage) GetGuest(ctx context.Context, id string) (models.Guest, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT `+guestColumns+` FROM guests WHERE id = ?`), id)
	g, err := scanGuest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Guest{}, ErrNotFound
	}
	if err != nil {
		return models.Guest{}, fmt.Errorf("get guest: %w", err)
	}
	return g, nil
}

// GetAllGuests returns all guests
func (s *Storage) GetAllGuests(ctx context.Context) ([]models.Guest, error) {
	guests, err := s.queryGuests(ctx, `
		SELECT `+guestColumns+` FROM guests
		ORDER BY last_name ASC, first_name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("all guests: %w", err)
	}
	return guests, nil
}

// GetGuestsByStatus returns guests filtered by normalized RSVP status
func (s *Storage) GetGuestsByStatus(ctx context.Context, status models.RSVPStatus) ([]models.Guest, error) {
	all, err := s.GetAllGuests(ctx)
	if err != nil {
		return nil, err
	}

	var result []models.Guest
	for _, g := range all {
		if g.Status() == status {
			result = append(result, g)
		}
	}
	return result, nil
}

// AddGuest inserts a pending guest into an existing household
func (s *Storage) AddGuest(ctx context.Context, householdID, firstName, lastName string) (models.Guest, error) {
	now := s.now()
	g := models.Guest{
		ID:          s.newID(),
		HouseholdID: householdID,
		FirstName:   firstName,
		LastName:    lastName,
		RSVPStatus:  models.RSVPPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO guests (`+guestColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), g.ID, g.HouseholdID, g.FirstName, g.LastName, string(g.RSVPStatus), g.CreatedAt, g.UpdatedAt)
	if isForeignKeyViolation(err) {
		return models.Guest{}, ErrHouseholdNotFound
	}
	if err != nil {
		return models.Guest{}, fmt.Errorf("add guest: %w", err)
	}
	return g, nil
}

// UpdateGuestName renames a guest, scoped to its household
func (s *Storage) UpdateGuestName(ctx context.Context, householdID, guestID, firstName, lastName string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`
		UPDATE guests SET first_name = ?, last_name = ?, updated_at = ?
		WHERE id = ? AND household_id = ?
	`), firstName, lastName, s.now(), guestID, householdID)
	if err != nil {
		return fmt.Errorf("update guest: %w", err)
	}
	return expectOne(res)
}

// UpdateRSVP sets a guest's RSVP status, scoped to its household
func (s *Storage) UpdateRSVP(ctx context.Context, householdID, guestID string, status models.RSVPStatus) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`
		UPDATE guests SET rsvp_status = ?, updated_at = ?
		WHERE id = ? AND household_id = ?
	`), string(status), s.now(), guestID, householdID)
	if err != nil {
		return fmt.Errorf("update rsvp: %w", err)
	}
	return expectOne(res)
}

// DeleteGuest removes a guest, scoped to its household
func (s *Storage) DeleteGuest(ctx context.Context, householdID, guestID string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`
		DELETE FROM guests WHERE id = ? AND household_id = ?
	`), guestID, householdID)
	if err != nil {
		return fmt.Errorf("delete guest: %w", err)
	}
	return expectOne(res)
}

// CountGuests counts guests whose stored status reads as status under
// NormalizeStatus, or all guests when status is empty
func (s *Storage) CountGuests(ctx context.Context, status models.RSVPStatus) (int, error) {
	query := `SELECT COUNT(*) FROM guests`
	var args []any
	if status != "" {
		query += ` WHERE lower(rsvp_status) = ?`
		args = append(args, string(status))
	}

	var n int
	if err := s.db.QueryRowContext(ctx, s.rebind(query), args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count guests: %w", err)
	}
	return n, nil
}

// Stats returns the dashboard totals
func (s *Storage) Stats(ctx context.Context) (models.Stats, error) {
	var (
		st  models.Stats
		err error
	)
	if st.Total, err = s.CountGuests(ctx, ""); err != nil {
		return models.Stats{}, err
	}
	if st.Accepted, err = s.CountGuests(ctx, models.RSVPAccepted); err != nil {
		return models.Stats{}, err
	}
	if st.Declined, err = s.CountGuests(ctx, models.RSVPDeclined); err != nil {
		return models.Stats{}, err
	}
	return st, nil
}
