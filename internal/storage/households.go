package storage

import (
	"context"
	"fmt"

	"wedding-rsvp/internal/models"
)

// CreateHousehold inserts an empty household
func (s *Storage) CreateHousehold(ctx context.Context) (models.Household, error) {
	h := models.Household{
		ID:        s.newID(),
		CreatedAt: s.now(),
		Guests:    []models.Guest{},
	}
	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO households (id, created_at) VALUES (?, ?)
	`), h.ID, h.CreatedAt)
	if err != nil {
		return models.Household{}, fmt.Errorf("create household: %w", err)
	}
	return h, nil
}

// ListHouseholds returns every household newest first, each with its members
// ordered by last then first name
func (s *Storage) ListHouseholds(ctx context.Context) ([]models.Household, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at FROM households
		ORDER BY created_at DESC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list households: %w", err)
	}
	defer rows.Close()

	households := make([]models.Household, 0)
	index := make(map[string]int)
	for rows.Next() {
		var h models.Household
		if err := rows.Scan(&h.ID, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("list households: %w", err)
		}
		h.Guests = []models.Guest{}
		index[h.ID] = len(households)
		households = append(households, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list households: %w", err)
	}

	guests, err := s.GetAllGuests(ctx)
	if err != nil {
		return nil, err
	}
	for _, g := range guests {
		if i, ok := index[g.HouseholdID]; ok {
			households[i].Guests = append(households[i].Guests, g)
		}
	}
	return households, nil
}

// DeleteHousehold removes a household and its guests in one transaction.
// Guests are deleted explicitly rather than trusting the foreign key cascade,
// which SQLite only honours when the pragma is on.
func (s *Storage) DeleteHousehold(ctx context.Context, householdID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete household: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM guests WHERE household_id = ?`), householdID); err != nil {
		return fmt.Errorf("delete household: guests: %w", err)
	}

	res, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM households WHERE id = ?`), householdID)
	if err != nil {
		return fmt.Errorf("delete household: %w", err)
	}
	if err := expectOne(res); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete household: commit: %w", err)
	}
	return nil
}
