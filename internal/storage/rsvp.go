package storage

import (
	"context"
	"errors"
	"fmt"

	"wedding-rsvp/internal/models"
)

// SubmitRSVP applies every status update and inserts every note as a single
// all-or-nothing transaction. Each update is scoped to the submitting
// household and must match exactly one guest.
func (s *Storage) SubmitRSVP(ctx context.Context, sub models.Submission) error {
	if sub.HouseholdID == "" {
		return errors.New("household id is required")
	}
	for _, u := range sub.Updates {
		if !u.Status.IsAnswer() {
			return fmt.Errorf("invalid rsvp status %q for guest %s", u.Status, u.GuestID)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("submit rsvp: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	now := s.now()

	update, err := tx.PrepareContext(ctx, s.rebind(`
		UPDATE guests SET rsvp_status = ?, updated_at = ?
		WHERE id = ? AND household_id = ?
	`))
	if err != nil {
		return fmt.Errorf("submit rsvp: prepare update: %w", err)
	}
	defer update.Close()

	for _, u := range sub.Updates {
		res, err := update.ExecContext(ctx, string(u.Status), now, u.GuestID, sub.HouseholdID)
		if err != nil {
			return fmt.Errorf("submit rsvp: update guest %s: %w", u.GuestID, err)
		}
		if err := expectOne(res); err != nil {
			if errors.Is(err, ErrNotFound) {
				return fmt.Errorf("guest %s is not a member of household %s", u.GuestID, sub.HouseholdID)
			}
			return fmt.Errorf("submit rsvp: %w", err)
		}
	}

	if len(sub.Notes) > 0 {
		insert, err := tx.PrepareContext(ctx, s.rebind(`
			INSERT INTO rsvp_submissions
			(id, household_id, guest_id, message, submitted_by_name, submitted_by_last_name, submitted_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`))
		if err != nil {
			return fmt.Errorf("submit rsvp: prepare insert: %w", err)
		}
		defer insert.Close()

		for _, n := range sub.Notes {
			_, err := insert.ExecContext(ctx, s.newID(), sub.HouseholdID, n.GuestID, n.Message, n.SenderName, n.SenderLastName, now)
			if err != nil {
				return fmt.Errorf("submit rsvp: insert note for guest %s: %w", n.GuestID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("submit rsvp: commit: %w", err)
	}
	return nil
}
