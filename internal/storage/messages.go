package storage

import (
	"context"
	"database/sql"
	"fmt"

	"wedding-rsvp/internal/models"
)

// ListMessages returns submitted notes newest first
func (s *Storage) ListMessages(ctx context.Context) ([]models.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, household_id, guest_id, message, submitted_by_name, submitted_by_last_name, submitted_at
		FROM rsvp_submissions
		ORDER BY submitted_at DESC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		var (
			m                                 models.Message
			guestID, text, sender, senderLast sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.HouseholdID, &guestID, &text, &sender, &senderLast, &m.SubmittedAt); err != nil {
			return nil, fmt.Errorf("list messages: %w", err)
		}
		m.GuestID = guestID.String
		m.Message = text.String
		m.SenderName = sender.String
		m.SenderLastName = senderLast.String
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}
