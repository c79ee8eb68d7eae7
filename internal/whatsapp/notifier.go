package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"wedding-rsvp/internal/models"
)

// Sender delivers a text message to a phone number
type Sender interface {
	SendMessage(ctx context.Context, phoneNumber, message string) error
}

// Notifier tells the couple about each RSVP submission
type Notifier struct {
	sender     Sender
	recipients []string
	log        zerolog.Logger
}

// NewNotifier sends to every number in recipients
func NewNotifier(sender Sender, recipients []string, log zerolog.Logger) *Notifier {
	return &Notifier{
		sender:     sender,
		recipients: recipients,
		log:        log.With().Str("component", "whatsapp-notifier").Logger(),
	}
}

// RSVPSubmitted sends a summary of the submission to every recipient.
// Delivery failures are joined; one bad number does not stop the rest.
func (n *Notifier) RSVPSubmitted(ctx context.Context, members []models.Guest, sub models.Submission) error {
	text := FormatSubmission(members, sub)

	var errs []error
	for _, to := range n.recipients {
		if err := n.sender.SendMessage(ctx, to, text); err != nil {
			errs = append(errs, fmt.Errorf("notify %s: %w", to, err))
			continue
		}
		n.log.Info().Str("to", to).Str("household_id", sub.HouseholdID).Msg("rsvp notification sent")
	}
	return errors.Join(errs...)
}

// FormatSubmission renders a submission as a chat message
func FormatSubmission(members []models.Guest, sub models.Submission) string {
	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.ID] = m.FullName()
	}
	name := func(id string) string {
		if n, ok := names[id]; ok && n != "" {
			return n
		}
		return id
	}

	var b strings.Builder
	fmt.Fprintf(&b, "💌 *New RSVP: %s*\n\n", models.HouseholdLabel(members))
	for _, u := range sub.Updates {
		mark := "❌"
		if u.Status == models.RSVPAccepted {
			mark = "✅"
		}
		fmt.Fprintf(&b, "%s %s\n", mark, name(u.GuestID))
	}
	if len(sub.Notes) > 0 {
		b.WriteString("\nNotes:\n")
		for _, note := range sub.Notes {
			fmt.Fprintf(&b, "• %s: %s\n", note.SenderName, note.Message)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
