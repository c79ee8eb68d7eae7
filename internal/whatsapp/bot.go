package whatsapp

import (
	"context"
	"fmt"
	"strings"

	"go.mau.fi/whatsmeow/types/events"

	"wedding-rsvp/internal/models"
)

// Roster is what the chat commands read
type Roster interface {
	Stats(ctx context.Context) (models.Stats, error)
	ListHouseholds(ctx context.Context) ([]models.Household, error)
}

// Bot answers guest-list questions from the couple's own numbers. Messages
// from anyone else are ignored.
type Bot struct {
	sender Sender
	roster Roster
	admins map[string]bool
}

// NewBot creates a bot that accepts commands from the given numbers
func NewBot(sender Sender, roster Roster, adminNumbers []string) *Bot {
	admins := make(map[string]bool, len(adminNumbers))
	for _, n := range adminNumbers {
		admins[NormalizePhoneNumber(n)] = true
	}
	return &Bot{sender: sender, roster: roster, admins: admins}
}

// HandleMessage is a MessageHandler for the Service
func (b *Bot) HandleMessage(ctx context.Context, msg *events.Message) error {
	if msg.Message == nil {
		return nil
	}
	text := msg.Message.GetConversation()
	if text == "" {
		text = msg.Message.GetExtendedTextMessage().GetText()
	}
	if text == "" {
		return nil
	}

	phone := senderPhone(msg.Info.Sender)
	reply, err := b.Reply(ctx, phone, text)
	if err != nil || reply == "" {
		return err
	}
	if err := b.sender.SendMessage(ctx, phone, reply); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	return nil
}

// Reply computes the answer to a command; an empty reply means ignore
func (b *Bot) Reply(ctx context.Context, phone, text string) (string, error) {
	if !b.admins[NormalizePhoneNumber(phone)] {
		return "", nil
	}
	text = strings.ToLower(strings.TrimSpace(text))

	switch {
	case containsAny(text, "stats", "status", "summary", "📊"):
		return b.stats(ctx)
	case containsAny(text, "households", "guests", "list"):
		return b.households(ctx)
	case containsAny(text, "help", "?"):
		return "Commands:\n• *stats* totals\n• *households* per household answers", nil
	default:
		return "", nil
	}
}

func (b *Bot) stats(ctx context.Context) (string, error) {
	s, err := b.roster.Stats(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load stats: %w", err)
	}
	return fmt.Sprintf(
		"📊 *Guest list*\n\nTotal: %d\n✅ Accepted: %d\n❌ Declined: %d\n⏳ Pending: %d",
		s.Total, s.Accepted, s.Declined, s.Total-s.Accepted-s.Declined,
	), nil
}

func (b *Bot) households(ctx context.Context) (string, error) {
	hs, err := b.roster.ListHouseholds(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load households: %w", err)
	}
	if len(hs) == 0 {
		return "No households yet.", nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🏠 *Households (%d)*\n", len(hs))
	for _, h := range hs {
		t := h.Tally()
		fmt.Fprintf(&sb, "\n%s: %d ✅ %d ❌ %d ⏳", h.Label(), t.Accepted, t.Declined, t.Pending)
	}
	return sb.String(), nil
}

// containsAny checks if the text contains any of the given keywords
func containsAny(text string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
