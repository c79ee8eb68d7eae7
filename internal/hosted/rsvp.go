package hosted

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"wedding-rsvp/internal/models"
)

// SubmitRSVP calls the service's atomic submit_rsvp procedure
func (c *Client) SubmitRSVP(ctx context.Context, sub models.Submission) error {
	if sub.Notes == nil {
		sub.Notes = []models.Note{}
	}
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/rest/v1/rpc/submit_rsvp",
		body:   sub,
	}, nil)
	return err
}

type messageRow struct {
	ID             string    `json:"id"`
	HouseholdID    *string   `json:"household_id"`
	GuestID        *string   `json:"guest_id"`
	Message        string    `json:"message"`
	SenderName     *string   `json:"submitted_by_name"`
	SenderLastName *string   `json:"submitted_by_last_name"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ListMessages returns submitted notes, newest first
func (c *Client) ListMessages(ctx context.Context) ([]models.Message, error) {
	q := url.Values{}
	q.Set("select", "id,household_id,guest_id,message,submitted_by_name,submitted_by_last_name,submitted_at")
	q.Set("order", "submitted_at.desc")

	var rows []messageRow
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/rest/v1/rsvp_submissions", query: q}, &rows); err != nil {
		return nil, err
	}
	out := make([]models.Message, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.Message{
			ID:             r.ID,
			HouseholdID:    deref(r.HouseholdID),
			GuestID:        deref(r.GuestID),
			Message:        r.Message,
			SenderName:     deref(r.SenderName),
			SenderLastName: deref(r.SenderLastName),
			SubmittedAt:    r.SubmittedAt,
		})
	}
	return out, nil
}
