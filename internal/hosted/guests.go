package hosted

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"wedding-rsvp/internal/models"
)

const guestSelect = "id,household_id,first_name,last_name,rsvp_status"

type guestRow struct {
	ID          string  `json:"id"`
	HouseholdID string  `json:"household_id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	RSVPStatus  *string `json:"rsvp_status"`
}

func (r guestRow) guest() models.Guest {
	var raw string
	if r.RSVPStatus != nil {
		raw = *r.RSVPStatus
	}
	return models.Guest{
		ID:          r.ID,
		HouseholdID: r.HouseholdID,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		RSVPStatus:  models.NormalizeStatus(raw),
	}
}

func guests(rows []guestRow) []models.Guest {
	out := make([]models.Guest, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.guest())
	}
	return out
}

// FindGuests matches the first name exactly and the last name by substring,
// both case-insensitively. At most two rows are returned.
func (c *Client) FindGuests(ctx context.Context, firstName, lastNameContains string) ([]models.Guest, error) {
	q := url.Values{}
	q.Set("select", guestSelect)
	q.Set("first_name", "ilike."+escapeLike(firstName))
	q.Set("last_name", "ilike.*"+escapeLike(lastNameContains)+"*")
	q.Set("limit", "2")

	var rows []guestRow
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/rest/v1/guests", query: q}, &rows); err != nil {
		return nil, err
	}
	return guests(rows), nil
}

// HouseholdMembers lists a household ordered by last then first name
func (c *Client) HouseholdMembers(ctx context.Context, householdID string) ([]models.Guest, error) {
	q := url.Values{}
	q.Set("select", guestSelect)
	q.Set("household_id", "eq."+householdID)
	q.Set("order", "last_name.asc,first_name.asc")

	var rows []guestRow
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/rest/v1/guests", query: q}, &rows); err != nil {
		return nil, err
	}
	return guests(rows), nil
}

// AddGuest inserts a pending member into a household
func (c *Client) AddGuest(ctx context.Context, householdID, firstName, lastName string) (models.Guest, error) {
	body := map[string]string{
		"household_id": householdID,
		"first_name":   firstName,
		"last_name":    lastName,
		"rsvp_status":  string(models.RSVPPending),
	}
	q := url.Values{"select": {guestSelect}}

	var rows []guestRow
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/rest/v1/guests",
		query:  q,
		body:   body,
		prefer: "return=representation",
	}, &rows)
	if err != nil {
		return models.Guest{}, err
	}
	if len(rows) == 0 {
		return models.Guest{}, fmt.Errorf("insert returned no guest")
	}
	return rows[0].guest(), nil
}

func scoped(householdID, guestID string) url.Values {
	return url.Values{
		"id":           {"eq." + guestID},
		"household_id": {"eq." + householdID},
	}
}

// UpdateGuestName renames a member, scoped by guest and household
func (c *Client) UpdateGuestName(ctx context.Context, householdID, guestID, firstName, lastName string) error {
	_, err := c.do(ctx, request{
		method: http.MethodPatch,
		path:   "/rest/v1/guests",
		query:  scoped(householdID, guestID),
		body:   map[string]string{"first_name": firstName, "last_name": lastName},
	}, nil)
	return err
}

// UpdateRSVP overrides a member's status, scoped by guest and household
func (c *Client) UpdateRSVP(ctx context.Context, householdID, guestID string, status models.RSVPStatus) error {
	_, err := c.do(ctx, request{
		method: http.MethodPatch,
		path:   "/rest/v1/guests",
		query:  scoped(householdID, guestID),
		body:   map[string]string{"rsvp_status": string(status)},
	}, nil)
	return err
}

// DeleteGuest removes a member, scoped by guest and household
func (c *Client) DeleteGuest(ctx context.Context, householdID, guestID string) error {
	_, err := c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/rest/v1/guests",
		query:  scoped(householdID, guestID),
	}, nil)
	return err
}

// countGuests issues a count-only query; an empty status counts everyone.
// ilike without wildcards is the case-insensitive equality NormalizeStatus uses.
func (c *Client) countGuests(ctx context.Context, status models.RSVPStatus) (int, error) {
	q := url.Values{"select": {"id"}}
	if status != "" {
		q.Set("rsvp_status", "ilike."+string(status))
	}
	resp, err := c.do(ctx, request{
		method: http.MethodHead,
		path:   "/rest/v1/guests",
		query:  q,
		prefer: "count=exact",
	}, nil)
	if err != nil {
		return 0, err
	}
	return parseCount(resp.Header.Get("Content-Range"))
}

// Stats returns dashboard totals
func (c *Client) Stats(ctx context.Context) (models.Stats, error) {
	var stats models.Stats
	var err error
	if stats.Total, err = c.countGuests(ctx, ""); err != nil {
		return models.Stats{}, err
	}
	if stats.Accepted, err = c.countGuests(ctx, models.RSVPAccepted); err != nil {
		return models.Stats{}, err
	}
	if stats.Declined, err = c.countGuests(ctx, models.RSVPDeclined); err != nil {
		return models.Stats{}, err
	}
	return stats, nil
}

// escapeLike neutralizes LIKE pattern characters. PostgREST has no escape
// for its own '*' wildcard, so it is dropped.
func escapeLike(s string) string {
	r := make([]rune, 0, len(s))
	for _, ch := range s {
		switch ch {
		case '*':
			continue
		case '%', '_', '\\':
			r = append(r, '\\')
		}
		r = append(r, ch)
	}
	return string(r)
}

// GetAllGuests lists every guest ordered by last then first name
func (c *Client) GetAllGuests(ctx context.Context) ([]models.Guest, error) {
	q := url.Values{}
	q.Set("select", guestSelect)
	q.Set("order", "last_name.asc,first_name.asc")

	var rows []guestRow
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/rest/v1/guests", query: q}, &rows); err != nil {
		return nil, err
	}
	return guests(rows), nil
}

// GetGuestsByStatus filters on the normalized status, so unset and unknown
// values count as pending
func (c *Client) GetGuestsByStatus(ctx context.Context, status models.RSVPStatus) ([]models.Guest, error) {
	all, err := c.GetAllGuests(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Guest
	for _, g := range all {
		if g.Status() == status {
			out = append(out, g)
		}
	}
	return out, nil
}
