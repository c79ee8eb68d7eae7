package hosted

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"wedding-rsvp/internal/models"
)

type householdRow struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	Guests    []guestRow `json:"guests"`
}

// ListHouseholds returns every household with its members, newest first
func (c *Client) ListHouseholds(ctx context.Context) ([]models.Household, error) {
	q := url.Values{}
	q.Set("select", "id,created_at,guests("+guestSelect+")")
	q.Set("order", "created_at.desc")

	var rows []householdRow
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/rest/v1/households", query: q}, &rows); err != nil {
		return nil, err
	}

	out := make([]models.Household, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.Household{ID: r.ID, CreatedAt: r.CreatedAt, Guests: guests(r.Guests)})
	}
	return out, nil
}

// CreateHousehold inserts an empty household
func (c *Client) CreateHousehold(ctx context.Context) (models.Household, error) {
	var rows []householdRow
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/rest/v1/households",
		query:  url.Values{"select": {"id,created_at"}},
		body:   map[string]any{},
		prefer: "return=representation",
	}, &rows)
	if err != nil {
		return models.Household{}, err
	}
	if len(rows) == 0 {
		return models.Household{}, fmt.Errorf("insert returned no household")
	}
	return models.Household{ID: rows[0].ID, CreatedAt: rows[0].CreatedAt}, nil
}

// DeleteHousehold removes the household's guests and then the household, so
// no guest is orphaned even when the service has no cascading foreign key
func (c *Client) DeleteHousehold(ctx context.Context, householdID string) error {
	_, err := c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/rest/v1/guests",
		query:  url.Values{"household_id": {"eq." + householdID}},
	}, nil)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/rest/v1/households",
		query:  url.Values{"id": {"eq." + householdID}},
	}, nil)
	return err
}
