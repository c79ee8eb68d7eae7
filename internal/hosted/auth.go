package hosted

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"wedding-rsvp/internal/auth"
	"wedding-rsvp/internal/models"
)

type userRow struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (u userRow) user() models.AdminUser {
	return models.AdminUser{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

// SignIn exchanges an email and password for an access token
func (c *Client) SignIn(ctx context.Context, email, password string) (auth.Session, error) {
	var out struct {
		AccessToken string  `json:"access_token"`
		ExpiresIn   int     `json:"expires_in"`
		User        userRow `json:"user"`
	}
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/token",
		query:  url.Values{"grant_type": {"password"}},
		body:   map[string]string{"email": email, "password": password},
	}, &out)

	var apiErr *APIError
	if errors.As(err, &apiErr) && (apiErr.Status == http.StatusBadRequest || apiErr.Status == http.StatusUnauthorized) {
		return auth.Session{}, auth.ErrInvalidCredentials
	}
	if err != nil {
		return auth.Session{}, err
	}
	if out.AccessToken == "" {
		return auth.Session{}, auth.ErrInvalidCredentials
	}
	return auth.Session{
		Token:     out.AccessToken,
		ExpiresAt: time.Now().Add(time.Duration(out.ExpiresIn) * time.Second),
		User:      out.User.user(),
	}, nil
}

// SignOut revokes the access token on the service
func (c *Client) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	_, err := c.do(ctx, request{method: http.MethodPost, path: "/auth/v1/logout", bearer: token}, nil)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		return nil
	}
	return err
}

// CurrentUser resolves an access token to its user
func (c *Client) CurrentUser(ctx context.Context, token string) (models.AdminUser, error) {
	if token == "" {
		return models.AdminUser{}, auth.ErrUnauthenticated
	}
	var out userRow
	_, err := c.do(ctx, request{method: http.MethodGet, path: "/auth/v1/user", bearer: token}, &out)

	var apiErr *APIError
	if errors.As(err, &apiErr) && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden) {
		return models.AdminUser{}, auth.ErrUnauthenticated
	}
	if err != nil {
		return models.AdminUser{}, err
	}
	return out.user(), nil
}
