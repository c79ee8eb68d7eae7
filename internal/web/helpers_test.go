package web

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"wedding-rsvp/internal/auth"
	"wedding-rsvp/internal/config"
	"wedding-rsvp/internal/models"
	"wedding-rsvp/internal/storage"
)

type recordingNotifier struct {
	mu   sync.Mutex
	subs []models.Submission
	sent chan struct{}
}

func (n *recordingNotifier) RSVPSubmitted(_ context.Context, _ []models.Guest, sub models.Submission) error {
	n.mu.Lock()
	n.subs = append(n.subs, sub)
	n.mu.Unlock()
	n.sent <- struct{}{}
	return nil
}

type testEnv struct {
	store    *storage.Storage
	local    *auth.Local
	notifier *recordingNotifier
	server   *Server
	http     *httptest.Server
}

func testConfig() *config.Config {
	return &config.Config{
		ServiceName:     "wedding-rsvp",
		AppVersion:      "test",
		WizardTTL:       time.Hour,
		SessionTTL:      time.Hour,
		WeddingDate:     "2026-06-20T16:00:00Z",
		WeddingLocation: "The Old Mill",
		BrideName:       "Ana",
		GroomName:       "Ben",
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store, err := storage.NewStorage(context.Background(), "sqlite3", filepath.Join(t.TempDir(), "web.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	local, err := auth.NewLocal(store, "test-secret", time.Hour)
	require.NoError(t, err)

	n := &recordingNotifier{sent: make(chan struct{}, 8)}
	srv, err := NewServer(testConfig(), Deps{
		Directory: store,
		Roster:    store,
		Auth:      local,
		Notifier:  n,
		Health:    store,
	}, zerolog.Nop())
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &testEnv{store: store, local: local, notifier: n, server: srv, http: ts}
}

// newBrowser returns a client that keeps cookies and does not follow redirects
func (e *testEnv) newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (e *testEnv) seed(t *testing.T, names ...[2]string) (models.Household, []models.Guest) {
	t.Helper()
	ctx := context.Background()
	h, err := e.store.CreateHousehold(ctx)
	require.NoError(t, err)
	var guests []models.Guest
	for _, n := range names {
		g, err := e.store.AddGuest(ctx, h.ID, n[0], n[1])
		require.NoError(t, err)
		guests = append(guests, g)
	}
	return h, guests
}

type response struct {
	status   int
	location string
	body     string
}

func do(t *testing.T, c *http.Client, method, u string, form url.Values) response {
	t.Helper()
	var req *http.Request
	var err error
	if form != nil {
		req, err = http.NewRequest(method, u, strings.NewReader(form.Encode()))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req, err = http.NewRequest(method, u, nil)
		require.NoError(t, err)
	}
	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var b strings.Builder
	_, err = io.Copy(&b, resp.Body)
	require.NoError(t, err)
	return response{status: resp.StatusCode, location: resp.Header.Get("Location"), body: b.String()}
}

func (e *testEnv) post(t *testing.T, c *http.Client, path string, form url.Values) response {
	t.Helper()
	if form == nil {
		form = url.Values{}
	}
	return do(t, c, http.MethodPost, e.http.URL+path, form)
}

func (e *testEnv) get(t *testing.T, c *http.Client, path string) response {
	t.Helper()
	return do(t, c, http.MethodGet, e.http.URL+path, nil)
}
