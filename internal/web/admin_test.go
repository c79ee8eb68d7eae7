package web

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-rsvp/internal/models"
)

func (e *testEnv) signIn(t *testing.T, c *http.Client) {
	t.Helper()
	_, err := e.local.CreateUser(context.Background(), "couple@example.com", "correct horse")
	require.NoError(t, err)
	resp := e.post(t, c, "/admin/login", url.Values{"email": {"couple@example.com"}, "password": {"correct horse"}})
	require.Equal(t, http.StatusSeeOther, resp.status)
	require.Equal(t, "/admin", resp.location)
}

func TestAdmin_RedirectsWithoutSession(t *testing.T) {
	env := newTestEnv(t)
	c := env.newBrowser(t)

	for _, r := range []struct{ method, path string }{
		{http.MethodGet, "/admin"},
		{http.MethodPost, "/admin/households"},
		{http.MethodPost, "/admin/households/h-1/delete"},
		{http.MethodPost, "/admin/households/h-1/guests/g-1/status"},
	} {
		var resp response
		if r.method == http.MethodGet {
			resp = env.get(t, c, r.path)
		} else {
			resp = env.post(t, c, r.path, nil)
		}
		assert.Equal(t, http.StatusSeeOther, resp.status, r.path)
		assert.Equal(t, "/admin/login", resp.location, r.path)
	}

	hs, err := env.store.ListHouseholds(context.Background())
	require.NoError(t, err)
	assert.Empty(t, hs)
}

func TestAdmin_LoginFailureShownInline(t *testing.T) {
	env := newTestEnv(t)
	c := env.newBrowser(t)

	resp := env.post(t, c, "/admin/login", url.Values{"email": {"couple@example.com"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, resp.status)
	assert.Contains(t, resp.body, "invalid email or password")
	assert.Contains(t, resp.body, `value="couple@example.com"`)
}

func TestAdmin_ManageHouseholds(t *testing.T) {
	env := newTestEnv(t)
	c := env.newBrowser(t)
	env.signIn(t, c)
	ctx := context.Background()

	require.Equal(t, http.StatusSeeOther, env.post(t, c, "/admin/households", nil).status)
	hs, err := env.store.ListHouseholds(ctx)
	require.NoError(t, err)
	require.Len(t, hs, 1)
	hid := hs[0].ID

	resp := env.post(t, c, "/admin/households/"+hid+"/guests", url.Values{"first_name": {" "}, "last_name": {"Smith"}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.status)
	assert.Contains(t, resp.body, "first and last name are required")

	resp = env.post(t, c, "/admin/households/"+hid+"/guests", url.Values{"first_name": {"Jane"}, "last_name": {"Smith"}})
	require.Equal(t, http.StatusSeeOther, resp.status)
	members, err := env.store.HouseholdMembers(ctx, hid)
	require.NoError(t, err)
	require.Len(t, members, 1)
	gid := members[0].ID

	resp = env.get(t, c, "/admin?edit="+gid)
	assert.Equal(t, http.StatusOK, resp.status)
	assert.Contains(t, resp.body, "Smith Household")
	assert.Contains(t, resp.body, `name="first_name" value="Jane"`)

	resp = env.post(t, c, "/admin/households/"+hid+"/guests/"+gid+"/update", url.Values{"first_name": {"Janet"}, "last_name": {"Smith"}})
	require.Equal(t, http.StatusSeeOther, resp.status)

	resp = env.post(t, c, "/admin/households/"+hid+"/guests/"+gid+"/status", url.Values{"status": {"declined"}})
	require.Equal(t, http.StatusSeeOther, resp.status)

	g, err := env.store.GetGuest(ctx, gid)
	require.NoError(t, err)
	assert.Equal(t, "Janet", g.FirstName)
	assert.Equal(t, models.RSVPDeclined, g.Status())

	resp = env.post(t, c, "/admin/households/other/guests/"+gid+"/update", url.Values{"first_name": {"Eve"}, "last_name": {"Smith"}})
	assert.Equal(t, http.StatusBadGateway, resp.status)
	g, err = env.store.GetGuest(ctx, gid)
	require.NoError(t, err)
	assert.Equal(t, "Janet", g.FirstName)

	resp = env.post(t, c, "/admin/households/"+hid+"/delete", nil)
	assert.Equal(t, http.StatusOK, resp.status)
	assert.Contains(t, resp.body, "Are you sure?")
	hs, err = env.store.ListHouseholds(ctx)
	require.NoError(t, err)
	assert.Len(t, hs, 1)

	resp = env.post(t, c, "/admin/households/"+hid+"/delete", url.Values{"confirm": {"yes"}})
	require.Equal(t, http.StatusSeeOther, resp.status)
	hs, err = env.store.ListHouseholds(ctx)
	require.NoError(t, err)
	assert.Empty(t, hs)
	all, err := env.store.GetAllGuests(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAdmin_Logout(t *testing.T) {
	env := newTestEnv(t)
	c := env.newBrowser(t)
	env.signIn(t, c)

	assert.Equal(t, http.StatusOK, env.get(t, c, "/admin").status)
	resp := env.post(t, c, "/admin/logout", nil)
	assert.Equal(t, "/admin/login", resp.location)

	resp = env.get(t, c, "/admin")
	assert.Equal(t, http.StatusSeeOther, resp.status)
}
