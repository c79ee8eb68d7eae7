package web

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/hlog"

	"wedding-rsvp/internal/admin"
	"wedding-rsvp/internal/auth"
)

type loginView struct {
	Email string
	Error string
}

type dashboardView struct {
	Dashboard admin.Dashboard
	Edit      *admin.EditBuffer
	Busy      map[string]bool
}

type confirmView struct {
	Prompt string
	Action string
}

func (s *Server) loginPage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if c, err := r.Cookie(adminCookie); err == nil {
		if _, err := s.auth.CurrentUser(r.Context(), c.Value); err == nil {
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
	}
	s.render(w, r, http.StatusOK, "login", "", loginView{})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	email := r.PostFormValue("email")

	sess, err := s.auth.SignIn(r.Context(), email, r.PostFormValue("password"))
	if err != nil {
		status := http.StatusUnauthorized
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			status = http.StatusBadGateway
			hlog.FromRequest(r).Error().Err(err).Msg("sign in failed")
		}
		s.render(w, r, status, "login", "", loginView{Email: email, Error: err.Error()})
		return
	}

	hlog.FromRequest(r).Info().Str("user_id", sess.User.ID).Msg("admin signed in")
	s.setCookie(w, adminCookie, sess.Token, sess.ExpiresAt)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if c, err := r.Cookie(adminCookie); err == nil {
		if err := s.auth.SignOut(r.Context(), c.Value); err != nil {
			hlog.FromRequest(r).Warn().Err(err).Msg("sign out failed")
		}
	}
	s.clearCookie(w, adminCookie)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

func (s *Server) renderDashboard(w http.ResponseWriter, r *http.Request, status int, flash string, edit *admin.EditBuffer) {
	d, err := s.admin.Dashboard(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to load dashboard")
		s.render(w, r, http.StatusBadGateway, "admin", err.Error(), dashboardView{})
		return
	}

	busy := make(map[string]bool)
	for _, id := range s.admin.Busy().IDs() {
		busy[id] = true
	}

	if edit == nil {
		if id := r.URL.Query().Get("edit"); id != "" {
			if g, ok := d.FindGuest(id); ok {
				buf := admin.StartEdit(g)
				edit = &buf
			}
		}
	}
	s.render(w, r, status, "admin", flash, dashboardView{Dashboard: d, Edit: edit, Busy: busy})
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.renderDashboard(w, r, http.StatusOK, "", nil)
}

// mutationDone redirects back to the dashboard, or re-renders it with the
// error message when the mutation failed
func (s *Server) mutationDone(w http.ResponseWriter, r *http.Request, err error, edit *admin.EditBuffer) {
	if err == nil {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, admin.ErrBusy):
		status = http.StatusConflict
	case admin.IsValidation(err):
		status = http.StatusUnprocessableEntity
	}
	s.renderDashboard(w, r, status, err.Error(), edit)
}

func (s *Server) createHousehold(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	_, err := s.admin.CreateHousehold(r.Context())
	s.mutationDone(w, r, err, nil)
}

func (s *Server) addGuest(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	_, err := s.admin.AddGuest(r.Context(), ps.ByName("household"), r.PostFormValue("first_name"), r.PostFormValue("last_name"))
	s.mutationDone(w, r, err, nil)
}

func (s *Server) updateGuest(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	buf := admin.EditBuffer{
		GuestID:     ps.ByName("guest"),
		HouseholdID: ps.ByName("household"),
		FirstName:   r.PostFormValue("first_name"),
		LastName:    r.PostFormValue("last_name"),
	}
	err := s.admin.SaveEdit(r.Context(), buf)
	s.mutationDone(w, r, err, &buf)
}

func (s *Server) setStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	err := s.admin.SetStatus(r.Context(), ps.ByName("household"), ps.ByName("guest"), r.PostFormValue("status"))
	s.mutationDone(w, r, err, nil)
}

func confirmed(r *http.Request) bool {
	return r.PostFormValue("confirm") == "yes"
}

func (s *Server) deleteGuest(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	err := s.admin.DeleteGuest(r.Context(), ps.ByName("household"), ps.ByName("guest"), confirmed(r))
	if errors.Is(err, admin.ErrNotConfirmed) {
		s.render(w, r, http.StatusOK, "confirm", "", confirmView{
			Prompt: "Delete this guest? This cannot be undone.",
			Action: r.URL.Path,
		})
		return
	}
	s.mutationDone(w, r, err, nil)
}

func (s *Server) deleteHousehold(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	err := s.admin.DeleteHousehold(r.Context(), ps.ByName("household"), confirmed(r))
	if errors.Is(err, admin.ErrNotConfirmed) {
		s.render(w, r, http.StatusOK, "confirm", "", confirmView{
			Prompt: "Delete this household and all of its guests? This cannot be undone.",
			Action: r.URL.Path,
		})
		return
	}
	s.mutationDone(w, r, err, nil)
}
