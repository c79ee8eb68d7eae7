package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/hlog"

	"wedding-rsvp/internal/auth"
	"wedding-rsvp/internal/models"
)

const (
	wizardCookie = "rsvp_session"
	adminCookie  = "admin_session"
)

func (s *Server) withLogging(next http.Handler) http.Handler {
	h := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})(next)
	h = hlog.RemoteAddrHandler("ip")(h)
	h = hlog.RequestIDHandler("req_id", "X-Request-Id")(h)
	return hlog.NewHandler(s.log)(h)
}

type adminKey struct{}

// requireAdmin redirects to the login page unless the request carries a
// valid admin session
func (s *Server) requireAdmin(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		c, err := r.Cookie(adminCookie)
		if err != nil || c.Value == "" {
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}

		user, err := s.auth.CurrentUser(r.Context(), c.Value)
		if err != nil {
			if !errors.Is(err, auth.ErrUnauthenticated) {
				hlog.FromRequest(r).Error().Err(err).Msg("failed to resolve admin session")
			}
			s.clearCookie(w, adminCookie)
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}

		ctx := auth.WithToken(r.Context(), c.Value)
		ctx = context.WithValue(ctx, adminKey{}, user)
		next(w, r.WithContext(ctx), ps)
	}
}

func adminFrom(ctx context.Context) models.AdminUser {
	u, _ := ctx.Value(adminKey{}).(models.AdminUser)
	return u
}

func (s *Server) setCookie(w http.ResponseWriter, name, value string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   s.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
