package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"

	"wedding-rsvp/internal/admin"
	"wedding-rsvp/internal/auth"
	"wedding-rsvp/internal/config"
	"wedding-rsvp/internal/models"
	"wedding-rsvp/internal/rsvp"
)

// Notifier is told about every successful RSVP submission
type Notifier interface {
	RSVPSubmitted(ctx context.Context, members []models.Guest, sub models.Submission) error
}

// Pinger checks the backend connection for /healthz
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the server needs from the chosen backend
type Deps struct {
	Directory rsvp.Directory
	Roster    admin.Roster
	Auth      auth.Provider
	Notifier  Notifier
	Health    Pinger
}

// Server serves the public site, the RSVP wizard and the admin dashboard
type Server struct {
	cfg      *config.Config
	log      zerolog.Logger
	sessions *rsvp.Sessions
	admin    *admin.Manager
	auth     auth.Provider
	notifier Notifier
	health   Pinger
	views    *views
	router   *httprouter.Router
	now      func() time.Time
}

// NewServer wires the routes
func NewServer(cfg *config.Config, deps Deps, log zerolog.Logger) (*Server, error) {
	if deps.Directory == nil || deps.Roster == nil || deps.Auth == nil {
		return nil, errors.New("directory, roster and auth provider are required")
	}
	v, err := loadViews()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		log:      log.With().Str("component", "web").Logger(),
		sessions: rsvp.NewSessions(deps.Directory, cfg.WizardTTL),
		admin:    admin.NewManager(deps.Roster, log),
		auth:     deps.Auth,
		notifier: deps.Notifier,
		health:   deps.Health,
		views:    v,
		router:   httprouter.New(),
		now:      time.Now,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.router

	r.GET("/", s.home)
	r.GET("/info", s.info)
	r.GET("/healthz", s.healthz)

	r.GET("/rsvp", s.rsvpPage)
	r.POST("/rsvp/lookup", s.rsvpLookup)
	r.POST("/rsvp/choose", s.rsvpChoose)
	r.POST("/rsvp/continue", s.rsvpContinue)
	r.POST("/rsvp/notes/add", s.rsvpAddNote)
	r.POST("/rsvp/notes/remove", s.rsvpRemoveNote)
	r.POST("/rsvp/review", s.rsvpReview)
	r.POST("/rsvp/back", s.rsvpBack)
	r.POST("/rsvp/submit", s.rsvpSubmit)
	r.POST("/rsvp/start-over", s.rsvpStartOver)

	r.GET("/admin/login", s.loginPage)
	r.POST("/admin/login", s.login)
	r.POST("/admin/logout", s.logout)
	r.GET("/admin", s.requireAdmin(s.dashboard))
	r.POST("/admin/households", s.requireAdmin(s.createHousehold))
	r.POST("/admin/households/:household/delete", s.requireAdmin(s.deleteHousehold))
	r.POST("/admin/households/:household/guests", s.requireAdmin(s.addGuest))
	r.POST("/admin/households/:household/guests/:guest/update", s.requireAdmin(s.updateGuest))
	r.POST("/admin/households/:household/guests/:guest/status", s.requireAdmin(s.setStatus))
	r.POST("/admin/households/:household/guests/:guest/delete", s.requireAdmin(s.deleteGuest))
}

// Handler returns the router wrapped in the logging middleware
func (s *Server) Handler() http.Handler {
	return s.withLogging(s.router)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.ListenPort,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", srv.Addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
