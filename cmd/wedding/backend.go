package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"wedding-rsvp/internal/admin"
	"wedding-rsvp/internal/auth"
	"wedding-rsvp/internal/config"
	"wedding-rsvp/internal/hosted"
	"wedding-rsvp/internal/models"
	"wedding-rsvp/internal/rsvp"
	"wedding-rsvp/internal/storage"
	"wedding-rsvp/internal/web"
)

type guestLister interface {
	GetAllGuests(ctx context.Context) ([]models.Guest, error)
	GetGuestsByStatus(ctx context.Context, status models.RSVPStatus) ([]models.Guest, error)
}

// backend bundles the data service chosen by configuration
type backend struct {
	directory rsvp.Directory
	roster    admin.Roster
	guests    guestLister
	health    web.Pinger
	store     *storage.Storage
	hosted    *hosted.Client
}

func openBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backend, error) {
	switch cfg.Backend {
	case config.BackendSQL:
		store, err := storage.NewStorage(ctx, cfg.DBDriver, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		log.Info().Str("driver", cfg.DBDriver).Msg("using SQL backend")
		return &backend{directory: store, roster: store, guests: store, health: store, store: store}, nil
	case config.BackendHosted:
		client := hosted.NewClient(cfg.HostedURL, cfg.HostedAPIKey, log)
		log.Info().Str("url", cfg.HostedURL).Msg("using hosted backend")
		return &backend{directory: client, roster: client, guests: client, hosted: client}, nil
	default:
		return nil, fmt.Errorf("unsupported backend %q", cfg.Backend)
	}
}

// authProvider returns the admin sign-in provider for the backend
func (b *backend) authProvider(cfg *config.Config) (auth.Provider, error) {
	if b.hosted != nil {
		return b.hosted, nil
	}
	return b.localAuth(cfg)
}

func (b *backend) localAuth(cfg *config.Config) (*auth.Local, error) {
	if b.store == nil {
		return nil, fmt.Errorf("admin accounts are managed by the hosted service")
	}
	return auth.NewLocal(b.store, cfg.SessionSecret, cfg.SessionTTL)
}

func (b *backend) Close() error {
	if b.store != nil {
		return b.store.Close()
	}
	return nil
}
