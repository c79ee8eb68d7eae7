package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"wedding-rsvp/internal/web"
	"wedding-rsvp/internal/whatsapp"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, opts)
		},
	}
}

func serve(ctx context.Context, opts *rootOptions) error {
	cfg, log := opts.cfg, opts.log

	b, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.Close()

	provider, err := b.authProvider(cfg)
	if err != nil {
		return err
	}

	deps := web.Deps{
		Directory: b.directory,
		Roster:    b.roster,
		Auth:      provider,
		Health:    b.health,
	}

	if cfg.WhatsAppEnabled {
		svc, err := whatsapp.NewService(ctx, whatsapp.Config{DataDir: cfg.WhatsAppDataDir}, log)
		if err != nil {
			return err
		}
		if err := svc.Connect(); err != nil {
			return err
		}
		defer svc.Disconnect()

		deps.Notifier = whatsapp.NewNotifier(svc, cfg.WhatsAppNotify, log)
		svc.SetMessageHandler(whatsapp.NewBot(svc, b.roster, cfg.WhatsAppNotify).HandleMessage)
		log.Info().Int("recipients", len(cfg.WhatsAppNotify)).Msg("whatsapp notifications enabled")
	}

	srv, err := web.NewServer(cfg, deps, log)
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx)
}
