package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"wedding-rsvp/internal/config"
)

// rootOptions holds global flags and the loaded configuration
type rootOptions struct {
	Pretty bool

	cfg *config.Config
	log zerolog.Logger
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "wedding",
		Short:         "Wedding website with guest RSVP and admin dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			opts.cfg = cfg
			opts.log = newLogger(cfg, opts.Pretty)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.Pretty, "pretty", false, "human readable console logs")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newGuestsCommand(opts))
	cmd.AddCommand(newAdminCommand(opts))
	cmd.AddCommand(newWhatsAppCommand(opts))
	return cmd
}

func newLogger(cfg *config.Config, pretty bool) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var log zerolog.Logger
	if pretty {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log = zerolog.New(os.Stdout)
	}
	return log.Level(level).With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("version", cfg.AppVersion).
		Logger()
}
