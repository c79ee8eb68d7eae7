package main

import (
	"github.com/spf13/cobra"

	"wedding-rsvp/internal/whatsapp"
)

func newWhatsAppCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whatsapp",
		Short: "Manage the WhatsApp device used for notifications",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "pair",
		Short: "Link this server to a WhatsApp account by scanning a QR code",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := whatsapp.NewService(cmd.Context(), whatsapp.Config{DataDir: opts.cfg.WhatsAppDataDir}, opts.log)
			if err != nil {
				return err
			}
			defer svc.Disconnect()

			if err := svc.Pair(cmd.Context(), cmd.OutOrStdout()); err != nil {
				return err
			}
			cmd.Println("Connected to WhatsApp.")
			return nil
		},
	})
	return cmd
}
