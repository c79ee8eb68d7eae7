package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"wedding-rsvp/internal/models"
)

func newGuestsCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guests",
		Short: "Inspect the guest list",
	}

	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List guests, optionally filtered by RSVP status",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBackend(cmd.Context(), opts.cfg, opts.log)
			if err != nil {
				return err
			}
			defer b.Close()

			if status == "" {
				guests, err := b.guests.GetAllGuests(cmd.Context())
				if err != nil {
					return err
				}
				printGuests(cmd.OutOrStdout(), "All Guests", guests)
				return nil
			}

			s, ok := models.ParseStatus(status)
			if !ok {
				return fmt.Errorf("invalid status %q: must be pending, accepted or declined", status)
			}
			guests, err := b.guests.GetGuestsByStatus(cmd.Context(), s)
			if err != nil {
				return err
			}
			printGuests(cmd.OutOrStdout(), s.Label()+" Guests", guests)
			return nil
		},
	}
	list.Flags().StringVar(&status, "status", "", "filter by status (pending|accepted|declined)")

	cmd.AddCommand(list)
	return cmd
}

func printGuests(w io.Writer, title string, guests []models.Guest) {
	if len(guests) == 0 {
		fmt.Fprintln(w, "No guests found.")
		return
	}

	fmt.Fprintf(w, "%s (%d total):\n", title, len(guests))
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, g := range guests {
		fmt.Fprintf(w, "Name: %s\n", g.FullName())
		fmt.Fprintf(w, "Status: %s\n", g.Status().Label())
		fmt.Fprintf(w, "Household: %s\n", g.HouseholdID)
		if !g.UpdatedAt.IsZero() {
			fmt.Fprintf(w, "Updated: %s\n", g.UpdatedAt.Format("2006-01-02 15:04:05"))
		}
		fmt.Fprintln(w, strings.Repeat("-", 60))
	}
}
