package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAdminCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage dashboard accounts",
	}

	var email string
	create := &cobra.Command{
		Use:   "create-user",
		Short: "Create an admin account; the password is read from stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBackend(cmd.Context(), opts.cfg, opts.log)
			if err != nil {
				return err
			}
			defer b.Close()

			local, err := b.localAuth(opts.cfg)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), "Enter password: ")
			scanner := bufio.NewScanner(cmd.InOrStdin())
			if !scanner.Scan() {
				return fmt.Errorf("no password given")
			}
			password := strings.TrimSpace(scanner.Text())

			user, err := local.CreateUser(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nCreated admin %s (%s)\n", user.Email, user.ID)
			return nil
		},
	}
	create.Flags().StringVar(&email, "email", "", "admin email address")
	_ = create.MarkFlagRequired("email")

	cmd.AddCommand(create)
	return cmd
}
