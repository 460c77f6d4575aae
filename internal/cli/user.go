package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUserCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <username> <password>",
			Short: "Create a user with a fresh authkey",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				u, err := a.services().Register(cmd.Context(), args[0], args[1])
				if err != nil {
					return fmt.Errorf("add user %q: %w", args[0], err)
				}
				a.log.Infow("user created", "id", u.ID, "username", u.Username)
				fmt.Fprintf(cmd.OutOrStdout(), "created user %q with id %d\n", u.Username, u.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "passwd <username> <password>",
			Short: "Replace a user's password",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.services().ChangePassword(cmd.Context(), args[0], args[1]); err != nil {
					return fmt.Errorf("change password for %q: %w", args[0], err)
				}
				a.log.Infow("password changed", "username", args[0])
				fmt.Fprintf(cmd.OutOrStdout(), "password updated for %q\n", args[0])
				return nil
			},
		},
	)
	return cmd
}
