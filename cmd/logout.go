package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng := a.newEngine(cmd.OutOrStdout())
			defer eng.flow.Close()

			eng.session.Logout(cmd.Context())
			if err := a.jar.Clear(); err != nil {
				return fmt.Errorf("clear stored session: %w", err)
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return err
		},
	}
}
