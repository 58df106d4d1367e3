package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng := a.newEngine(cmd.OutOrStdout())
			defer eng.flow.Close()

			eng.session.Bootstrap(cmd.Context())
			user := eng.session.User()
			if user == nil {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Not signed in. Run `tly login` first.")
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", user.Username, user.Email)
			return err
		},
	}
}
