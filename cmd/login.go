package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thumlify/thumlify-cli/internal/adapters/render"
	"github.com/thumlify/thumlify-cli/internal/domain"
)

func newLoginCmd(a *app) *cobra.Command {
	var (
		identifier string
		password   string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with your email or username",
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng := a.newEngine(cmd.OutOrStdout())
			defer eng.flow.Close()
			defer eng.loader.Close()

			eng.session.Bootstrap(cmd.Context())
			if user := eng.session.User(); user != nil {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Already signed in as %s. Run `tly logout` first to switch accounts.\n", user.Username)
				return err
			}

			ask := newPrompter(cmd)
			identifier, err := ask.lineOr(identifier, "Email or username")
			if err != nil {
				return err
			}
			password, err := ask.lineOr(password, "Password")
			if err != nil {
				return err
			}

			eng.flow.SetForm(domain.RegistrationForm{Email: identifier, Password: password})
			if err := eng.flow.SubmitLogin(cmd.Context()); err != nil {
				return errors.New("login failed")
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), render.Balance(eng.session.User(), eng.credits.Balance()))
			return err
		},
	}

	cmd.Flags().StringVarP(&identifier, "user", "u", "", "email or username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")

	return cmd
}
