package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thumlify/thumlify-cli/internal/adapters/render"
	"github.com/thumlify/thumlify-cli/internal/domain"
)

func newRegisterCmd(a *app) *cobra.Command {
	var (
		username string
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account (email OTP verification)",
		Long:  "Register a Thumlify account. An OTP is mailed to the address you give; entering it verifies the account, signs you in, and grants the welcome bonus credits.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng := a.newEngine(cmd.OutOrStdout())
			defer eng.flow.Close()
			defer eng.loader.Close()

			eng.session.Bootstrap(cmd.Context())
			if user := eng.session.User(); user != nil {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Already signed in as %s.\n", user.Username)
				return err
			}

			ask := newPrompter(cmd)
			username, err := ask.lineOr(username, "Username")
			if err != nil {
				return err
			}
			email, err := ask.lineOr(email, "Email")
			if err != nil {
				return err
			}
			password, err := ask.lineOr(password, "Password")
			if err != nil {
				return err
			}

			eng.flow.SwitchMode()
			eng.flow.SetForm(domain.RegistrationForm{Username: username, Email: email, Password: password})
			if err := eng.flow.RequestOTP(cmd.Context()); err != nil {
				return errors.New("registration failed")
			}

			if err := runOTPLoop(cmd, eng, ask); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), render.Balance(eng.session.User(), eng.credits.Balance()))
			return err
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email to verify")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")

	return cmd
}

// runOTPLoop keeps asking for the mailed code until the flow settles or the
// user gives up. "resend" waits out the cooldown before asking for a fresh
// code; "quit" abandons registration.
func runOTPLoop(cmd *cobra.Command, eng *engine, ask *prompter) error {
	for {
		answer, err := ask.line("OTP code (or 'resend' / 'quit')")
		if err != nil {
			return err
		}

		switch strings.ToLower(answer) {
		case "quit":
			eng.flow.Back()
			return errors.New("registration abandoned")
		case "resend":
			if err := eng.flow.ResendOTP(cmd.Context()); errors.Is(err, domain.ErrCooldownActive) {
				if err := runCooldown(cmd.Context(), cmd.OutOrStdout(), eng.flow.CooldownSeconds); err != nil {
					return err
				}
				_ = eng.flow.ResendOTP(cmd.Context())
			}
		case "":
			continue
		default:
			eng.flow.SetOTPInput(answer)
			if err := eng.flow.VerifyOTP(cmd.Context()); err == nil {
				return nil
			}
		}
	}
}
