package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// The manage-account OTP starts at the full resend window straight away,
// unlike registration's short initial grace.
const passwordOTPCooldown = 60 * time.Second

func newAccountCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage your Thumlify account",
	}

	cmd.AddCommand(
		newAccountUpdateCmd(a),
		newAccountPasswdCmd(a),
		newAccountDeleteCmd(a),
	)

	return cmd
}

func newAccountUpdateCmd(a *app) *cobra.Command {
	var (
		username string
		email    string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change your username or email",
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng := a.newEngine(cmd.OutOrStdout())
			defer eng.flow.Close()

			eng.session.Bootstrap(cmd.Context())
			user := eng.session.User()
			if user == nil {
				eng.notifier.Error("Please login to access this page")
				return errLoginRequired
			}

			if username == "" && email == "" {
				return errors.New("nothing to update: pass --username and/or --email")
			}
			if username == "" {
				username = user.Username
			}
			if email == "" {
				email = user.Email
			}

			if err := a.account.UpdateProfile(cmd.Context(), username, email); err != nil {
				eng.notifier.Error("Profile update failed")
				return err
			}

			if err := eng.session.RefreshIdentity(cmd.Context()); err != nil {
				eng.notifier.Warning("Updated, but the session did not refresh")
			}

			eng.notifier.Success("Profile updated!")
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "new username")
	cmd.Flags().StringVarP(&email, "email", "e", "", "new email")

	return cmd
}

func newAccountPasswdCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "passwd",
		Short: "Change your password (email OTP verification)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng := a.newEngine(cmd.OutOrStdout())
			defer eng.flow.Close()

			eng.session.Bootstrap(cmd.Context())
			if !eng.session.IsAuthenticated() {
				eng.notifier.Error("Please login to access this page")
				return errLoginRequired
			}

			retryAfter, err := a.account.RequestPasswordOTP(cmd.Context())
			if err != nil {
				eng.notifier.Error("Could not send OTP")
				return err
			}
			eng.notifier.Success("OTP sent! Check your email.")

			cooldownUntil := a.clock.Now().Add(seedCooldown(retryAfter, passwordOTPCooldown))
			remaining := func() int {
				left := cooldownUntil.Sub(a.clock.Now())
				if left <= 0 {
					return 0
				}
				return int((left + time.Second - 1) / time.Second)
			}

			ask := newPrompter(cmd)
			for {
				answer, err := ask.line("OTP code (or 'resend' / 'quit')")
				if err != nil {
					return err
				}

				switch strings.ToLower(answer) {
				case "quit":
					return errors.New("password change abandoned")
				case "resend":
					if remaining() > 0 {
						if err := runCooldown(cmd.Context(), cmd.OutOrStdout(), remaining); err != nil {
							return err
						}
					}
					retryAfter, err := a.account.ResendPasswordOTP(cmd.Context())
					if err != nil {
						eng.notifier.Error("Failed to resend")
						continue
					}
					cooldownUntil = a.clock.Now().Add(seedCooldown(retryAfter, passwordOTPCooldown))
					eng.notifier.Success("New OTP sent!")
				case "":
					continue
				default:
					newPassword, err := ask.line("New password")
					if err != nil {
						return err
					}
					if err := a.account.VerifyPasswordOTP(cmd.Context(), answer, newPassword); err != nil {
						eng.notifier.Error("Invalid code, try again")
						continue
					}
					eng.notifier.Success("Password changed!")
					return nil
				}
			}
		},
	}
}

func newAccountDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Permanently delete your account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng := a.newEngine(cmd.OutOrStdout())
			defer eng.flow.Close()

			eng.session.Bootstrap(cmd.Context())
			user := eng.session.User()
			if user == nil {
				eng.notifier.Error("Please login to access this page")
				return errLoginRequired
			}

			if !yes {
				answer, err := newPrompter(cmd).line(fmt.Sprintf("Type %q to confirm deletion", user.Username))
				if err != nil {
					return err
				}
				if answer != user.Username {
					return errors.New("confirmation did not match, account kept")
				}
			}

			if err := a.account.DeleteAccount(cmd.Context()); err != nil {
				eng.notifier.Error("Account deletion failed")
				return err
			}

			eng.session.Logout(cmd.Context())
			if err := a.jar.Clear(); err != nil {
				return fmt.Errorf("clear stored session: %w", err)
			}

			eng.notifier.Success("Account deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")

	return cmd
}

func seedCooldown(advisedSeconds int, fallback time.Duration) time.Duration {
	if advisedSeconds > 0 {
		return time.Duration(advisedSeconds) * time.Second
	}
	return fallback
}
