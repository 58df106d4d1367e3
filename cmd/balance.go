package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/thumlify/thumlify-cli/internal/adapters/render"
	"github.com/thumlify/thumlify-cli/internal/domain"
)

func newBalanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show your credit balance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				identity domain.UserIdentity
				balance  domain.CreditBalance
			)

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				var err error
				identity, err = a.auth.CurrentUser(ctx)
				return err
			})
			g.Go(func() error {
				var err error
				balance, err = a.creditsAPI.FetchBalance(ctx)
				return err
			})

			if err := g.Wait(); err != nil {
				_, printErr := fmt.Fprintln(cmd.OutOrStdout(), render.Balance(nil, nil))
				if printErr != nil {
					return printErr
				}
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), render.Balance(&identity, &balance))
			return err
		},
	}
}
