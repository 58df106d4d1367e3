package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thumlify/thumlify-cli/internal/adapters/render"
	"github.com/thumlify/thumlify-cli/internal/domain"
)

func newGalleryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "gallery",
		Short: "List your generated thumbnails",
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng := a.newEngine(cmd.OutOrStdout())
			defer eng.flow.Close()
			defer eng.loader.Close()

			eng.session.Bootstrap(cmd.Context())
			if !eng.session.IsAuthenticated() {
				eng.notifier.Error("Please login to access this page")
				return errLoginRequired
			}

			var thumbnails []domain.Thumbnail
			err := runTaskSpinner(cmd.Context(), cmd.OutOrStdout(), "Loading your gallery...", func(ctx context.Context) error {
				var listErr error
				thumbnails, listErr = a.thumbs.ListMine(ctx)
				return listErr
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), render.Gallery(thumbnails))
			return err
		},
	}
}
