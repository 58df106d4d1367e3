package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thumlify/thumlify-cli/internal/adapters/render"
	"github.com/thumlify/thumlify-cli/internal/domain"
)

func newShowCmd(a *app) *cobra.Command {
	var thumbnailID string

	cmd := &cobra.Command{
		Use:   "show [listing-id]",
		Short: "Show a community listing or one of your thumbnails",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng := a.newEngine(cmd.OutOrStdout())
			defer eng.flow.Close()
			defer eng.loader.Close()

			if thumbnailID != "" {
				thumbnail, err := a.thumbs.GetByID(cmd.Context(), domain.ThumbnailID(thumbnailID))
				if err != nil {
					eng.notifier.Error("Thumbnail not found or access denied")
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), render.ThumbnailDetail(thumbnail))
				return err
			}

			if len(args) == 0 {
				return errors.New("a listing id or --thumbnail is required")
			}

			result, err := eng.loader.LoadAndWait(cmd.Context(), domain.ListingID(args[0]))
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					eng.notifier.Error("Thumbnail not found or access denied")
				}
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), render.Detail(result))
			return err
		},
	}

	cmd.Flags().StringVar(&thumbnailID, "thumbnail", "", "show one of your thumbnails by id instead of a listing")

	return cmd
}
