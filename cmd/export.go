package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thumlify/thumlify-cli/internal/application"
	"github.com/thumlify/thumlify-cli/internal/domain"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "export <thumbnail-id>",
		Short: "Export a thumbnail to a file",
		Long:  "Export a thumbnail. PNG is free; JPG costs 10 credits, WEBP 12, PDF 15. Paid exports charge before the file is fetched and are not refunded on a failed download.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng := a.newEngine(cmd.OutOrStdout())
			defer eng.flow.Close()
			defer eng.loader.Close()

			eng.session.Bootstrap(cmd.Context())
			if !eng.session.IsAuthenticated() {
				eng.notifier.Error("Please login to access this page")
				return errLoginRequired
			}

			exportFormat := domain.ExportFormat(strings.ToUpper(format))
			if !exportFormat.Valid() {
				return fmt.Errorf("unknown format %q (PNG, JPG, WEBP, or PDF)", format)
			}

			thumbnail, err := a.thumbs.GetByID(cmd.Context(), domain.ThumbnailID(args[0]))
			if err != nil {
				eng.notifier.Error("Thumbnail not found or access denied")
				return err
			}

			executor := a.newExecutor(eng, outDir)
			var outcome application.ExportOutcome
			err = runTaskSpinner(cmd.Context(), cmd.OutOrStdout(), fmt.Sprintf("Exporting %s...", exportFormat), func(ctx context.Context) error {
				var exportErr error
				outcome, exportErr = executor.Export(ctx, thumbnail, exportFormat)
				return exportErr
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), outcome.Path)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(domain.FormatPNG), "export format (PNG, JPG, WEBP, PDF)")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory to write the export into")

	return cmd
}
