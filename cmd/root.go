package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "tly",
		Short:         "Thumlify CLI (tly): generate, export, and browse AI thumbnails",
		Long:          "tly (Thumlify CLI) drives the Thumlify thumbnail service from the terminal: sign in or register, generate credit-gated thumbnails, export them in several formats, and browse your gallery and the community marketplace.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(*cobra.Command, []string) {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newRegisterCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newBalanceCmd(app),
		newGenerateCmd(app),
		newExportCmd(app),
		newShowCmd(app),
		newGalleryCmd(app),
		newAccountCmd(app),
	)

	return rootCmd
}
