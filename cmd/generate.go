package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thumlify/thumlify-cli/internal/application"
	"github.com/thumlify/thumlify-cli/internal/domain"
)

var errLoginRequired = domain.ErrUnauthenticated

func newGenerateCmd(a *app) *cobra.Command {
	var (
		title       string
		prompt      string
		description string
		style       string
		aspect      string
		colors      string
		model       string
		enhance     bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a thumbnail (costs credits)",
		Long:  "Generate an AI thumbnail. Premium model costs 20 credits, basic costs 10. The charge settles after a successful render; a failed render costs nothing.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng := a.newEngine(cmd.OutOrStdout())
			defer eng.flow.Close()
			defer eng.loader.Close()

			eng.session.Bootstrap(cmd.Context())
			if !eng.session.IsAuthenticated() {
				eng.notifier.Error("Please login to access this page")
				return errLoginRequired
			}

			genModel := domain.GenerationModel(model)
			if !genModel.Valid() {
				return fmt.Errorf("unknown model %q (premium or basic)", model)
			}

			ask := newPrompter(cmd)
			title, err := ask.lineOr(title, "Title")
			if err != nil {
				return err
			}
			prompt, err := ask.lineOr(prompt, "Prompt")
			if err != nil {
				return err
			}

			spec := domain.GenerationSpec{
				Title:       title,
				Style:       style,
				AspectRatio: aspect,
				ColorScheme: colors,
				UserPrompt:  prompt,
				PromptUsed:  prompt,
				Model:       genModel,
			}

			if enhance {
				spec.PromptUsed = enhancePrompt(cmd, a, eng, title, description, style, prompt)
			}

			executor := a.newExecutor(eng, "")
			var outcome application.GenerateOutcome
			err = runTaskSpinner(cmd.Context(), cmd.OutOrStdout(), "Generating thumbnail...", func(ctx context.Context) error {
				var genErr error
				outcome, genErr = executor.Generate(ctx, spec)
				return genErr
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", outcome.Thumbnail.ID, outcome.Thumbnail.ImageURL)
			return err
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "video title the thumbnail is for")
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "what the thumbnail should show")
	cmd.Flags().StringVarP(&description, "description", "d", "", "extra context for prompt enhancement")
	cmd.Flags().StringVar(&style, "style", "bold", "visual style")
	cmd.Flags().StringVar(&aspect, "aspect", "16:9", "aspect ratio")
	cmd.Flags().StringVar(&colors, "colors", "vibrant", "color scheme")
	cmd.Flags().StringVarP(&model, "model", "m", string(domain.ModelBasic), "generation model (premium or basic)")
	cmd.Flags().BoolVar(&enhance, "enhance", false, "run the prompt through the optimizer first")

	return cmd
}

// enhancePrompt asks the optimizer for a better prompt. Failure keeps the
// raw prompt so generation still goes ahead.
func enhancePrompt(cmd *cobra.Command, a *app, eng *engine, title, description, style, prompt string) string {
	var optimized string
	err := runTaskSpinner(cmd.Context(), cmd.OutOrStdout(), "Enhancing prompt...", func(ctx context.Context) error {
		var optErr error
		optimized, optErr = a.thumbs.OptimizePrompt(ctx, title, description, style)
		return optErr
	})
	if err != nil || optimized == "" {
		eng.notifier.Warning("Prompt enhancement failed, using your prompt as-is")
		return prompt
	}

	eng.notifier.Success("Prompt enhanced!")
	return optimized
}
