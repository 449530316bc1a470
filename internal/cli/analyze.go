package cli

import (
	"fmt"

	"careerscope/internal/common"
	"careerscope/internal/workflow"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [resume-file]",
	Short: "Analyze a resume and print the career profile",
	Long: `Analyze a resume file and print the resulting career profile.

The command signs in with the given credentials, uploads the file to the
analysis service and renders the result. Accepted file types are configured
via upload.allowedExtensions (PDF, DOCX and TXT by default).

The analysis includes:
- Extracted skills, work history and education
- A career readiness score and market demand rating
- Matched job openings with skill overlap
- A growth roadmap and gap analysis`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return err
		}
		// Apply default format if not specified
		if analyzeConfig.OutputFormat == "" {
			analyzeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(analyzeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAnalyze,
}

var analyzeConfig common.CommandConfig

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	analyzeCmd.Flags().String("email", "", "Account email (or CAREERSCOPE_EMAIL)")
	analyzeCmd.Flags().String("password", "", "Account password (or CAREERSCOPE_PASSWORD)")

	// Add completion for format flag
	_ = analyzeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return []string{}, cobra.ShellCompDirectiveError
		}
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	app := buildComponents(cfg, logger)

	// The upload workflow is gated on an authenticated session, same as the
	// interactive surface.
	creds := credentialsFromFlags(cmd)
	if _, err := app.auth.Submit(cmd.Context(), workflow.ModeLogin, creds); err != nil {
		return fmt.Errorf("sign-in failed: %w", err)
	}

	candidate, err := app.loader.Load(args[0])
	if err != nil {
		return err
	}

	logger.Info("Starting resume analysis",
		"filename", candidate.Filename,
		"output_format", analyzeConfig.OutputFormat)

	state, err := app.upload.Submit(cmd.Context(), candidate)
	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}

	handler := common.NewOutputHandler(logger)
	if err := handler.HandleOutput(*state.Result, analyzeConfig); err != nil {
		return err
	}

	logger.Info("Resume analysis completed successfully")
	return nil
}
