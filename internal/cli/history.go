package cli

import (
	"fmt"

	"careerscope/internal/api"
	"careerscope/internal/common"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently stored analyses",
	Long: `List the analyses the service has stored, newest first.

Storage is service-side; this command only reads it.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return err
		}
		if historyConfig.OutputFormat == "" {
			historyConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(historyConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runHistory,
}

var historyConfig common.CommandConfig

func init() {
	historyCmd.Flags().StringVarP(&historyConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	historyCmd.Flags().StringVar(&historyConfig.OutputFormat, "format", "", "Output format: json or text")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	client := api.NewClient(&cfg.API, logger)

	records, err := client.History(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch history: %w", err)
	}

	handler := common.NewOutputHandler(logger)
	return handler.HandleOutput(records, historyConfig)
}
