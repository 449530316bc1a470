package cli

import (
	"careerscope/internal/tui"

	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive terminal UI",
	Long: `Start the interactive terminal UI.

The UI opens locked: sign in or create an account, then upload a resume to
see the career dashboard. Press ctrl+t on the auth screen to switch between
sign-in and sign-up.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	app := buildComponents(cfg, logger)

	return tui.Run(tui.Deps{
		Config:  cfg,
		Machine: app.machine,
		Session: app.session,
		Auth:    app.auth,
		Upload:  app.upload,
		Loader:  app.loader,
		Logger:  logger,
		Version: Version,
	})
}
