package cli

import (
	"fmt"

	"careerscope/internal/workflow"

	"github.com/spf13/cobra"
)

var loginSignup bool

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Verify account credentials against the auth service",
	Long: `Verify that the given credentials are accepted by the auth service.

With --signup a new account is created instead; --name is required in that
case. Credentials may also come from CAREERSCOPE_EMAIL, CAREERSCOPE_PASSWORD
and CAREERSCOPE_NAME.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().String("email", "", "Account email (or CAREERSCOPE_EMAIL)")
	loginCmd.Flags().String("password", "", "Account password (or CAREERSCOPE_PASSWORD)")
	loginCmd.Flags().String("name", "", "Display name, required with --signup (or CAREERSCOPE_NAME)")
	loginCmd.Flags().BoolVar(&loginSignup, "signup", false, "Create a new account instead of signing in")
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, err := getConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	logger, err := getLoggerFromContext(cmd.Context())
	if err != nil {
		return err
	}

	app := buildComponents(cfg, logger)

	mode := workflow.ModeLogin
	if loginSignup {
		mode = workflow.ModeSignup
	}

	user, err := app.auth.Submit(cmd.Context(), mode, credentialsFromFlags(cmd))
	if err != nil {
		return err
	}

	if loginSignup {
		fmt.Printf("Account created for %s <%s>\n", user.Name, user.Email)
	} else {
		fmt.Printf("Signed in as %s <%s>\n", user.Name, user.Email)
	}
	return nil
}
