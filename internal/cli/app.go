package cli

import (
	"os"

	"careerscope/internal/api"
	"careerscope/internal/common"
	"careerscope/internal/config"
	"careerscope/internal/errors"
	"careerscope/internal/session"
	"careerscope/internal/types"
	"careerscope/internal/view"
	"careerscope/internal/workflow"

	"github.com/spf13/cobra"
)

// appComponents bundles the wired client, session and workflows one command
// invocation needs. Every command builds a fresh set; nothing is shared
// across invocations.
type appComponents struct {
	client  *api.Client
	machine *view.Machine
	session *session.Session
	auth    *workflow.Auth
	upload  *workflow.Upload
	loader  *common.CandidateLoader
}

func buildComponents(cfg *config.Config, logger *errors.Logger) *appComponents {
	client := api.NewClient(&cfg.API, logger)
	machine := view.NewMachine()
	sess := session.New()

	return &appComponents{
		client:  client,
		machine: machine,
		session: sess,
		auth:    workflow.NewAuth(client, machine, sess, logger),
		upload:  workflow.NewUpload(client, machine, sess, cfg.Upload.AllowedExtensions, logger),
		loader:  common.NewCandidateLoader(cfg.Upload.MaxFileSize, logger),
	}
}

// credentialsFromFlags resolves credentials from command flags, falling back
// to CAREERSCOPE_EMAIL / CAREERSCOPE_PASSWORD / CAREERSCOPE_NAME so secrets
// can stay out of shell history.
func credentialsFromFlags(cmd *cobra.Command) types.Credentials {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	name, _ := cmd.Flags().GetString("name")

	if email == "" {
		email = os.Getenv("CAREERSCOPE_EMAIL")
	}
	if password == "" {
		password = os.Getenv("CAREERSCOPE_PASSWORD")
	}
	if name == "" {
		name = os.Getenv("CAREERSCOPE_NAME")
	}

	return types.Credentials{Name: name, Email: email, Password: password}
}
