package cli

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "signoff <command> <subcommand> [flags]",
		Short:         "Dynamic approval workflows for business documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: heredoc.Doc(`
			$ signoff server start -c config.yaml
			$ signoff policy apply -f policy.yaml
			$ signoff job run approval_reminder
		`),
	}

	cmd.AddCommand(
		ServerCommand(),
		JobCmd(),
		PolicyCmd(),
		SeedCmd(),
	)

	return cmd
}

func addConfigFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("config", "c", "./config.yaml", "Config file path")
	cmd.MarkPersistentFlagFilename("config")
}
