package cli

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/goto/signoff/internal/server"
	"github.com/goto/signoff/jobs"
	"github.com/goto/signoff/pkg/log"
	"github.com/goto/signoff/plugins/notifiers"
)

func JobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "job",
		Aliases: []string{"jobs"},
		Short:   "Manage jobs",
		Example: heredoc.Doc(`
			$ signoff job run approval_reminder
		`),
	}

	cmd.AddCommand(
		runJobCmd(),
	)
	addConfigFlag(cmd)

	return cmd
}

func runJobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fire a specific job",
		Example: heredoc.Doc(`
			$ signoff job run approval_reminder
			$ signoff job run pending_approvals_digest
		`),
		Args: cobra.ExactValidArgs(1),
		ValidArgs: []string{
			string(jobs.TypeApprovalReminder),
			string(jobs.TypePendingApprovalsDigest),
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logger := log.NewCtxLogger(config.LogLevel, []log.ContextKey{log.RequestIDKey})
			notifier, err := notifiers.NewClient(&config.Notifier, logger)
			if err != nil {
				return err
			}

			services, err := server.InitServices(server.ServiceDeps{
				Config:   &config,
				Logger:   logger,
				Notifier: notifier,
			})
			if err != nil {
				return fmt.Errorf("initializing services: %w", err)
			}
			defer services.Close()

			handler := jobs.NewHandler(jobs.HandlerDeps{
				Logger:        logger,
				Reminders:     services.ReminderService,
				ReportService: services.ReportService,
				Notifier:      notifier,
				Locker:        services.Locker,
				Calendar:      config.Approval.BusinessHours,
			})

			jobsMap := map[jobs.Type]func(context.Context, jobs.Config) error{
				jobs.TypeApprovalReminder:       handler.ApprovalReminder,
				jobs.TypePendingApprovalsDigest: handler.PendingApprovalsDigest,
			}

			jobName := jobs.Type(args[0])
			job := jobsMap[jobName]
			if job == nil {
				return fmt.Errorf("invalid job name: %s", jobName)
			}
			jobConfig := config.Jobs[jobName].Config
			if err := job(context.Background(), jobConfig); err != nil {
				return fmt.Errorf(`failed to run job "%s": %w`, jobName, err)
			}

			return nil
		},
	}

	return cmd
}
