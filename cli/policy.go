package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goto/signoff/domain"
	"github.com/goto/signoff/internal/server"
	"github.com/goto/signoff/pkg/log"
	"github.com/goto/signoff/plugins/notifiers"
)

func PolicyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "policy",
		Aliases: []string{"policies"},
		Short:   "Manage approval policies",
		Example: heredoc.Doc(`
			$ signoff policy apply -f policy.yaml
		`),
	}

	cmd.AddCommand(applyPolicyCmd())
	addConfigFlag(cmd)

	return cmd
}

func applyPolicyCmd() *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create a policy or store it as a new version",
		Example: heredoc.Doc(`
			$ signoff policy apply --file policy.yaml
		`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			policies, err := readPolicies(filePath)
			if err != nil {
				return err
			}

			services, closeFn, err := initCLIServices(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			ctx := context.Background()
			for _, p := range policies {
				if err := services.PolicyService.Apply(ctx, p); err != nil {
					return fmt.Errorf("applying policy %q: %w", p.ID, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "policy %s applied, version %d\n", p.ID, p.Version)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Path to the policy yaml, documents separated by ---")
	cmd.MarkFlagRequired("file")

	return cmd
}

// readPolicies decodes every yaml document of the file as a policy
func readPolicies(filePath string) ([]*domain.Policy, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening policy file: %w", err)
	}
	defer f.Close()

	var policies []*domain.Policy
	dec := yaml.NewDecoder(f)
	for {
		var p domain.Policy
		if err := dec.Decode(&p); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("parsing policy file: %w", err)
		}
		policies = append(policies, &p)
	}
	if len(policies) == 0 {
		return nil, fmt.Errorf("no policy found in %s", filePath)
	}
	return policies, nil
}

func initCLIServices(cmd *cobra.Command) (*server.Services, func() error, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewCtxLogger(cfg.LogLevel, nil)
	notifier, err := notifiers.NewClient(&cfg.Notifier, logger)
	if err != nil {
		return nil, nil, err
	}
	services, err := server.InitServices(server.ServiceDeps{
		Config:   &cfg,
		Logger:   logger,
		Notifier: notifier,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("initializing services: %w", err)
	}
	return services, services.Close, nil
}
