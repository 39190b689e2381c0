package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goto/signoff/domain"
)

// seedFile lists the directory data and rates the engine resolves against
type seedFile struct {
	Groups []*domain.Group          `yaml:"groups"`
	Roles  []*domain.RoleAssignment `yaml:"roles"`
	Rates  []*domain.CurrencyRate   `yaml:"rates"`
}

func SeedCmd() *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load groups, role assignments and currency rates",
		Example: heredoc.Doc(`
			$ signoff seed -f directory.yaml
		`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			content, err := os.ReadFile(filePath)
			if err != nil {
				return fmt.Errorf("reading seed file: %w", err)
			}
			var seed seedFile
			if err := yaml.Unmarshal(content, &seed); err != nil {
				return fmt.Errorf("parsing seed file: %w", err)
			}

			services, closeFn, err := initCLIServices(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			ctx := context.Background()
			for _, g := range seed.Groups {
				if err := services.Groups.Upsert(ctx, g); err != nil {
					return fmt.Errorf("seeding group %q: %w", g.Name, err)
				}
			}
			for _, r := range seed.Roles {
				if err := services.Roles.Upsert(ctx, r); err != nil {
					return fmt.Errorf("seeding role %q: %w", r.Role, err)
				}
			}
			for _, r := range seed.Rates {
				if err := services.CurrencyService.SetRate(ctx, r); err != nil {
					return fmt.Errorf("seeding rate %q: %w", r.Currency, err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d groups, %d roles, %d rates\n", len(seed.Groups), len(seed.Roles), len(seed.Rates))
			return nil
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Path to the seed yaml")
	cmd.MarkFlagRequired("file")
	addConfigFlag(cmd)

	return cmd
}
