package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/mwantia/goweight/internal/agent"
	"github.com/spf13/cobra"

	config "github.com/mwantia/goweight/internal/config/server"
)

func NewImportCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "import [name...]",
		Short: "Import weights from the configured files",
		Long: `Import weights from every configured file, or only the named imports.

Files whose content hash matches the last import are skipped unless
--force is set or one of their dependencies was updated in the same run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServerConfig()
			if err != nil {
				return fmt.Errorf("failed to load server configuration: %w", err)
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			a := agent.NewAgent(cfg)
			if err := a.Setup(ctx); err != nil {
				return err
			}
			defer a.Cleanup(context.Background())

			results, err := a.RunImports(ctx, args, force)
			if err != nil {
				return err
			}

			updated := 0
			for _, ok := range results {
				if ok {
					updated++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d imports updated\n", updated, len(results))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "reimport files even when unchanged")

	return cmd
}
