package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	render "github.com/example/plumbops/internal/adapters/cli"
	"github.com/example/plumbops/internal/config"
	"github.com/example/plumbops/internal/wire"
)

// ConfigCmd returns the config command group
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and change local configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()
			fmt.Printf("API base URL:    %s\n", cfg.APIBaseURL)
			fmt.Printf("Search quiet ms: %d\n", cfg.SearchQuietMs)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-url [api-base-url]",
		Short: "Persist a new API base URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.Dir()
			if err != nil {
				return fmt.Errorf("failed to locate config directory: %w", err)
			}
			cfg, err := config.Load(dir)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			cfg.APIBaseURL = args[0]
			if err := config.Save(dir, cfg); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}
			fmt.Println(render.Success("API base URL set to %s", args[0]))
			return nil
		},
	})

	return cmd
}
