package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	render "github.com/example/plumbops/internal/adapters/cli"
	"github.com/example/plumbops/internal/ports/primary"
	"github.com/example/plumbops/internal/wire"
)

// CustomerCmd returns the customer lookup command
func CustomerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Look up customers",
	}
	cmd.AddCommand(directorySearchCmd("customers", func(ctx context.Context, q string) ([]primary.Suggestion, error) {
		return wire.DirectoryService().SearchCustomers(ctx, q)
	}))
	return cmd
}

// TechnicianCmd returns the technician lookup command
func TechnicianCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "technician",
		Short: "Look up technicians",
	}
	cmd.AddCommand(directorySearchCmd("technicians", func(ctx context.Context, q string) ([]primary.Suggestion, error) {
		return wire.DirectoryService().SearchTechnicians(ctx, q)
	}))
	return cmd
}

func directorySearchCmd(noun string, lookup func(context.Context, string) ([]primary.Suggestion, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: fmt.Sprintf("Search %s by name", noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hits, err := lookup(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to search %s: %w", noun, err)
			}

			if len(hits) == 0 {
				fmt.Printf("No %s found\n", noun)
				return nil
			}

			rows := [][]string{{"ID", "NAME", "DETAIL"}}
			for _, hit := range hits {
				rows = append(rows, []string{hit.ID, hit.Label, hit.Subtitle})
			}
			render.Table(os.Stdout, rows)
			return nil
		},
	}
}
