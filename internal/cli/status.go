package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	render "github.com/example/plumbops/internal/adapters/cli"
	"github.com/example/plumbops/internal/core/workorder"
	"github.com/example/plumbops/internal/ports/secondary"
	"github.com/example/plumbops/internal/wire"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session state and the work-order board at a glance",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("PlumbOps Status")
			fmt.Println()
			fmt.Printf("API: %s\n", wire.Config().APIBaseURL)

			if !wire.Sessions().Authenticated() {
				fmt.Println("Session: not logged in")
				fmt.Println()
				fmt.Println("Run `plumbops login` to authenticate.")
				return nil
			}
			fmt.Println("Session: logged in")
			fmt.Println()

			orders, err := wire.WorkOrderService().ListWorkOrders(cmd.Context())
			if err != nil {
				if errors.Is(err, secondary.ErrUnauthorized) {
					fmt.Println("The session has expired. Run `plumbops login` again.")
					return nil
				}
				return fmt.Errorf("failed to list work orders: %w", err)
			}

			counts := make(map[workorder.Status]int)
			for _, wo := range orders {
				counts[wo.Status]++
			}

			fmt.Printf("Work orders: %d\n", len(orders))
			for _, status := range workorder.AllStatuses() {
				if counts[status] > 0 {
					fmt.Printf("  %-12s %d\n", render.StatusBadge(status), counts[status])
				}
			}
			return nil
		},
	}
}
