package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/example/plumbops/internal/tui"
	"github.com/example/plumbops/internal/wire"
)

// BoardCmd returns the board command launching the interactive TUI
func BoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive dispatch board",
		Long: `Launch the terminal dispatch board: a live work-order list with
lifecycle actions and debounced customer/technician lookups.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !wire.Sessions().Authenticated() {
				return fmt.Errorf("not logged in, run `plumbops login` first")
			}

			board := tui.NewBoard(wire.WorkOrderService(), wire.DirectoryService(), wire.SearchQuiet())
			p := tea.NewProgram(board, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("failed to run dispatch board: %w", err)
			}
			return nil
		},
	}
}
