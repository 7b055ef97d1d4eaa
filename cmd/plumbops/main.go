package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/plumbops/internal/cli"
	"github.com/example/plumbops/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "plumbops",
		Short:   "PlumbOps - operations console for a plumbing service",
		Version: version.String(),
		Long: `PlumbOps is the back-office console for a plumbing service company.
It drives work orders through their lifecycle, manages the price book,
builds quotes and invoices, and opens an interactive dispatch board.`,
	}

	// Session
	rootCmd.AddCommand(cli.LoginCmd())
	rootCmd.AddCommand(cli.LogoutCmd())
	rootCmd.AddCommand(cli.WhoamiCmd())
	rootCmd.AddCommand(cli.StatusCmd())

	// Entity commands
	rootCmd.AddCommand(cli.WorkOrderCmd())
	rootCmd.AddCommand(cli.DocumentCmd())
	rootCmd.AddCommand(cli.ItemCmd())
	rootCmd.AddCommand(cli.CustomerCmd())
	rootCmd.AddCommand(cli.TechnicianCmd())

	// Interactive board
	rootCmd.AddCommand(cli.BoardCmd())

	// Local configuration
	rootCmd.AddCommand(cli.ConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
