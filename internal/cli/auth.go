package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	render "github.com/example/plumbops/internal/adapters/cli"
	"github.com/example/plumbops/internal/wire"
)

// LoginCmd returns the login command
func LoginCmd() *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the PlumbOps API",
		Long: `Exchange credentials for a bearer token and persist it locally.
Subsequent commands reuse the stored session until logout or a 401.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(os.Stdin)
			if email == "" {
				fmt.Print("Email: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("failed to read email: %w", err)
				}
				email = strings.TrimSpace(line)
			}
			if password == "" {
				fmt.Print("Password: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = strings.TrimSpace(line)
			}

			result, err := wire.AuthService().Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("failed to log in: %w", err)
			}

			fmt.Println(render.Success("Logged in as %s", email))
			if len(result.Roles) > 0 {
				fmt.Printf("Roles: %s\n", strings.Join(result.Roles, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (prompted when omitted)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")
	return cmd
}

// LogoutCmd returns the logout command
func LogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.AuthService().Logout(cmd.Context()); err != nil {
				return fmt.Errorf("failed to log out: %w", err)
			}
			fmt.Println(render.Success("Logged out"))
			return nil
		},
	}
}

// WhoamiCmd returns the whoami command
func WhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cur := wire.Sessions().Current()
			if !cur.Authenticated() {
				fmt.Println("Not logged in. Run `plumbops login`.")
				return nil
			}
			fmt.Println("Logged in")
			if len(cur.Roles) > 0 {
				fmt.Printf("Roles: %s\n", strings.Join(cur.Roles, ", "))
			}
			fmt.Printf("API:   %s\n", wire.Config().APIBaseURL)
			return nil
		},
	}
}
