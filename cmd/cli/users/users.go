// Package users provides the admin user-management CLI commands.
package users

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskhub/cmd/cli/auth"
	"taskhub/cmd/cli/config"
	"taskhub/cmd/cli/output"
)

type userPayload struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
}

// Init registers the users command tree on the root command.
func Init(rootCmd *cobra.Command) {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Administer user accounts",
		Long:  "List, create, activate, and deactivate Taskhub user accounts. Requires an admin login.",
	}

	usersCmd.AddCommand(listCmd(), createCmd(), deactivateCmd(), activateCmd())
	rootCmd.AddCommand(usersCmd)
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all user accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.LoadToken()
			if err != nil {
				return fmt.Errorf("not logged in: %w", err)
			}

			var users []userPayload
			if err := auth.GetJSON("/api/admin/users", token, &users); err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(users))
			for _, u := range users {
				rows = append(rows, []interface{}{u.ID, u.Username, u.Email, u.Role, u.IsActive})
			}
			output.RenderTable([]string{"ID", "Username", "Email", "Role", "Active"}, rows)
			return nil
		},
	}
}

func createCmd() *cobra.Command {
	var username, email, password, role string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.LoadToken()
			if err != nil {
				return fmt.Errorf("not logged in: %w", err)
			}

			payload := map[string]string{
				"username": username,
				"email":    email,
				"password": password,
				"role":     role,
			}
			var resp struct {
				Message string      `json:"message"`
				User    userPayload `json:"user"`
			}
			if err := auth.PostJSON("/api/admin/users", token, payload, &resp); err != nil {
				return err
			}

			fmt.Printf("Created user %s (id %d) with role %s\n", resp.User.Username, resp.User.ID, resp.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username for the new account")
	cmd.Flags().StringVar(&email, "email", "", "Email for the new account")
	cmd.Flags().StringVar(&password, "password", "", "Password for the new account")
	cmd.Flags().StringVar(&role, "role", "user", "Role for the new account (user or admin)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func deactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <id>",
		Short: "Deactivate a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setActive(args[0], "deactivate")
		},
	}
}

func activateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activate <id>",
		Short: "Activate a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setActive(args[0], "activate")
		},
	}
}

func setActive(id, action string) error {
	token, err := config.LoadToken()
	if err != nil {
		return fmt.Errorf("not logged in: %w", err)
	}

	var resp struct {
		Message string `json:"message"`
	}
	if err := auth.PutJSON("/api/admin/users/"+action+"/"+id, token, nil, &resp); err != nil {
		return err
	}

	fmt.Println(resp.Message)
	return nil
}
