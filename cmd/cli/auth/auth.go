// Package auth provides the login and logout CLI commands.
package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"taskhub/cmd/cli/config"
)

// Init registers auth-related CLI commands on the root command.
func Init(rootCmd *cobra.Command) {
	rootCmd.AddCommand(loginCmd(), logoutCmd())
}

// loginCmd creates a command that logs in and stores the token locally.
func loginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the Taskhub API",
		Long:  "Authenticate with the Taskhub API and store a bearer token for subsequent CLI commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return fmt.Errorf("username and password are required")
			}

			var loginResp struct {
				Token string `json:"token"`
			}
			payload := map[string]string{"username": username, "password": password}
			if err := PostJSON("/api/auth/login", "", payload, &loginResp); err != nil {
				return fmt.Errorf("failed to login: %w", err)
			}
			if loginResp.Token == "" {
				return fmt.Errorf("login succeeded but no token returned")
			}

			if err := config.SaveToken(loginResp.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Println("Login successful. Token stored locally.")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username to authenticate as")
	cmd.Flags().StringVar(&password, "password", "", "Password for the account")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out of the Taskhub API",
		Long:  "Remove the locally stored bearer token.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ClearToken(); err != nil {
				return fmt.Errorf("failed to remove token: %w", err)
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

// PostJSON sends a JSON body to the API, with an optional bearer token,
// and decodes the JSON response into out when out is non-nil.
func PostJSON(path, token string, payload interface{}, out interface{}) error {
	return callJSON("POST", path, token, payload, out)
}

// GetJSON fetches JSON from the API with an optional bearer token.
func GetJSON(path, token string, out interface{}) error {
	return callJSON("GET", path, token, nil, out)
}

// PutJSON sends a PUT request to the API with an optional bearer token.
func PutJSON(path, token string, payload interface{}, out interface{}) error {
	return callJSON("PUT", path, token, payload, out)
}

func callJSON(method, path, token string, payload interface{}, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, config.APIURL()+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(data))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return err
		}
	}

	return nil
}
