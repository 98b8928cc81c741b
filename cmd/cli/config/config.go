// Package config holds CLI-side configuration: the API base URL and the
// locally cached bearer token.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultAPIURL = "http://localhost:8080"
	tokenFileName = ".taskhub_token"
)

// APIURL returns the base URL for the Taskhub API.
// It can be overridden with the TASKHUB_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("TASKHUB_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

func tokenPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, tokenFileName), nil
}

// SaveToken stores the bearer token in the user's home directory.
func SaveToken(token string) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token), 0600)
}

// LoadToken reads the locally stored bearer token.
func LoadToken() (string, error) {
	path, err := tokenPath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// ClearToken removes the locally stored bearer token.
func ClearToken() error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
