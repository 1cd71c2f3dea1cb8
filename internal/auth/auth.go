// Package auth provides Notion integration token management.
// It implements a simple interface with multiple providers following the
// "deep modules" principle - simple interface, complex implementation hidden.
package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TokenProvider defines the interface for obtaining a Notion API token.
// Implementations may use different sources (environment, token file, etc).
type TokenProvider interface {
	GetToken() (string, error)
}

// EnvProvider obtains tokens from the NOTION_API_KEY environment variable.
// This is the preferred method for scripted and CI use.
type EnvProvider struct{}

// GetToken reads the NOTION_API_KEY environment variable.
// Returns an error if the variable is not set or is empty.
func (e *EnvProvider) GetToken() (string, error) {
	token := os.Getenv("NOTION_API_KEY")
	if token == "" {
		return "", errors.New("NOTION_API_KEY environment variable not set or empty")
	}
	return token, nil
}

// FileProvider obtains tokens from a file on disk. An empty Path falls
// back to ~/.config/nhp/token.
type FileProvider struct {
	Path string
}

// GetToken reads and trims the token file contents.
// Returns an error if the file is missing or holds no token.
func (f *FileProvider) GetToken() (string, error) {
	path := f.Path
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".config", "nhp", "token")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read token file %s: %w", path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("token file %s is empty", path)
	}
	return token, nil
}

// GetToken attempts to obtain a Notion token using the following strategy:
// 1. Try the NOTION_API_KEY environment variable
// 2. Fall back to the token file
// 3. Return a clear, actionable error if both fail
//
// This is the main entry point for token retrieval in the application.
func GetToken() (string, error) {
	env := &EnvProvider{}
	token, err := env.GetToken()
	if err == nil {
		return token, nil
	}

	envErr := err

	file := &FileProvider{}
	token, err = file.GetToken()
	if err == nil {
		return token, nil
	}

	return "", fmt.Errorf(
		"failed to obtain Notion token: NOTION_API_KEY not set (%v) and no token file (%v).\n"+
			"Please either:\n"+
			"  1. Set the NOTION_API_KEY environment variable with an integration secret, or\n"+
			"  2. Write the secret to ~/.config/nhp/token",
		envErr, err,
	)
}
