// Package paths provides centralized path resolution for devkit.
// This package has NO internal imports (only stdlib) to avoid import cycles.
// All functions return errors to allow callers to log appropriately.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigNames are the accepted config file names, in lookup order
var ConfigNames = []string{"devkit.yaml", "devkit.yml", "devkit.toml"}

// globalNames are looked up inside BaseDir
var globalNames = []string{"config.yaml", "config.yml", "config.toml"}

// BaseDir returns the devkit base directory (~/.devkit).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".devkit"), nil
}

// DataPath returns a path within the devkit directory (~/.devkit/<subpath>).
func DataPath(subpath string) (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, subpath), nil
}

// ConfigPath returns the active config file.
// Priority: explicit > ./devkit.{yaml,yml,toml} > ~/.devkit/config.{yaml,yml,toml}
// Returns ("", nil) if no config exists - this is a valid state, not an error.
// An explicit path that does not exist is an error.
func ConfigPath(explicit string) (string, error) {
	if explicit != "" {
		path, err := ExpandTilde(explicit)
		if err != nil {
			return "", err
		}
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return filepath.Abs(path)
	}

	// Check local first
	for _, name := range ConfigNames {
		if _, err := os.Stat(name); err == nil {
			absPath, err := filepath.Abs(name)
			if err != nil {
				return "", fmt.Errorf("failed to get absolute path: %w", err)
			}
			return absPath, nil
		}
	}

	// Check global
	for _, name := range globalNames {
		globalPath, err := DataPath(name)
		if err != nil {
			return "", err
		}
		if _, err := os.Stat(globalPath); err == nil {
			return globalPath, nil
		}
	}

	// No config found - valid state
	return "", nil
}

// ExpandTilde expands a path that starts with ~ to the user's home directory.
// Returns the path unchanged if it doesn't start with ~.
func ExpandTilde(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	if len(path) == 1 {
		return home, nil
	}
	return filepath.Join(home, path[1:]), nil
}
