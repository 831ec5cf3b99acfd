package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyPath is returned when a file location is blank.
var ErrEmptyPath = errors.New("path cannot be empty")

// userHomeDir is swapped in tests.
var userHomeDir = os.UserHomeDir

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
// Other forms such as "~alice/x" are returned unchanged.
func ExpandHome(path string) (string, error) {
	rest, ok := strings.CutPrefix(path, "~")
	if !ok || (rest != "" && !strings.HasPrefix(rest, "/")) {
		return path, nil
	}

	home, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, rest), nil
}

// ResolvePath expands the home directory and makes path absolute.
func ResolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrEmptyPath
	}

	expanded, err := ExpandHome(path)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	return abs, nil
}

// tokenFilePath resolves a configured token file location. A location that
// cannot be resolved is kept as written so ValidatePaths can report it.
func tokenFilePath(path string) string {
	if resolved, err := ResolvePath(path); err == nil {
		return resolved
	}
	return path
}
