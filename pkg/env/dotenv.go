// Package env loads dotenv files into the process environment before the
// configuration is read.
package env

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"

	"github.com/joho/godotenv"

	"github.com/illumination-k/token-helper/pkg/config"
)

// DefaultDotenvFile is loaded when no --env-file flag is given.
const DefaultDotenvFile = ".env"

// Merge reads the dotenv files in order. A key defined in a later file
// replaces the earlier value. Missing files are skipped.
func Merge(files []string) (map[string]string, error) {
	merged := make(map[string]string)

	for _, file := range files {
		if file == "" {
			continue
		}

		path, err := config.ExpandHome(file)
		if err != nil {
			return nil, err
		}

		vars, err := godotenv.Read(path)
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("dotenv file not found", "file", path)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse dotenv file %s: %w", path, err)
		}

		for key, value := range vars {
			merged[key] = value
		}
		slog.Debug("dotenv file loaded", "file", path, "variables", len(vars))
	}

	return merged, nil
}

// Apply exports vars into the process environment. Variables that are
// already set win unless override is true. It returns the sorted keys it set.
func Apply(vars map[string]string, override bool) ([]string, error) {
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var applied []string
	for _, key := range keys {
		if _, set := os.LookupEnv(key); set && !override {
			continue
		}
		if err := os.Setenv(key, vars[key]); err != nil {
			return applied, fmt.Errorf("failed to set %s: %w", key, err)
		}
		applied = append(applied, key)
	}
	return applied, nil
}

// Load merges the dotenv files and exports them without overriding the
// real environment.
func Load(files []string) error {
	vars, err := Merge(files)
	if err != nil {
		return err
	}
	_, err = Apply(vars, false)
	return err
}
