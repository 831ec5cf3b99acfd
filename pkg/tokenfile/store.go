// Package tokenfile keeps the panel token in the two developer config files:
// a JSON document (dev.panel_token) and a JavaScript source file
// (const auth = "...";).
package tokenfile

import (
	"fmt"
	"log/slog"
	"os"
)

// Store reads and writes the token in both files.
type Store struct {
	jsonPath string
	jsPath   string
	logger   *slog.Logger
}

// NewStore creates a Store for the given file paths.
func NewStore(jsonPath, jsPath string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		jsonPath: jsonPath,
		jsPath:   jsPath,
		logger:   logger,
	}
}

// JSONPath returns the JSON file path.
func (s *Store) JSONPath() string {
	return s.jsonPath
}

// JSPath returns the JS file path.
func (s *Store) JSPath() string {
	return s.jsPath
}

// ReadCurrentToken returns the JSON token when it is non-empty, otherwise the
// JS token, otherwise "". Absence is never an error.
func (s *Store) ReadCurrentToken() string {
	if token := readJSONToken(s.jsonPath); token != "" {
		return token
	}
	return readJSToken(s.jsPath)
}

// WriteToken writes token to both files.
//
// Both new documents are computed before anything is written, so a format
// problem in either file (e.g. no auth assignment in the JS file) leaves
// both untouched. The files are then staged next to their targets and
// renamed JSON first, JS second. The two renames are not atomic as a pair:
// a failure of the second leaves the files diverged.
func (s *Store) WriteToken(token string) error {
	jsonData, err := s.renderJSON(token)
	if err != nil {
		return err
	}
	jsData, err := s.renderJS(token)
	if err != nil {
		return err
	}

	jsonStaged, err := stage(s.jsonPath, jsonData)
	if err != nil {
		return err
	}
	jsStaged, err := stage(s.jsPath, jsData)
	if err != nil {
		jsonStaged.discard()
		return err
	}

	if err := jsonStaged.commit(); err != nil {
		jsStaged.discard()
		return err
	}
	if err := jsStaged.commit(); err != nil {
		s.logger.Error("token files diverged: JSON updated but JS write failed",
			"json_path", s.jsonPath,
			"js_path", s.jsPath,
			"error", err)
		return err
	}

	s.logger.Info("token written", "json_path", s.jsonPath, "js_path", s.jsPath)
	return nil
}

// ValidatePaths returns a warning for every configured file that does not exist.
func (s *Store) ValidatePaths() []string {
	var warnings []string

	if _, err := os.Stat(s.jsonPath); err != nil {
		warnings = append(warnings, fmt.Sprintf("JSON file does not exist: %s", s.jsonPath))
	}
	if _, err := os.Stat(s.jsPath); err != nil {
		warnings = append(warnings, fmt.Sprintf("JS file does not exist: %s", s.jsPath))
	}

	return warnings
}

// renderJSON returns the updated JSON document. A missing file starts from
// an empty object.
func (s *Store) renderJSON(token string) ([]byte, error) {
	data, err := os.ReadFile(s.jsonPath) // #nosec G304 -- configured path
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read JSON file %s: %w", s.jsonPath, err)
	}

	out, err := renderJSONToken(data, token)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", s.jsonPath, err)
	}
	return out, nil
}

func (s *Store) renderJS(token string) ([]byte, error) {
	data, err := os.ReadFile(s.jsPath) // #nosec G304 -- configured path
	if err != nil {
		return nil, fmt.Errorf("failed to read JS file %s: %w", s.jsPath, err)
	}

	out, err := renderJSToken(data, token)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", s.jsPath, err)
	}
	return out, nil
}
