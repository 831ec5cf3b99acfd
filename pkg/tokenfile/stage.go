package tokenfile

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultFileMode os.FileMode = 0o644

// stagedFile is new content written next to its target, waiting to be
// renamed over it.
type stagedFile struct {
	target string
	temp   string
}

// stage writes data to a synced temp file in the target's directory. The
// temp file inherits the target's permissions when the target exists.
func stage(target string, data []byte) (*stagedFile, error) {
	mode := defaultFileMode
	if info, err := os.Stat(target); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging file for %s: %w", target, err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write staging file for %s: %w", target, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return nil, fmt.Errorf("failed to set permissions on staging file for %s: %w", target, err)
	}
	if err := tmp.Sync(); err != nil {
		return nil, fmt.Errorf("failed to sync staging file for %s: %w", target, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close staging file for %s: %w", target, err)
	}

	success = true
	return &stagedFile{target: target, temp: tmpPath}, nil
}

// commit renames the staged file over its target.
func (s *stagedFile) commit() error {
	if err := os.Rename(s.temp, s.target); err != nil {
		_ = os.Remove(s.temp)
		return fmt.Errorf("failed to replace %s: %w", s.target, err)
	}
	return nil
}

// discard removes the staged file without touching the target.
func (s *stagedFile) discard() {
	_ = os.Remove(s.temp)
}
