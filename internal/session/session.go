// Package session manages per-run session directories. A session collects
// the artifacts of one segmentation run in one place: the effective options
// it ran with and the diagnostics it produced.
package session

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Session is one run's artifact directory.
type Session struct {
	// ID is the unique identifier of the run.
	ID string

	// Dir is the session directory path.
	Dir string
}

// New creates a session directory under baseDir. The directory name combines
// the run name with a short unique suffix so repeated runs never collide.
func New(baseDir, name string) (*Session, error) {
	id := uuid.NewString()
	dir := filepath.Join(baseDir, fmt.Sprintf("%s-%s", name, id[:8]))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	return &Session{ID: id, Dir: dir}, nil
}

// WriteOptions records the effective options of the run as options.yaml.
func (s *Session) WriteOptions(opts any) error {
	return s.writeYAML("options.yaml", opts)
}

// WriteDiagnostics records the run diagnostics as diagnostics.yaml.
func (s *Session) WriteDiagnostics(diag any) error {
	return s.writeYAML("diagnostics.yaml", diag)
}

func (s *Session) writeYAML(name string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
