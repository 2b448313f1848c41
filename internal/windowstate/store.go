package windowstate

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Store reads and writes State as JSON at a fixed path.
type Store struct {
	path string
	log  *slog.Logger
}

// NewStore returns a store for the file at path. A nil logger discards.
func NewStore(path string, log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{path: path, log: log}
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted state, or the zero State when the file is
// missing, unreadable or malformed. Unknown fields are ignored.
func (s *Store) Load() State {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Debug("window state unreadable, using defaults", "path", s.path, "error", err)
		}
		return State{}
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		s.log.Debug("window state malformed, using defaults", "path", s.path, "error", err)
		return State{}
	}
	return st
}

// Save overwrites the file with st, creating parent directories.
// Failures are logged and otherwise ignored.
func (s *Store) Save(st State) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		s.log.Debug("create window state dir failed", "path", s.path, "error", err)
		return
	}

	data, err := json.Marshal(st)
	if err != nil {
		s.log.Debug("encode window state failed", "error", err)
		return
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		s.log.Debug("write window state failed", "path", s.path, "error", err)
	}
}

// Reset deletes the file so the next Load returns the zero State.
func (s *Store) Reset() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
