package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rectalogic/terp/internal/logging"
	"github.com/rectalogic/terp/internal/state"
)

// Read returns the raw bytes of the project at path. An empty path or a
// missing file is not an error: it returns nil data.
func Read(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	return data, nil
}

// Write replaces the project at path with data.
func Write(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write project: %w", err)
	}
	return nil
}

// LoadBytes decodes data into s. Empty data leaves s untouched.
func LoadBytes(s *state.Session, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	p, err := Decode(data)
	if err != nil {
		return err
	}
	return Apply(s, p)
}

// Load reads the project at path into s.
func Load(s *state.Session, path string) error {
	data, err := Read(path)
	if err != nil {
		return err
	}
	if data == nil {
		logging.L().Debug("no project to load", "path", path)
		return nil
	}
	if err := LoadBytes(s, data); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Bytes encodes the merged pairs of s.
func Bytes(s *state.Session) ([]byte, error) {
	p, err := FromSession(s)
	if err != nil {
		return nil, err
	}
	return Encode(p)
}

// Save writes the merged pairs of s to path. An empty path does nothing.
func Save(s *state.Session, path string) error {
	if path == "" {
		return nil
	}
	data, err := Bytes(s)
	if err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	if err := Write(path, data); err != nil {
		return err
	}
	logging.L().Info("project saved", "path", path, "bytes", len(data))
	return nil
}
