package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// DefaultPath returns the default project file location, ~/.spica/project.json.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "project.json"
	}
	return filepath.Join(home, ".spica", "project.json")
}

// FileStore persists project data as a JSON file. Writes go through a
// temp file and rename so a crash mid-save cannot truncate the project.
type FileStore struct {
	path string
	log  *zap.Logger
}

// NewFileStore creates a FileStore for the given path. A nil logger is
// replaced with zap.NewNop().
func NewFileStore(path string, log *zap.Logger) *FileStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileStore{path: path, log: log}
}

// Path returns the file path this store reads and writes.
func (f *FileStore) Path() string {
	return f.path
}

// Save writes the project data to disk.
func (f *FileStore) Save(data *ProjectData) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding project: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("creating project directory: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("writing project file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing project file: %w", err)
	}

	f.log.Debug("project saved", zap.String("path", f.path), zap.Int("bytes", len(raw)))
	return nil
}

// Load reads and repairs the project file. A missing file yields a fresh
// empty project; unreadable JSON is an error.
func (f *FileStore) Load() (*ProjectData, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		f.log.Info("project file not found, starting empty", zap.String("path", f.path))
		return NewEmptyProject("New Project", ""), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading project file: %w", err)
	}

	var data ProjectData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decoding project file: %w", err)
	}

	Repair(&data)
	return &data, nil
}
