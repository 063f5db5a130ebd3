package store

import (
	"fmt"
	"path/filepath"
	"sync"

	"taskflow/internal/domain"
)

const preferencesFile = "preferences.json"

// FileKV persists string values as a JSON object in dir/preferences.json.
type FileKV struct {
	dir string
	mu  sync.Mutex
}

// NewFileKV returns a FileKV rooted at dir. The directory must exist.
func NewFileKV(dir string) *FileKV {
	return &FileKV{dir: dir}
}

// Get returns the value for key and whether it was present.
func (s *FileKV) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := map[string]string{}
	if err := readJSON(s.path(), &values); err != nil {
		return "", false, fmt.Errorf("read %s: %w", preferencesFile, err)
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set stores value under key, keeping every other key intact.
func (s *FileKV) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := map[string]string{}
	// A corrupt file is replaced rather than blocking every future write.
	_ = readJSON(s.path(), &values)
	values[key] = value
	if err := writeJSON(s.path(), values, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", preferencesFile, err)
	}
	return nil
}

func (s *FileKV) path() string { return filepath.Join(s.dir, preferencesFile) }

// Compile-time assertion that FileKV implements domain.KV.
var _ domain.KV = (*FileKV)(nil)
