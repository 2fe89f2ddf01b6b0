package save

import (
	"os"
	"path/filepath"
	"sync"
)

// Store is a single-slot save backend.
type Store interface {
	Load() (*Data, error)
	Save(*Data) error
	Clear() error
}

// FileStore keeps the save as one JSON file on disk, with the last loaded
// snapshot cached in memory.
type FileStore struct {
	mu    sync.Mutex
	path  string
	cache *Data
}

// NewFileStore creates the save directory if needed.
func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{path: filepath.Join(dataDir, "save.json")}, nil
}

// Path returns the save file location.
func (s *FileStore) Path() string { return s.path }

// Load reads and decodes the save. A missing file is a fresh player, not an
// error; a corrupt or tampered file decodes to defaults.
func (s *FileStore) Load() (*Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache != nil {
		return s.cache, nil
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.cache = NewData()
			return s.cache, nil
		}
		return nil, err
	}
	s.cache = Decode(raw)
	return s.cache, nil
}

// Save encodes and writes the snapshot, replacing the cache.
func (s *FileStore) Save(d *Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := Encode(d)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, raw, 0644); err != nil {
		return err
	}
	s.cache = d
	return nil
}

// Clear removes the save file and cache.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache = nil
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
