package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Store persists the session between runs.
type Store interface {
	// Load returns the saved snapshot, or nil when there is none.
	Load() (*Snapshot, error)
	Save(s Snapshot) error
	// SaveActivity updates only the last-activity timestamp. It is a no-op
	// when nothing is stored.
	SaveActivity(at time.Time) error
	Clear() error
}

// FileStore keeps the snapshot in a JSON file readable only by the owner.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) Save(snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(snap)
}

func (s *FileStore) SaveActivity(at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return err
	}
	if snap == nil {
		return nil
	}
	snap.LastActivity = at
	return s.write(*snap)
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session store: remove: %w", err)
	}
	return nil
}

func (s *FileStore) load() (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session store: read: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("session store: decode: %w", err)
	}
	return &snap, nil
}

// write replaces the file atomically.
func (s *FileStore) write(snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("session store: encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("session store: temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("session store: write: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("session store: chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("session store: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("session store: rename: %w", err)
	}
	return nil
}
