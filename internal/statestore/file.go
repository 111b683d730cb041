package statestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists state in a local JSON file. The lock is a sibling
// .lock file created exclusively, so a stale lock from a crashed run is
// visible and must be removed by the operator.
type FileStore struct {
	path   string
	locked bool
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a file-backed store at path. The parent directory is
// created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) lockPath() string {
	return s.path + ".lock"
}

// Lock acquires the exclusive run lock.
func (s *FileStore) Lock(_ context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	f, err := os.OpenFile(s.lockPath(), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("state is locked by another run (remove %s if that run crashed)", s.lockPath())
		}
		return fmt.Errorf("failed to acquire state lock: %w", err)
	}
	fmt.Fprintf(f, "%d\n", os.Getpid())
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write state lock: %w", err)
	}

	s.locked = true
	return nil
}

// Unlock releases the run lock.
func (s *FileStore) Unlock() error {
	if !s.locked {
		return nil
	}
	s.locked = false
	if err := os.Remove(s.lockPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to release state lock: %w", err)
	}
	return nil
}

// Get returns the record for a unit, or nil if absent.
func (s *FileStore) Get(unit string) (*Record, error) {
	records, err := s.load()
	if err != nil {
		return nil, err
	}
	return records[unit], nil
}

// Put inserts or replaces a unit's record.
func (s *FileStore) Put(record *Record) error {
	records, err := s.load()
	if err != nil {
		return err
	}
	records[record.Unit] = record
	return s.save(records)
}

// Clear removes all records.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	return nil
}

func (s *FileStore) load() (map[string]*Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]*Record), nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	records := make(map[string]*Record)
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	return records, nil
}

func (s *FileStore) save(records map[string]*Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
