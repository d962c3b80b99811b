package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
	DriverMemory = "memory"
)

// Store is a synchronous string-keyed string-value store.
type Store interface {
	// GetItem returns the value for key and whether it was present.
	GetItem(key string) (string, bool, error)
	// SetItem overwrites the value for key.
	SetItem(key, value string) error
	Close() error
}

// Open returns the backend named by driver, storing its data at path.
func Open(driver, path string) (Store, error) {
	switch driver {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite, "":
		if err := ensureDir(path); err != nil {
			return nil, err
		}
		return NewSQLiteStore(path)
	case DriverFile:
		if err := ensureDir(path); err != nil {
			return nil, err
		}
		return NewFileStore(path), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return nil
}

// MemoryStore keeps values in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) GetItem(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
