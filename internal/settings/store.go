// Package settings implements the schema-driven settings system: a typed
// catalog of setting definitions, key-value stores that persist values, and a
// Settings front end that validates writes and layers environment overrides
// over stored values and catalog defaults.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// storagePrefix is prepended to every key in the persisted file, matching the
// key format the editor uses in browser storage.
const storagePrefix = "lurch-"

// Store holds raw setting values by key. It is the storage backend behind
// Settings: Get reports the stored value and whether one exists, Set and
// Delete persist immediately.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
	Keys() []string
}

// MemoryStore is an in-memory Store, used in tests and for ephemeral
// sessions.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the stored value for key and whether one exists.
func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok
}

// Set stores value under key.
func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Delete removes the value stored under key.
func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Keys returns the stored keys, sorted.
func (m *MemoryStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.values))
	for key := range m.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// FileStore persists setting values to a single JSON file, writing the whole
// file on every change. On disk each key carries the storage prefix.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
}

// NewFileStore creates a store backed by the JSON file at path, loading any
// values the file already holds. The containing directory is created if
// needed.
func NewFileStore(path string) (*FileStore, error) {
	store := &FileStore{
		path:   path,
		values: make(map[string]string),
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	var onDisk map[string]string
	if err := json.Unmarshal(data, &onDisk); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	for key, value := range onDisk {
		store.values[strings.TrimPrefix(key, storagePrefix)] = value
	}

	return store, nil
}

// Path returns the file the store persists to.
func (f *FileStore) Path() string {
	return f.path
}

// Get returns the stored value for key and whether one exists.
func (f *FileStore) Get(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	value, ok := f.values[key]
	return value, ok
}

// Set stores value under key and writes the file.
func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return f.save()
}

// Delete removes the value stored under key and writes the file.
func (f *FileStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, key)
	return f.save()
}

// Keys returns the stored keys, sorted.
func (f *FileStore) Keys() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	keys := make([]string, 0, len(f.values))
	for key := range f.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// save writes the whole value map to the file. Callers hold the write lock.
func (f *FileStore) save() error {
	onDisk := make(map[string]string, len(f.values))
	for key, value := range f.values {
		onDisk[storagePrefix+key] = value
	}

	data, err := json.MarshalIndent(onDisk, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file %s: %w", f.path, err)
	}
	return nil
}
