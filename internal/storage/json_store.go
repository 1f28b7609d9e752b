package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

const jsonStoreVersion = 1

type document struct {
	Version int                        `json:"version"`
	Items   map[string]json.RawMessage `json:"items"`
}

// JSONStore keeps every item in one human-readable JSON file. Items are
// served from the last loaded document; Load re-reads the file.
type JSONStore struct {
	mu   sync.RWMutex
	path string
	doc  *document
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		return s.load()
	}

	s.doc = &document{
		Version: jsonStoreVersion,
		Items:   make(map[string]json.RawMessage),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *JSONStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'habit-tracker init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Version > jsonStoreVersion {
		return fmt.Errorf("storage file version (%d) is newer than supported version (%d) - please upgrade the application", doc.Version, jsonStoreVersion)
	}
	if doc.Items == nil {
		doc.Items = make(map[string]json.RawMessage)
	}

	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes to a temporary file and renames it over the store so readers
// never observe a half-written document
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetItem(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil, ErrNotLoaded
	}

	v, ok := s.doc.Items[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *JSONStore) SetItem(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return ErrNotLoaded
	}
	if !json.Valid(value) {
		return fmt.Errorf("value for %q is not a JSON document", key)
	}

	prev, had := s.doc.Items[key]
	v := make(json.RawMessage, len(value))
	copy(v, value)
	s.doc.Items[key] = v

	if err := s.save(); err != nil {
		if had {
			s.doc.Items[key] = prev
		} else {
			delete(s.doc.Items, key)
		}
		return err
	}
	return nil
}

func (s *JSONStore) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return ErrNotLoaded
	}

	prev, had := s.doc.Items[key]
	if !had {
		return nil
	}
	delete(s.doc.Items, key)

	if err := s.save(); err != nil {
		s.doc.Items[key] = prev
		return err
	}
	return nil
}

func (s *JSONStore) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil, ErrNotLoaded
	}

	keys := make([]string, 0, len(s.doc.Items))
	for k := range s.doc.Items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) FilePath() string {
	return s.path
}
