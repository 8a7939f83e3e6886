package memory

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store keeps records in process memory. Contents are lost on exit.
type Store struct {
	mu    sync.Mutex
	items map[string]string
}

func New() *Store {
	return &Store{items: make(map[string]string)}
}

// NewFromFiles seeds the store from "<base>/seed_<key>.json" for each key.
// Missing or blank seed files are skipped.
func NewFromFiles(base string, keys ...string) *Store {
	s := New()
	for _, key := range keys {
		if v := readSeed(filepath.Join(base, "seed_"+key+".json")); v != "" {
			s.items[key] = v
		}
	}
	return s
}

// Get implements storage.Store
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return v, ok, nil
}

// Set implements storage.Store
func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

// Delete implements storage.Store
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func readSeed(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}
