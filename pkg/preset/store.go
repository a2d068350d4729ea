package preset

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// ErrNotFound is returned when a named preset does not exist.
var ErrNotFound = errors.New("preset: not found")

// Store persists presets by name. Implementations are externally owned; the
// generation pipeline never constructs one itself.
type Store interface {
	Save(ctx context.Context, p Preset) error
	Load(ctx context.Context, name string) (Preset, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
}

// MemoryStore is an in-process Store, mainly for tests and ephemeral runs.
type MemoryStore struct {
	mu      sync.RWMutex
	presets map[string]Preset
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{presets: make(map[string]Preset)}
}

// Save implements Store. Saving an existing name overwrites it.
func (s *MemoryStore) Save(_ context.Context, p Preset) error {
	if p.Name == "" {
		return errors.New("preset: save: missing name")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presets[p.Name] = p
	return nil
}

// Load implements Store.
func (s *MemoryStore) Load(_ context.Context, name string) (Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.presets[name]
	if !ok {
		return Preset{}, ErrNotFound
	}
	return p, nil
}

// List implements Store, returning names in sorted order.
func (s *MemoryStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.presets))
	for name := range s.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.presets[name]; !ok {
		return ErrNotFound
	}
	delete(s.presets, name)
	return nil
}
