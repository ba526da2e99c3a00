package crate

import (
	"sync"
)

// Store is a flat string key/value map.
type Store interface {
	// Get returns the value for key, and whether it was present.
	Get(key string) (string, bool, error)
	Put(key, value string) error
	Delete(key string) error
}

var _ Store = (*MemStore)(nil)

// MemStore is a Store that is never persisted.
type MemStore struct {
	mux    sync.RWMutex
	values map[string]string
}

func NewMemStore() *MemStore {
	return &MemStore{
		values: map[string]string{},
	}
}

func (s *MemStore) Get(key string) (string, bool, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	val, ok := s.values[key]
	return val, ok, nil
}

func (s *MemStore) Put(key, value string) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemStore) Delete(key string) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	delete(s.values, key)
	return nil
}
