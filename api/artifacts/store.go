package artifacts

import (
	"sync"
)

// Store loads the bundle once and hands out the cached copy afterwards. A failed
// load is not cached, so a later call retries.
type Store struct {
	paths  Paths
	mutex  sync.Mutex
	bundle *Bundle
}

// NewStore creates a store for the given artifact files. Nothing is read until Load.
func NewStore(paths Paths) *Store {
	return &Store{paths: paths}
}

// Load returns the cached bundle, reading the artifacts on first use.
func (s *Store) Load() (*Bundle, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.bundle != nil {
		return s.bundle, nil
	}
	bundle, err := Load(s.paths)
	if err != nil {
		return nil, err
	}
	s.bundle = bundle
	return bundle, nil
}
