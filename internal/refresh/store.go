package refresh

import (
	"sync"

	"github.com/cobaltax/fleetwatch/internal/probe"
)

// Store holds the latest probe result per host IP. Writes are tagged with
// the refresh cycle's generation; a write from an older generation than
// the one already stored is discarded, so an overlapping slow cycle can
// never clobber fresher data.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
}

type entry struct {
	result probe.Result
	gen    uint64
}

// NewStore creates an empty result store.
func NewStore() *Store {
	return &Store{entries: make(map[string]entry)}
}

// Put records a result for the given generation. Returns false when a
// result from a newer generation is already present and the write was
// discarded.
func (s *Store) Put(ip string, result probe.Result, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.entries[ip]; ok && prev.gen > gen {
		return false
	}
	s.entries[ip] = entry{result: result, gen: gen}
	return true
}

// Status returns the latest known result for a host. Implements
// topology.StatusSource.
func (s *Store) Status(ip string) (probe.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[ip]
	return e.result, ok
}

// Len returns the number of hosts with a recorded result.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
