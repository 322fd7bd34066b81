package simulation

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/RuinSim_Go/internal/domain"
	"github.com/osse101/RuinSim_Go/internal/metrics"
)

// cachedSweepEntry wraps a sweep with version metadata for cache invalidation
type cachedSweepEntry struct {
	Version  string              `json:"version"`
	Sweep    *domain.SweepResult `json:"sweep"`
	CachedAt time.Time           `json:"cached_at"`
}

// ResultStore keeps recent sweeps in memory for the distribution and report views.
// Entries expire after the TTL; nothing outlives the process.
type ResultStore struct {
	lru *expirable.LRU[string, *cachedSweepEntry]
}

// NewResultStore creates a store holding at most size sweeps for ttl each.
func NewResultStore(size int, ttl time.Duration) *ResultStore {
	if size < 1 {
		size = DefaultStoreSize
	}
	return &ResultStore{
		lru: expirable.NewLRU[string, *cachedSweepEntry](size, func(string, *cachedSweepEntry) {
			metrics.CachedSweeps.Dec()
		}, ttl),
	}
}

// Get retrieves a sweep by id.
// Entries written under another schema version are dropped.
func (s *ResultStore) Get(id string) (*domain.SweepResult, bool) {
	entry, found := s.lru.Get(id)
	if !found {
		return nil, false
	}

	if entry.Version != StoreSchemaVersion {
		s.lru.Remove(id)
		return nil, false
	}

	return entry.Sweep, true
}

// Add stores a sweep under its id
func (s *ResultStore) Add(sweep *domain.SweepResult) {
	entry := &cachedSweepEntry{
		Version:  StoreSchemaVersion,
		Sweep:    sweep,
		CachedAt: time.Now(),
	}
	if !s.lru.Contains(sweep.ID) {
		metrics.CachedSweeps.Inc()
	}
	s.lru.Add(sweep.ID, entry)
}

// Len returns the number of cached sweeps, including expired ones not yet evicted
func (s *ResultStore) Len() int {
	return s.lru.Len()
}

// Clear removes all entries from the store.
func (s *ResultStore) Clear() {
	s.lru.Purge()
}
