package snapshot

import (
	"context"
	"fmt"
	"sync"

	"github.com/wonny/almanac/internal/contracts"
)

// MemStore is an in-memory snapshot store. It backs tests and lets the
// engine run without a filesystem or database.
type MemStore struct {
	mu    sync.RWMutex
	snaps map[string]map[contracts.Generation]*contracts.Snapshot
}

// NewMemStore creates an empty in-memory store
func NewMemStore() *MemStore {
	return &MemStore{
		snaps: make(map[string]map[contracts.Generation]*contracts.Snapshot),
	}
}

// Load returns a copy of the stored snapshot
func (s *MemStore) Load(ctx context.Context, domain string, gen contracts.Generation) (*contracts.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snaps[domain][gen]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", domain, gen, contracts.ErrSnapshotNotFound)
	}
	return copySnapshot(snap, gen), nil
}

// Save stores a copy of the snapshot
func (s *MemStore) Save(ctx context.Context, snap *contracts.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snaps[snap.Domain] == nil {
		s.snaps[snap.Domain] = make(map[contracts.Generation]*contracts.Snapshot)
	}
	s.snaps[snap.Domain][snap.Generation] = copySnapshot(snap, snap.Generation)
	return nil
}

// Rotate promotes current to previous in one step
func (s *MemStore) Rotate(ctx context.Context, domain string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	gens := s.snaps[domain]
	curr, ok := gens[contracts.GenerationCurrent]
	if !ok {
		return nil
	}

	gens[contracts.GenerationPrevious] = copySnapshot(curr, contracts.GenerationPrevious)
	delete(gens, contracts.GenerationCurrent)
	return nil
}

// copySnapshot keeps callers from mutating stored state through shared
// slices
func copySnapshot(snap *contracts.Snapshot, gen contracts.Generation) *contracts.Snapshot {
	out := *snap
	out.Generation = gen
	out.Records = make([]contracts.TeamMetrics, len(snap.Records))
	copy(out.Records, snap.Records)
	return &out
}
