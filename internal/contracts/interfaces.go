package contracts

import (
	"context"
)

// SnapshotStore owns the current/previous snapshot pair per domain.
// Rotate and Save must be atomic: a failure leaves the prior pair
// unchanged with no partial snapshot visible.
type SnapshotStore interface {
	// Load returns the snapshot for a generation, or an error wrapping
	// ErrSnapshotNotFound when the generation does not exist.
	Load(ctx context.Context, domain string, gen Generation) (*Snapshot, error)

	// Save writes a snapshot, replacing any existing one for the same
	// domain and generation.
	Save(ctx context.Context, snap *Snapshot) error

	// Rotate promotes current to previous, discarding any prior
	// previous. A domain with no current snapshot is a no-op (first run).
	Rotate(ctx context.Context, domain string) error
}

// TableSource supplies normalized entity records for one logical table
type TableSource interface {
	Records(ctx context.Context, table string) ([]EntityRecord, error)
}
