package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/almanac/internal/contracts"
)

// PGStore is a Postgres-backed snapshot store. Rotate runs inside one
// transaction, so a failure leaves the generation pair untouched.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore creates a Postgres snapshot store
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// EnsureSchema creates the snapshots table when missing
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS snapshots (
			domain     TEXT        NOT NULL,
			generation TEXT        NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			payload    JSONB       NOT NULL,
			PRIMARY KEY (domain, generation)
		)
	`
	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure snapshots schema: %w", err)
	}
	return nil
}

// Load reads a generation for a domain
func (s *PGStore) Load(ctx context.Context, domain string, gen contracts.Generation) (*contracts.Snapshot, error) {
	query := `
		SELECT created_at, payload
		FROM snapshots
		WHERE domain = $1 AND generation = $2
	`

	var createdAt time.Time
	var payload []byte
	err := s.pool.QueryRow(ctx, query, domain, string(gen)).Scan(&createdAt, &payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s/%s: %w", domain, gen, contracts.ErrSnapshotNotFound)
		}
		return nil, fmt.Errorf("failed to load snapshot %s/%s: %w", domain, gen, err)
	}

	var records []contracts.TeamMetrics
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s/%s: %w", domain, gen, err)
	}

	return &contracts.Snapshot{
		Domain:     domain,
		Generation: gen,
		CreatedAt:  createdAt,
		Records:    records,
	}, nil
}

// Save upserts a snapshot for its domain and generation
func (s *PGStore) Save(ctx context.Context, snap *contracts.Snapshot) error {
	payload, err := json.Marshal(snap.Records)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	query := `
		INSERT INTO snapshots (domain, generation, created_at, payload)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (domain, generation)
		DO UPDATE SET created_at = EXCLUDED.created_at, payload = EXCLUDED.payload
	`
	if _, err := s.pool.Exec(ctx, query, snap.Domain, string(snap.Generation), snap.CreatedAt, payload); err != nil {
		return fmt.Errorf("failed to save snapshot %s/%s: %w", snap.Domain, snap.Generation, err)
	}
	return nil
}

// Rotate promotes current to previous transactionally
func (s *PGStore) Rotate(ctx context.Context, domain string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin rotate: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM snapshots WHERE domain = $1 AND generation = 'current')`,
		domain,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check current snapshot: %w", err)
	}
	if !exists {
		// First run: nothing to rotate
		return nil
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM snapshots WHERE domain = $1 AND generation = 'previous'`, domain); err != nil {
		return fmt.Errorf("failed to discard previous snapshot: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE snapshots SET generation = 'previous' WHERE domain = $1 AND generation = 'current'`, domain); err != nil {
		return fmt.Errorf("failed to promote current snapshot: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit rotate: %w", err)
	}
	return nil
}
