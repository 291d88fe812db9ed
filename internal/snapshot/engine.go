// Package snapshot owns the current/previous generation pair per domain
// and the period deltas between them. State transitions are explicit and
// atomic; there is no "current file on disk" anywhere else.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/wonny/almanac/internal/contracts"
	"github.com/wonny/almanac/pkg/logger"
)

// Engine performs rotate/commit/diff cycles over a snapshot store.
// One run per domain at a time; callers hold the run lock.
type Engine struct {
	store  contracts.SnapshotStore
	logger *logger.Logger
}

// NewEngine creates an engine over a store
func NewEngine(store contracts.SnapshotStore, log *logger.Logger) *Engine {
	return &Engine{store: store, logger: log}
}

// Rotate promotes current to previous, discarding any prior previous.
// A domain with no current snapshot is a no-op, not an error: that is
// the first-run case.
func (e *Engine) Rotate(ctx context.Context, domain string) error {
	if err := e.store.Rotate(ctx, domain); err != nil {
		return fmt.Errorf("rotate %s: %w", domain, err)
	}

	e.logger.WithFields(map[string]interface{}{
		"domain": domain,
	}).Info("Rotated snapshot generations")

	return nil
}

// Commit writes records as the new current snapshot. The write is
// atomic: a failed commit leaves the prior pair unchanged.
func (e *Engine) Commit(ctx context.Context, domain string, records []contracts.TeamMetrics) error {
	if err := validate(records); err != nil {
		return fmt.Errorf("commit %s: %w", domain, err)
	}

	snap := &contracts.Snapshot{
		Domain:     domain,
		Generation: contracts.GenerationCurrent,
		CreatedAt:  time.Now().UTC(),
		Records:    records,
	}

	if err := e.store.Save(ctx, snap); err != nil {
		return fmt.Errorf("commit %s: %w", domain, err)
	}

	e.logger.WithFields(map[string]interface{}{
		"domain":  domain,
		"records": len(records),
	}).Info("Committed current snapshot")

	return nil
}

// Diff compares current against previous. Entities present in both get
// per-field signed differences; entities only in current are flagged
// new, entities only in previous are flagged departed (and carry no
// deltas). Fails with InsufficientHistoryError until both generations
// exist.
func (e *Engine) Diff(ctx context.Context, domain string) ([]contracts.DeltaRecord, error) {
	curr, err := e.load(ctx, domain, contracts.GenerationCurrent)
	if err != nil {
		return nil, err
	}
	prev, err := e.load(ctx, domain, contracts.GenerationPrevious)
	if err != nil {
		return nil, err
	}

	currByID := indexByID(curr.Records)
	prevByID := indexByID(prev.Records)

	ids := make([]int, 0, len(currByID)+len(prevByID))
	for id := range currByID {
		ids = append(ids, id)
	}
	for id := range prevByID {
		if _, inCurr := currByID[id]; !inCurr {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	deltas := make([]contracts.DeltaRecord, 0, len(ids))
	for _, id := range ids {
		c, inCurr := currByID[id]
		p, inPrev := prevByID[id]

		switch {
		case inCurr && inPrev:
			deltas = append(deltas, contracts.DeltaRecord{
				EntityID: id,
				Name:     c.Name,
				Status:   contracts.DeltaBoth,
				Deltas:   diffFields(c, p),
				Current:  c,
				Previous: p,
			})
		case inCurr:
			deltas = append(deltas, contracts.DeltaRecord{
				EntityID: id,
				Name:     c.Name,
				Status:   contracts.DeltaNew,
				Current:  c,
			})
		default:
			deltas = append(deltas, contracts.DeltaRecord{
				EntityID: id,
				Name:     p.Name,
				Status:   contracts.DeltaDeparted,
				Previous: p,
			})
		}
	}

	return deltas, nil
}

// load translates a missing generation into InsufficientHistoryError
func (e *Engine) load(ctx context.Context, domain string, gen contracts.Generation) (*contracts.Snapshot, error) {
	snap, err := e.store.Load(ctx, domain, gen)
	if err != nil {
		if errors.Is(err, contracts.ErrSnapshotNotFound) {
			return nil, &contracts.InsufficientHistoryError{Domain: domain, Missing: gen}
		}
		return nil, fmt.Errorf("load %s/%s: %w", domain, gen, err)
	}
	return snap, nil
}

// validate rejects records without a stable entity ID and duplicate IDs
func validate(records []contracts.TeamMetrics) error {
	seen := make(map[int]bool, len(records))
	for i, rec := range records {
		if rec.EntityID == 0 {
			return &contracts.ValidationError{
				Reason: fmt.Sprintf("record %d has no entity ID", i),
			}
		}
		if seen[rec.EntityID] {
			return &contracts.ValidationError{
				Reason: fmt.Sprintf("duplicate entity ID %d", rec.EntityID),
			}
		}
		seen[rec.EntityID] = true
	}
	return nil
}

func indexByID(records []contracts.TeamMetrics) map[int]*contracts.TeamMetrics {
	byID := make(map[int]*contracts.TeamMetrics, len(records))
	for i := range records {
		byID[records[i].EntityID] = &records[i]
	}
	return byID
}

// diffFields computes current minus previous over every numeric derived
// field
func diffFields(curr, prev *contracts.TeamMetrics) map[string]float64 {
	cf := curr.NumericFields()
	pf := prev.NumericFields()

	deltas := make(map[string]float64, len(cf))
	for field, cv := range cf {
		deltas[field] = cv - pf[field]
	}
	return deltas
}
