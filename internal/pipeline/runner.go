// Package pipeline drives one full reporting run for a domain:
// load extracts, derive metrics, rotate and commit the snapshot pair,
// and diff against the prior period.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wonny/almanac/internal/contracts"
	"github.com/wonny/almanac/internal/ingest"
	"github.com/wonny/almanac/internal/metrics"
	"github.com/wonny/almanac/internal/snapshot"
	"github.com/wonny/almanac/pkg/logger"
)

// Runner executes the weekly run. One run per domain at a time; runs
// are batch and synchronous from extract to delta.
type Runner struct {
	source contracts.TableSource
	calc   *metrics.Calculator
	engine *snapshot.Engine
	logger *logger.Logger
}

// NewRunner creates a pipeline runner
func NewRunner(source contracts.TableSource, calc *metrics.Calculator, engine *snapshot.Engine, log *logger.Logger) *Runner {
	return &Runner{source: source, calc: calc, engine: engine, logger: log}
}

// RunResult is one completed run for a domain
type RunResult struct {
	Domain   string
	Teams    []contracts.TeamMetrics
	Deltas   []contracts.DeltaRecord
	FirstRun bool
}

// Run performs rotate -> calculate -> commit -> diff. A first run has no
// prior generation; the diff failure is downgraded to "no deltas yet"
// instead of failing the run.
func (r *Runner) Run(ctx context.Context, domain string) (*RunResult, error) {
	records, err := r.source.Records(ctx, ingest.TableTeamRecords)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", domain, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("run %s: no team records in extract", domain)
	}

	r.mergeStatFields(ctx, records, ingest.TableTeamBatting, "bat_")
	r.mergeStatFields(ctx, records, ingest.TableTeamPitching, "pitch_")

	teams, err := r.calc.TeamSet(records)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", domain, err)
	}

	if err := r.engine.Rotate(ctx, domain); err != nil {
		return nil, err
	}
	if err := r.engine.Commit(ctx, domain, teams); err != nil {
		return nil, err
	}

	result := &RunResult{Domain: domain, Teams: teams}

	deltas, err := r.engine.Diff(ctx, domain)
	if err != nil {
		var insufficient *contracts.InsufficientHistoryError
		if errors.As(err, &insufficient) {
			r.logger.WithFields(map[string]interface{}{
				"domain": domain,
			}).Info("First run for domain, no deltas yet")
			result.FirstRun = true
			return result, nil
		}
		return nil, err
	}
	result.Deltas = deltas

	r.logger.WithFields(map[string]interface{}{
		"domain": domain,
		"teams":  len(teams),
		"deltas": len(deltas),
	}).Info("Run completed")

	return result, nil
}

// Players loads and derives the player value records used for per-team
// superlative selection
func (r *Runner) Players(ctx context.Context) ([]contracts.PlayerMetrics, error) {
	records, err := r.source.Records(ctx, ingest.TablePlayerValues)
	if err != nil {
		return nil, fmt.Errorf("players: %w", err)
	}
	return r.calc.PlayerSet(records)
}

// mergeStatFields folds prefixed fields from an auxiliary extract
// (batting/pitching totals) onto the base records by entity ID. The
// extract being absent is normal: older export sets do not carry it,
// and the dependent metrics stay zero.
func (r *Runner) mergeStatFields(ctx context.Context, base []contracts.EntityRecord, table, prefix string) {
	aux, err := r.source.Records(ctx, table)
	if err != nil {
		r.logger.WithFields(map[string]interface{}{
			"table": table,
		}).Debug("Auxiliary extract not available, skipped")
		return
	}

	byID := make(map[int]contracts.EntityRecord, len(aux))
	for _, rec := range aux {
		byID[rec.EntityID] = rec
	}

	for i := range base {
		auxRec, ok := byID[base[i].EntityID]
		if !ok {
			continue
		}
		for field, value := range auxRec.Fields {
			if strings.HasPrefix(field, prefix) {
				base[i].Fields[field] = value
			}
		}
	}
}
