// Package metrics turns normalized entity records into derived-metrics
// records. Everything here is a pure function of its inputs: no state,
// no I/O, no randomness. League-relative stats are computed over the
// full entity set of a single period, never across periods.
package metrics

import (
	"fmt"

	"github.com/wonny/almanac/internal/contracts"
	"github.com/wonny/almanac/pkg/config"
)

// Calculator computes derived metrics under one set of league constants
type Calculator struct {
	cfg config.LeagueConfig
}

// New creates a calculator
func New(cfg config.LeagueConfig) *Calculator {
	return &Calculator{cfg: cfg}
}

// Team computes one team's derived metrics from its normalized record.
// League-relative fields (BABIP deltas) are left zero; TeamSet fills
// them because they need the whole period.
func (c *Calculator) Team(rec contracts.EntityRecord) (contracts.TeamMetrics, error) {
	m := contracts.TeamMetrics{
		EntityID: rec.EntityID,
		Name:     rec.Name,
	}

	wins, err := rec.Int("wins")
	if err != nil {
		return m, fmt.Errorf("entity %d: %w", rec.EntityID, err)
	}
	losses, err := rec.Int("losses")
	if err != nil {
		return m, fmt.Errorf("entity %d: %w", rec.EntityID, err)
	}
	runsFor, err := rec.Int("runs_scored")
	if err != nil {
		return m, fmt.Errorf("entity %d: %w", rec.EntityID, err)
	}
	runsAgainst, err := rec.Int("runs_allowed")
	if err != nil {
		return m, fmt.Errorf("entity %d: %w", rec.EntityID, err)
	}

	m.Wins = wins
	m.Losses = losses
	m.Games = wins + losses
	m.RunsScored = runsFor
	m.RunsAllowed = runsAgainst
	m.RunDiff = runsFor - runsAgainst

	if abbr, err := rec.String("abbr"); err == nil {
		m.Abbr = abbr
	}
	if div, err := rec.String("division"); err == nil {
		m.Division = div
	}

	// Zero games played is defined as win% 0, never NaN
	m.WinPct = WinPct(wins, losses)

	m.PythagWinPct = PythagWinPct(runsFor, runsAgainst, c.cfg.PythagExponent)
	m.PythagExpectedWins = m.PythagWinPct * float64(m.Games)
	m.PythagDiff = float64(wins) - m.PythagExpectedWins
	m.AngleCategory = ClassifyAngle(m.PythagDiff)

	// An unparseable or absent streak is {none, 0}, never an error
	m.Streak = ParseStreak(rec.Fields["streak"])

	// Last-10 columns are absent from older exports; the C term falls
	// back to zero in that case, same as the source data having no window
	if l10w, err := rec.Int("last10_w"); err == nil {
		m.Last10Wins = l10w
	}
	if l10l, err := rec.Int("last10_l"); err == nil {
		m.Last10Losses = l10l
	}

	m.PowerA, m.PowerB, m.PowerC, m.PowerD = c.powerTerms(m)
	m.PowerTotal = m.PowerA + m.PowerB + m.PowerC + m.PowerD
	m.SimplePower = SimplePower(m.WinPct, m.RunDiff)

	m.BabipBat = babipFromRecord(rec, "bat")
	m.BabipPitch = babipFromRecord(rec, "pitch")

	return m, nil
}

// TeamSet computes derived metrics for every team in one period,
// including the league-relative fields
func (c *Calculator) TeamSet(recs []contracts.EntityRecord) ([]contracts.TeamMetrics, error) {
	out := make([]contracts.TeamMetrics, 0, len(recs))
	for _, rec := range recs {
		m, err := c.Team(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	c.applyLeagueBabip(out)

	return out, nil
}

// WinPct is wins / (wins + losses), defined as 0 when no games have
// been played
func WinPct(wins, losses int) float64 {
	games := wins + losses
	if games == 0 {
		return 0
	}
	return float64(wins) / float64(games)
}

// SimplePower is the legacy one-line power score: mostly win%, with a
// run differential kicker
func SimplePower(winPct float64, runDiff int) float64 {
	return winPct*100 + float64(runDiff)/5.0
}
