package metrics

import (
	"math"

	"github.com/wonny/almanac/internal/contracts"
)

// powerTerms computes the four terms of the forum power score:
//
//	A: fixed baseline
//	B: (win% - .500) rescaled onto a full season, B = round((pct-0.5) * games * 10/9)
//	C: net wins minus losses over the recent window
//	D: sign(streak) * round((len-1) / 2), zero without a streak
//
// All rounding is round-half-to-even so the score reproduces exactly
// across implementations.
func (c *Calculator) powerTerms(m contracts.TeamMetrics) (a, b, cc, d float64) {
	a = c.cfg.PowerBaseline

	b = math.RoundToEven((m.WinPct - 0.5) * float64(c.cfg.SeasonGames) * 10.0 / 9.0)

	cc = float64(m.Last10Wins - m.Last10Losses)

	if m.Streak.Length > 0 {
		d = float64(m.Streak.Sign()) * math.RoundToEven(float64(m.Streak.Length-1)/2.0)
	}

	return a, b, cc, d
}
