package pipeline

import (
	"strings"

	"github.com/wonny/almanac/internal/contracts"
	"github.com/wonny/almanac/internal/ranking"
)

// The report selections below are the fixed set of orderings the
// reporting workflow consumes. Each declares its sort keys and
// tie-break once; the final tie-break is always a stable identifier, so
// every ordering is total and reproducible.

// byTeamID is the terminal tie-break for team orderings
func byTeamID(a, b contracts.TeamMetrics) int {
	return a.EntityID - b.EntityID
}

// PowerRankings orders teams by the forum power score, then win%, then
// run differential
func PowerRankings(teams []contracts.TeamMetrics) []ranking.Ranked[contracts.TeamMetrics] {
	keys := []ranking.SortKey[contracts.TeamMetrics]{
		ranking.Desc("power_total", func(m contracts.TeamMetrics) float64 { return m.PowerTotal }),
		ranking.Desc("win_pct", func(m contracts.TeamMetrics) float64 { return m.WinPct }),
		ranking.Desc("run_diff", func(m contracts.TeamMetrics) float64 { return float64(m.RunDiff) }),
	}
	return ranking.Rank(teams, keys, byTeamID)
}

// PythagOverUnder orders teams by how far actual wins run ahead of the
// runs-based expectation
func PythagOverUnder(teams []contracts.TeamMetrics) []ranking.Ranked[contracts.TeamMetrics] {
	keys := []ranking.SortKey[contracts.TeamMetrics]{
		ranking.Desc("pythag_diff", func(m contracts.TeamMetrics) float64 { return m.PythagDiff }),
		ranking.Desc("win_pct", func(m contracts.TeamMetrics) float64 { return m.WinPct }),
	}
	return ranking.Rank(teams, keys, byTeamID)
}

// WeeklyMovers orders period deltas by wins gained, then run
// differential movement, then current win%. Departed entities have no
// delta defined and are excluded up front.
func WeeklyMovers(deltas []contracts.DeltaRecord) []ranking.Ranked[contracts.DeltaRecord] {
	comparable := make([]contracts.DeltaRecord, 0, len(deltas))
	for _, d := range deltas {
		if d.Status == contracts.DeltaDeparted {
			continue
		}
		comparable = append(comparable, d)
	}

	keys := []ranking.SortKey[contracts.DeltaRecord]{
		ranking.Desc("delta_wins", func(d contracts.DeltaRecord) float64 { return d.Delta("wins") }),
		ranking.Desc("delta_run_diff", func(d contracts.DeltaRecord) float64 { return d.Delta("run_diff") }),
		ranking.Desc("win_pct", func(d contracts.DeltaRecord) float64 {
			if d.Current == nil {
				return 0
			}
			return d.Current.WinPct
		}),
	}
	return ranking.Rank(comparable, keys, func(a, b contracts.DeltaRecord) int {
		return a.EntityID - b.EntityID
	})
}

// StreakLeaders orders teams on the requested streak side by length
func StreakLeaders(teams []contracts.TeamMetrics, direction contracts.StreakDirection) []ranking.Ranked[contracts.TeamMetrics] {
	onStreak := make([]contracts.TeamMetrics, 0, len(teams))
	for _, m := range teams {
		if m.Streak.Direction == direction {
			onStreak = append(onStreak, m)
		}
	}

	keys := []ranking.SortKey[contracts.TeamMetrics]{
		ranking.Desc("streak_len", func(m contracts.TeamMetrics) float64 { return float64(m.Streak.Length) }),
		ranking.Desc("win_pct", func(m contracts.TeamMetrics) float64 { return m.WinPct }),
	}
	return ranking.Rank(onStreak, keys, byTeamID)
}

// FaceOfFranchise picks one player per team: local popularity first,
// then national popularity, then season value, then name. Players
// without a team land in the ungrouped bucket rather than vanishing.
func FaceOfFranchise(players []contracts.PlayerMetrics) map[string]contracts.PlayerMetrics {
	keys := []ranking.SortKey[contracts.PlayerMetrics]{
		ranking.Desc("local_pop", func(p contracts.PlayerMetrics) float64 { return float64(p.LocalPop) }),
		ranking.Desc("national_pop", func(p contracts.PlayerMetrics) float64 { return float64(p.NationalPop) }),
		ranking.Desc("total_war", func(p contracts.PlayerMetrics) float64 { return p.TotalWAR }),
	}
	return ranking.SelectTopPerGroup(players,
		func(p contracts.PlayerMetrics) string { return p.TeamAbbr },
		keys,
		func(a, b contracts.PlayerMetrics) int {
			if c := strings.Compare(a.Name, b.Name); c != 0 {
				return c
			}
			return a.EntityID - b.EntityID
		},
	)
}
