package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/almanac/internal/contracts"
)

func TestPowerTerms_StreakD(t *testing.T) {
	calc := New(testLeague())

	tests := []struct {
		name   string
		streak contracts.Streak
		wantD  float64
	}{
		{"no streak", contracts.Streak{Direction: contracts.StreakNone}, 0},
		{"W1", contracts.Streak{Direction: contracts.StreakWin, Length: 1}, 0},
		{"W3", contracts.Streak{Direction: contracts.StreakWin, Length: 3}, 1},
		// (4-1)/2 = 1.5 rounds half-to-even to 2
		{"W4", contracts.Streak{Direction: contracts.StreakWin, Length: 4}, 2},
		{"W5", contracts.Streak{Direction: contracts.StreakWin, Length: 5}, 2},
		{"L3", contracts.Streak{Direction: contracts.StreakLoss, Length: 3}, -1},
		{"L4", contracts.Streak{Direction: contracts.StreakLoss, Length: 4}, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := contracts.TeamMetrics{Streak: tt.streak, WinPct: 0.5}
			_, _, _, d := calc.powerTerms(m)
			assert.InDelta(t, tt.wantD, d, 1e-9)
		})
	}
}

func TestPowerTerms_BTerm(t *testing.T) {
	calc := New(testLeague())

	tests := []struct {
		name   string
		winPct float64
		wantB  float64
	}{
		{"dead even", 0.500, 0},
		{"plus 100 points", 0.600, 18},
		{"minus 100 points", 0.400, -18},
		{"strong season", 0.650, 27},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := contracts.TeamMetrics{WinPct: tt.winPct}
			_, b, _, _ := calc.powerTerms(m)
			assert.InDelta(t, tt.wantB, b, 1e-9)
		})
	}
}

func TestPowerTerms_CTerm(t *testing.T) {
	calc := New(testLeague())

	m := contracts.TeamMetrics{WinPct: 0.5, Last10Wins: 8, Last10Losses: 2}
	_, _, c, _ := calc.powerTerms(m)
	assert.InDelta(t, 6, c, 1e-9)

	// No recent window columns in the extract: C falls back to zero
	m = contracts.TeamMetrics{WinPct: 0.5}
	_, _, c, _ = calc.powerTerms(m)
	assert.Zero(t, c)
}
