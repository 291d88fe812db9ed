package metrics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/almanac/internal/contracts"
	"github.com/wonny/almanac/pkg/config"
)

func testLeague() config.LeagueConfig {
	return config.LeagueConfig{
		LeagueID:       200,
		PythagExponent: 2.0,
		PowerBaseline:  90,
		SeasonGames:    162,
		RecentWindow:   10,
		BabipFlag:      0.015,
	}
}

func teamRecord(id int, fields map[string]string) contracts.EntityRecord {
	return contracts.EntityRecord{EntityID: id, Name: "Team", Fields: fields}
}

func TestCalculator_Team(t *testing.T) {
	calc := New(testLeague())

	rec := teamRecord(7, map[string]string{
		"wins":         "60",
		"losses":       "40",
		"runs_scored":  "520",
		"runs_allowed": "480",
		"streak":       "4",
		"last10_w":     "7",
		"last10_l":     "3",
		"abbr":         "NYK",
		"division":     "East",
	})

	m, err := calc.Team(rec)
	require.NoError(t, err)

	assert.Equal(t, 7, m.EntityID)
	assert.Equal(t, "NYK", m.Abbr)
	assert.Equal(t, "East", m.Division)
	assert.Equal(t, 100, m.Games)
	assert.Equal(t, 40, m.RunDiff)
	assert.InDelta(t, 0.600, m.WinPct, 1e-9)

	// 520^2 / (520^2 + 480^2)
	assert.InDelta(t, 0.539936, m.PythagWinPct, 1e-5)
	assert.InDelta(t, 53.9936, m.PythagExpectedWins, 1e-3)
	assert.InDelta(t, 6.0064, m.PythagDiff, 1e-3)
	assert.Equal(t, AngleBigOver, m.AngleCategory)

	assert.Equal(t, contracts.StreakWin, m.Streak.Direction)
	assert.Equal(t, 4, m.Streak.Length)

	// A=90, B=round((.600-.500)*162*10/9)=18, C=7-3=4, D=round((4-1)/2)=2
	assert.InDelta(t, 90, m.PowerA, 1e-9)
	assert.InDelta(t, 18, m.PowerB, 1e-9)
	assert.InDelta(t, 4, m.PowerC, 1e-9)
	assert.InDelta(t, 2, m.PowerD, 1e-9)
	assert.InDelta(t, 114, m.PowerTotal, 1e-9)

	// .600*100 + 40/5
	assert.InDelta(t, 68, m.SimplePower, 1e-9)
}

func TestCalculator_Team_MissingRequiredField(t *testing.T) {
	calc := New(testLeague())

	rec := teamRecord(3, map[string]string{
		"wins":        "10",
		"losses":      "5",
		"runs_scored": "80",
		// runs_allowed absent
	})

	_, err := calc.Team(rec)
	require.Error(t, err)

	var missing *contracts.MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "runs_allowed", missing.Field)
}

func TestCalculator_Team_InvalidValue(t *testing.T) {
	calc := New(testLeague())

	rec := teamRecord(3, map[string]string{
		"wins":         "ten",
		"losses":       "5",
		"runs_scored":  "80",
		"runs_allowed": "70",
	})

	_, err := calc.Team(rec)
	require.Error(t, err)

	var invalid *contracts.InvalidValueError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "wins", invalid.Field)
}

func TestCalculator_Team_ZeroGames(t *testing.T) {
	calc := New(testLeague())

	rec := teamRecord(1, map[string]string{
		"wins":         "0",
		"losses":       "0",
		"runs_scored":  "0",
		"runs_allowed": "0",
	})

	m, err := calc.Team(rec)
	require.NoError(t, err)

	assert.Zero(t, m.WinPct)
	assert.Zero(t, m.PythagWinPct)
	assert.Zero(t, m.PythagDiff)
	assert.Equal(t, AngleNeutral, m.AngleCategory)
	assert.Equal(t, contracts.StreakNone, m.Streak.Direction)
}

func TestCalculator_UnbeatenAndWinlessPair(t *testing.T) {
	calc := New(testLeague())

	a, err := calc.Team(teamRecord(1, map[string]string{
		"wins": "10", "losses": "0", "runs_scored": "50", "runs_allowed": "20", "streak": "4",
	}))
	require.NoError(t, err)
	b, err := calc.Team(teamRecord(2, map[string]string{
		"wins": "0", "losses": "10", "runs_scored": "20", "runs_allowed": "50", "streak": "-4",
	}))
	require.NoError(t, err)

	assert.InDelta(t, 1.0, a.WinPct, 1e-9)
	assert.InDelta(t, 0.0, b.WinPct, 1e-9)
	assert.InDelta(t, 2, a.PowerD, 1e-9)
	assert.InDelta(t, -2, b.PowerD, 1e-9)

	assert.Greater(t, a.PythagDiff, 0.0)
	assert.Less(t, b.PythagDiff, 0.0)
}

func TestWinPct(t *testing.T) {
	tests := []struct {
		name   string
		wins   int
		losses int
		want   float64
	}{
		{"even", 50, 50, 0.5},
		{"winning", 60, 40, 0.6},
		{"all losses", 0, 10, 0.0},
		{"zero games", 0, 0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, WinPct(tt.wins, tt.losses), 1e-9)
		})
	}
}

func TestSimplePower(t *testing.T) {
	assert.InDelta(t, 68.0, SimplePower(0.6, 40), 1e-9)
	assert.InDelta(t, 40.0, SimplePower(0.45, -25), 1e-9)
	assert.Zero(t, SimplePower(0, 0))
}
