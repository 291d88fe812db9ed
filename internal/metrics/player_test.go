package metrics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/almanac/internal/contracts"
)

func TestPopRank(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"Unkn.", 0},
		{"Insig.", 1},
		{"Fair", 2},
		{"Known", 3},
		{"Pop.", 4},
		{"V.Pop", 5},
		{"Ex.Pop.", 6},
		{" Known ", 3},
		{"something else", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, PopRank(tt.label))
		})
	}
}

func TestCalculator_Player(t *testing.T) {
	calc := New(testLeague())

	rec := contracts.EntityRecord{
		EntityID: 42,
		Name:     "Lefty Jones",
		Fields: map[string]string{
			"team_abbr":    "BOS",
			"position":     "SP",
			"bat_war":      "0.4",
			"pit_war":      "5.2",
			"local_pop":    "V.Pop",
			"national_pop": "Known",
		},
	}

	p, err := calc.Player(rec)
	require.NoError(t, err)

	assert.Equal(t, 42, p.EntityID)
	assert.Equal(t, "BOS", p.TeamAbbr)
	assert.Equal(t, "SP", p.Position)
	assert.InDelta(t, 5.6, p.TotalWAR, 1e-9)
	assert.Equal(t, 5, p.LocalPop)
	assert.Equal(t, 3, p.NationalPop)
}

func TestCalculator_Player_RequiresTeam(t *testing.T) {
	calc := New(testLeague())

	_, err := calc.Player(contracts.EntityRecord{
		EntityID: 1,
		Fields:   map[string]string{"bat_war": "2.0"},
	})
	require.Error(t, err)

	var missing *contracts.MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "team_abbr", missing.Field)
}

func TestCalculator_Player_OneWayDefaults(t *testing.T) {
	calc := New(testLeague())

	p, err := calc.Player(contracts.EntityRecord{
		EntityID: 2,
		Name:     "Slugger Smith",
		Fields: map[string]string{
			"team_abbr": "CHI",
			"bat_war":   "3.1",
		},
	})
	require.NoError(t, err)

	assert.Zero(t, p.PitchWAR)
	assert.InDelta(t, 3.1, p.TotalWAR, 1e-9)
	assert.Zero(t, p.LocalPop)
}
