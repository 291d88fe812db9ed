package ranking

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type team struct {
	ID    int
	Score float64
	Wins  float64
}

func byID(a, b team) int { return a.ID - b.ID }

func TestRank_OrdersAndNumbersSequentially(t *testing.T) {
	teams := []team{
		{ID: 1, Score: 80},
		{ID: 2, Score: 95},
		{ID: 3, Score: 95}, // tied with 2, ID breaks the tie
		{ID: 4, Score: 60},
	}
	keys := []SortKey[team]{
		Desc("score", func(m team) float64 { return m.Score }),
	}

	ranked := Rank(teams, keys, byID)
	require.Len(t, ranked, 4)

	// Ranks are exactly 1..N, consecutive even across ties
	for i, r := range ranked {
		assert.Equal(t, i+1, r.Rank)
	}

	assert.Equal(t, 2, ranked[0].Record.ID)
	assert.Equal(t, 3, ranked[1].Record.ID)
	assert.Equal(t, 1, ranked[2].Record.ID)
	assert.Equal(t, 4, ranked[3].Record.ID)
}

func TestRank_SecondaryKeyBreaksTies(t *testing.T) {
	teams := []team{
		{ID: 1, Score: 90, Wins: 50},
		{ID: 2, Score: 90, Wins: 60},
	}
	keys := []SortKey[team]{
		Desc("score", func(m team) float64 { return m.Score }),
		Desc("wins", func(m team) float64 { return m.Wins }),
	}

	ranked := Rank(teams, keys, byID)
	assert.Equal(t, 2, ranked[0].Record.ID)
	assert.Equal(t, 1, ranked[1].Record.ID)
}

func TestRank_Ascending(t *testing.T) {
	teams := []team{
		{ID: 1, Score: 30},
		{ID: 2, Score: 10},
		{ID: 3, Score: 20},
	}
	keys := []SortKey[team]{
		Asc("score", func(m team) float64 { return m.Score }),
	}

	ranked := Rank(teams, keys, byID)
	assert.Equal(t, 2, ranked[0].Record.ID)
	assert.Equal(t, 3, ranked[1].Record.ID)
	assert.Equal(t, 1, ranked[2].Record.ID)
}

func TestRank_DeterministicAcrossInputOrder(t *testing.T) {
	teams := []team{
		{ID: 5, Score: 70}, {ID: 3, Score: 70}, {ID: 9, Score: 70},
		{ID: 1, Score: 85}, {ID: 7, Score: 70},
	}
	keys := []SortKey[team]{
		Desc("score", func(m team) float64 { return m.Score }),
	}

	want := Rank(teams, keys, byID)

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		shuffled := make([]team, len(teams))
		copy(shuffled, teams)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		assert.Equal(t, want, Rank(shuffled, keys, byID))
	}
}

func TestRank_EmptyInput(t *testing.T) {
	ranked := Rank(nil, []SortKey[team]{Desc("score", func(m team) float64 { return m.Score })}, byID)
	assert.Empty(t, ranked)
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	teams := []team{{ID: 1, Score: 10}, {ID: 2, Score: 99}}
	Rank(teams, []SortKey[team]{Desc("score", func(m team) float64 { return m.Score })}, byID)
	assert.Equal(t, 1, teams[0].ID)
	assert.Equal(t, 2, teams[1].ID)
}
