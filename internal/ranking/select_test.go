package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type player struct {
	ID   int
	Name string
	Team string
	Pop  float64
	WAR  float64
}

func playerKeys() []SortKey[player] {
	return []SortKey[player]{
		Desc("pop", func(p player) float64 { return p.Pop }),
		Desc("war", func(p player) float64 { return p.WAR }),
	}
}

func byName(a, b player) int {
	if a.Name < b.Name {
		return -1
	}
	if a.Name > b.Name {
		return 1
	}
	return a.ID - b.ID
}

func TestSelectTopPerGroup(t *testing.T) {
	players := []player{
		{ID: 1, Name: "Adams", Team: "NYK", Pop: 4, WAR: 2.0},
		{ID: 2, Name: "Baker", Team: "NYK", Pop: 5, WAR: 1.0},
		{ID: 3, Name: "Cole", Team: "BOS", Pop: 3, WAR: 6.0},
		{ID: 4, Name: "Diaz", Team: "BOS", Pop: 3, WAR: 4.0},
	}

	winners := SelectTopPerGroup(players, func(p player) string { return p.Team }, playerKeys(), byName)
	require.Len(t, winners, 2)

	assert.Equal(t, 2, winners["NYK"].ID) // higher pop wins
	assert.Equal(t, 3, winners["BOS"].ID) // pop tied, higher WAR wins
}

func TestSelectTopPerGroup_TieBreakIsTerminal(t *testing.T) {
	players := []player{
		{ID: 2, Name: "Zimmer", Team: "CHI", Pop: 4, WAR: 3.0},
		{ID: 1, Name: "Able", Team: "CHI", Pop: 4, WAR: 3.0},
	}

	winners := SelectTopPerGroup(players, func(p player) string { return p.Team }, playerKeys(), byName)
	assert.Equal(t, "Able", winners["CHI"].Name)
}

func TestSelectTopPerGroup_UngroupedBucket(t *testing.T) {
	players := []player{
		{ID: 1, Name: "Adams", Team: "NYK", Pop: 4},
		{ID: 2, Name: "Free", Team: "", Pop: 2},
		{ID: 3, Name: "Agent", Team: "", Pop: 6},
	}

	winners := SelectTopPerGroup(players, func(p player) string { return p.Team }, playerKeys(), byName)
	require.Len(t, winners, 2)
	assert.Equal(t, 3, winners[UngroupedBucket].ID)
}

func TestSelectTopPerGroup_Empty(t *testing.T) {
	winners := SelectTopPerGroup(nil, func(p player) string { return p.Team }, playerKeys(), byName)
	assert.Empty(t, winners)
}

func TestGroupAll(t *testing.T) {
	players := []player{
		{ID: 1, Team: "NYK"},
		{ID: 2, Team: "BOS"},
		{ID: 3, Team: "NYK"},
		{ID: 4, Team: ""},
	}

	groups := GroupAll(players, func(p player) string { return p.Team })
	require.Len(t, groups, 3)
	assert.Len(t, groups["NYK"], 2)
	assert.Equal(t, 1, groups["NYK"][0].ID) // input order preserved
	assert.Len(t, groups[UngroupedBucket], 1)
}
