package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/almanac/internal/contracts"
	"github.com/wonny/almanac/internal/ranking"
)

func TestExport(t *testing.T) {
	dir := t.TempDir()
	result := &RunResult{
		Domain: "season_1981",
		Teams: []contracts.TeamMetrics{
			{EntityID: 1, Name: "NYK Knights", PowerTotal: 110},
			{EntityID: 2, Name: "BOS Harbormen", PowerTotal: 95},
		},
		Deltas: []contracts.DeltaRecord{
			{EntityID: 1, Status: contracts.DeltaBoth, Deltas: map[string]float64{"wins": 2}},
		},
	}

	require.NoError(t, Export(result, dir))

	data, err := os.ReadFile(filepath.Join(dir, PowerRankingsFile))
	require.NoError(t, err)

	var ranked []ranking.Ranked[contracts.TeamMetrics]
	require.NoError(t, json.Unmarshal(data, &ranked))
	require.Len(t, ranked, 2)
	assert.Equal(t, "NYK Knights", ranked[0].Record.Name)

	_, err = os.Stat(filepath.Join(dir, PythagFile))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, DeltasFile))
	assert.NoError(t, err)
}

func TestExport_FirstRunSkipsDeltas(t *testing.T) {
	dir := t.TempDir()
	result := &RunResult{
		Domain:   "season_1981",
		Teams:    []contracts.TeamMetrics{{EntityID: 1, Name: "NYK Knights"}},
		FirstRun: true,
	}

	require.NoError(t, Export(result, dir))

	_, err := os.Stat(filepath.Join(dir, DeltasFile))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, PowerRankingsFile))
	assert.NoError(t, err)
}
