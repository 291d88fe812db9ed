package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/almanac/pkg/httputil"
	"github.com/wonny/almanac/pkg/logger"
)

func writeExtract(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoader_Records(t *testing.T) {
	dir := t.TempDir()
	writeExtract(t, dir, "team_record.csv",
		"team_id,league_id,team_name,w,l,rs,ra,streak\n"+
			"7,200,NYK Knights,60,40,520,480,4\n"+
			"9,200,BOS Harbormen,55,45,490,470,-2\n"+
			"31,201,AS Exhibition,0,0,0,0,0\n")

	loader := NewLoader(dir, 200, logger.NewNop())

	records, err := loader.Records(context.Background(), TableTeamRecords)
	require.NoError(t, err)

	// The league filter drops the exhibition squad
	require.Len(t, records, 2)
	assert.Equal(t, 7, records[0].EntityID)
	assert.Equal(t, "NYK Knights", records[0].Name)
	assert.Equal(t, "60", records[0].Fields["wins"])
	assert.Equal(t, "-2", records[1].Fields["streak"])
}

func TestLoader_Records_CandidateFallback(t *testing.T) {
	dir := t.TempDir()
	// Only the second-choice export name exists
	writeExtract(t, dir, "standings.csv", "team_id,team_name,w,l\n7,NYK Knights,60,40\n")

	loader := NewLoader(dir, 0, logger.NewNop())

	records, err := loader.Records(context.Background(), TableTeamRecords)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "NYK Knights", records[0].Name)
}

func TestLoader_Records_ZeroLeagueDisablesFilter(t *testing.T) {
	dir := t.TempDir()
	writeExtract(t, dir, "team_record.csv",
		"team_id,league_id,w,l\n7,200,60,40\n31,201,0,0\n")

	loader := NewLoader(dir, 0, logger.NewNop())

	records, err := loader.Records(context.Background(), TableTeamRecords)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestLoader_Records_MissingTable(t *testing.T) {
	loader := NewLoader(t.TempDir(), 200, logger.NewNop())

	_, err := loader.Records(context.Background(), TableTeamBatting)
	assert.Error(t, err)
}

func TestLoader_Records_UnknownTable(t *testing.T) {
	loader := NewLoader(t.TempDir(), 200, logger.NewNop())

	_, err := loader.Records(context.Background(), "no_such_table")
	assert.Error(t, err)
}

func TestLoader_Records_HTMLFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(standingsPage))
	}))
	defer srv.Close()

	log := logger.NewNop()
	fetcher := NewHTMLFetcher(httputil.New(log).DisableRetry(), log)

	// Empty data dir: the standings CSV is absent, the almanac page serves
	loader := NewLoader(t.TempDir(), 0, log).WithHTMLFallback(fetcher, srv.URL)

	records, err := loader.Records(context.Background(), TableTeamRecords)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 7, records[0].EntityID)
	assert.Equal(t, "NYK Knights", records[0].Name)
	assert.Equal(t, "60", records[0].Fields["wins"])

	// Other tables never fall back to the standings page
	_, err = loader.Records(context.Background(), TableTeamBatting)
	assert.Error(t, err)
}

func TestLoader_Records_PlayerExtract(t *testing.T) {
	dir := t.TempDir()
	writeExtract(t, dir, "player_values.csv",
		"id,name,tm,pos,bat_war,pit_war,loc. pop.,nat. pop.\n"+
			"101,Lefty Jones,BOS,SP,0.4,5.2,V.Pop,Known\n")

	loader := NewLoader(dir, 200, logger.NewNop())

	records, err := loader.Records(context.Background(), TablePlayerValues)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 101, records[0].EntityID)
	assert.Equal(t, "Lefty Jones", records[0].Name)
	assert.Equal(t, "BOS", records[0].Fields["team_abbr"])
	assert.Equal(t, "V.Pop", records[0].Fields["local_pop"])
}
