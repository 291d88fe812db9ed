// Package ingest locates and loads the raw extract tables a run
// consumes. Export sets vary between re-exports, so each logical table
// has an ordered list of candidate file names and a declared alias map;
// the first candidate that exists wins.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/wonny/almanac/internal/contracts"
	"github.com/wonny/almanac/internal/normalize"
	"github.com/wonny/almanac/pkg/logger"
)

// Logical table names
const (
	TableTeamRecords   = "team_records"
	TableTeamBatting   = "team_batting"
	TableTeamPitching  = "team_pitching"
	TablePlayerValues  = "player_values"
	TablePlayerProfile = "player_profile"
)

// candidateFiles lists acceptable export file names per logical table,
// in priority order
var candidateFiles = map[string][]string{
	TableTeamRecords:   {"team_record.csv", "team_records.csv", "standings.csv", "standings_snapshot.csv"},
	TableTeamBatting:   {"team_batting.csv", "teams_batting.csv", "batting_team_totals.csv"},
	TableTeamPitching:  {"team_pitching.csv", "teams_pitching.csv", "pitching_team_totals.csv"},
	TablePlayerValues:  {"player_values.csv", "fact_player_value.csv", "player_war.csv"},
	TablePlayerProfile: {"player_profile.csv", "dim_player_profile.csv", "players.csv"},
}

// TeamAliases is the declared mapping of logical team field to
// acceptable raw column names
func TeamAliases() normalize.AliasMap {
	return normalize.AliasMap{
		"team_id":      {"team_id", "tid", "teamid"},
		"league_id":    {"league_id", "leagueid", "league", "lg_id"},
		"name":         {"team_display", "team_name", "name"},
		"abbr":         {"abbr", "team_abbr"},
		"nickname":     {"nickname", "team_nickname", "nick"},
		"city":         {"city", "team_city"},
		"division":     {"division_id", "division"},
		"wins":         {"w", "wins"},
		"losses":       {"l", "losses"},
		"runs_scored":  {"rs", "runs_scored", "runs for", "runsfor", "r"},
		"runs_allowed": {"ra", "runs_allowed", "runs against", "runsagainst"},
		"streak":       {"streak", "strk"},
		"last10_w":     {"last10_w", "l10_w", "last10w"},
		"last10_l":     {"last10_l", "l10_l", "last10l"},
		"bat_h":        {"bat_h", "h"},
		"bat_hr":       {"bat_hr", "hr"},
		"bat_ab":       {"bat_ab", "ab"},
		"bat_so":       {"bat_so", "so", "k"},
		"bat_sf":       {"bat_sf", "sf"},
		"pitch_h":      {"pitch_h", "ha", "h_allowed"},
		"pitch_hr":     {"pitch_hr", "hra", "hr_allowed"},
		"pitch_ab":     {"pitch_ab", "ab_against"},
		"pitch_so":     {"pitch_so", "so_pitched"},
		"pitch_sf":     {"pitch_sf", "sf_against"},
	}
}

// PlayerAliases maps the player value and profile extracts
func PlayerAliases() normalize.AliasMap {
	return normalize.AliasMap{
		"player_id":    {"id", "player_id", "pid"},
		"name":         {"name", "player_name"},
		"team_abbr":    {"tm", "team_abbr", "tm_p1"},
		"position":     {"pos", "position"},
		"bat_war":      {"bat_war", "war"},
		"pit_war":      {"pit_war", "pitch_war"},
		"local_pop":    {"loc. pop.", "loc_pop", "local_pop"},
		"national_pop": {"nat. pop.", "nat_pop", "national_pop"},
	}
}

// Loader finds, parses and normalizes extracts under the data dir
type Loader struct {
	dataDir  string
	leagueID int
	logger   *logger.Logger

	html    *HTMLFetcher
	htmlURL string
}

// NewLoader creates a loader. leagueID filters multi-league exports;
// zero disables the filter.
func NewLoader(dataDir string, leagueID int, log *logger.Logger) *Loader {
	return &Loader{dataDir: dataDir, leagueID: leagueID, logger: log}
}

// WithHTMLFallback configures an almanac standings page to fall back to
// when no team records CSV exists in the export set
func (l *Loader) WithHTMLFallback(fetcher *HTMLFetcher, url string) *Loader {
	l.html = fetcher
	l.htmlURL = url
	return l
}

// Records implements contracts.TableSource
func (l *Loader) Records(ctx context.Context, table string) ([]contracts.EntityRecord, error) {
	candidates, ok := candidateFiles[table]
	if !ok {
		return nil, fmt.Errorf("unknown logical table %q", table)
	}

	path, err := l.locate(candidates)
	if err != nil {
		if table == TableTeamRecords && l.html != nil && l.htmlURL != "" {
			l.logger.WithField("url", l.htmlURL).Info("No standings CSV, falling back to almanac HTML")
			records, htmlErr := l.html.Standings(ctx, l.htmlURL)
			if htmlErr != nil {
				return nil, fmt.Errorf("table %s: %w", table, htmlErr)
			}
			return l.filterLeague(records), nil
		}
		return nil, fmt.Errorf("table %s: %w", table, err)
	}

	raw, err := normalize.ReadCSVFile(path)
	if err != nil {
		return nil, err
	}

	var n *normalize.Normalizer
	switch table {
	case TablePlayerValues, TablePlayerProfile:
		n = normalize.New(PlayerAliases(), "player_id")
	default:
		n = normalize.New(TeamAliases(), "team_id")
	}

	records, err := n.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", table, err)
	}

	records = l.filterLeague(records)

	l.logger.WithFields(map[string]interface{}{
		"table":   table,
		"source":  path,
		"records": len(records),
	}).Debug("Loaded extract table")

	return records, nil
}

// locate returns the first candidate that exists under the data dir
func (l *Loader) locate(candidates []string) (string, error) {
	for _, name := range candidates {
		path := filepath.Join(l.dataDir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no export found in %s (looked for: %v)", l.dataDir, candidates)
}

// filterLeague drops rows from other leagues when the extract carries a
// league column. All-star squads and exhibition teams live in other
// league IDs.
func (l *Loader) filterLeague(records []contracts.EntityRecord) []contracts.EntityRecord {
	if l.leagueID == 0 {
		return records
	}

	out := records[:0]
	for _, rec := range records {
		raw, ok := rec.Fields["league_id"]
		if !ok {
			out = append(out, rec)
			continue
		}
		id, err := strconv.Atoi(raw)
		if err != nil || id == l.leagueID {
			out = append(out, rec)
		}
	}
	return out
}
