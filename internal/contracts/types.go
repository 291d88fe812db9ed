package contracts

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Generation labels one side of a snapshot pair.
// At most one snapshot per generation exists for a domain.
type Generation string

const (
	GenerationCurrent  Generation = "current"
	GenerationPrevious Generation = "previous"
)

// Entity is a tracked subject (team or player) with a stable identifier.
// Entities are read-only inputs; the pipeline never creates or deletes them.
type Entity struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// EntityRecord is one entity's normalized raw fields for one period,
// produced by the record normalizer. Field names are the logical names
// (wins, losses, runs_scored, ...), never the export's column headers.
type EntityRecord struct {
	EntityID int               `json:"entity_id"`
	Name     string            `json:"name"`
	Fields   map[string]string `json:"fields"`
}

// Float returns a field coerced to float64.
// Returns MissingFieldError / InvalidValueError for bad input.
func (r *EntityRecord) Float(field string) (float64, error) {
	raw, ok := r.Fields[field]
	if !ok || strings.TrimSpace(raw) == "" {
		return 0, &MissingFieldError{Field: field}
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &InvalidValueError{Field: field, Value: raw}
	}
	return v, nil
}

// Int returns a field coerced to int. Counting stats are integral;
// a fractional value is bad input, not something to truncate.
func (r *EntityRecord) Int(field string) (int, error) {
	v, err := r.Float(field)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, &InvalidValueError{Field: field, Value: r.Fields[field]}
	}
	return int(v), nil
}

// String returns a field as-is with a MissingFieldError when absent
func (r *EntityRecord) String(field string) (string, error) {
	raw, ok := r.Fields[field]
	if !ok {
		return "", &MissingFieldError{Field: field}
	}
	return raw, nil
}

// StreakDirection classifies a streak
type StreakDirection string

const (
	StreakWin  StreakDirection = "win"
	StreakLoss StreakDirection = "loss"
	StreakNone StreakDirection = "none"
)

// Streak is a parsed streak value: direction plus non-negative length
type Streak struct {
	Direction StreakDirection `json:"direction"`
	Length    int             `json:"length"`
}

// Display renders the conventional W5 / L3 form, empty when no streak
func (s Streak) Display() string {
	switch s.Direction {
	case StreakWin:
		return "W" + strconv.Itoa(s.Length)
	case StreakLoss:
		return "L" + strconv.Itoa(s.Length)
	default:
		return ""
	}
}

// Sign returns +1, -1 or 0 for the streak direction
func (s Streak) Sign() int {
	switch s.Direction {
	case StreakWin:
		return 1
	case StreakLoss:
		return -1
	default:
		return 0
	}
}

// TeamMetrics is one team's complete derived-metrics record for a period
type TeamMetrics struct {
	EntityID int    `json:"entity_id"`
	Name     string `json:"name"`
	Abbr     string `json:"abbr"`
	Division string `json:"division"`

	// Raw passthrough
	Wins         int `json:"wins"`
	Losses       int `json:"losses"`
	Games        int `json:"games"`
	RunsScored   int `json:"runs_scored"`
	RunsAllowed  int `json:"runs_allowed"`
	RunDiff      int `json:"run_diff"`
	Last10Wins   int `json:"last10_w"`
	Last10Losses int `json:"last10_l"`

	// Derived
	WinPct             float64 `json:"win_pct"`
	PythagWinPct       float64 `json:"pythag_win_pct"`
	PythagExpectedWins float64 `json:"pythag_expected_wins"`
	PythagDiff         float64 `json:"pythag_diff"` // actual wins - expected wins
	AngleCategory      string  `json:"angle_category"`

	Streak Streak `json:"streak"`

	// Forum power score A+B+C+D
	PowerA     float64 `json:"power_a"`
	PowerB     float64 `json:"power_b"`
	PowerC     float64 `json:"power_c"`
	PowerD     float64 `json:"power_d"`
	PowerTotal float64 `json:"power_total"`

	// Legacy simple power score: win% x 100 + run_diff / 5
	SimplePower float64 `json:"simple_power"`

	// League-relative BABIP (zero value when batting/pitching extracts absent)
	BabipBat       float64 `json:"babip_bat"`
	BabipBatDiff   float64 `json:"babip_bat_diff"`
	BabipPitch     float64 `json:"babip_pitch"`
	BabipPitchDiff float64 `json:"babip_pitch_diff"`
}

// NumericFields returns every numeric derived field by logical name.
// The delta engine diffs exactly this set.
func (m *TeamMetrics) NumericFields() map[string]float64 {
	return map[string]float64{
		"wins":                 float64(m.Wins),
		"losses":               float64(m.Losses),
		"games":                float64(m.Games),
		"runs_scored":          float64(m.RunsScored),
		"runs_allowed":         float64(m.RunsAllowed),
		"run_diff":             float64(m.RunDiff),
		"win_pct":              m.WinPct,
		"pythag_win_pct":       m.PythagWinPct,
		"pythag_expected_wins": m.PythagExpectedWins,
		"pythag_diff":          m.PythagDiff,
		"power_total":          m.PowerTotal,
		"simple_power":         m.SimplePower,
		"babip_bat_diff":       m.BabipBatDiff,
		"babip_pitch_diff":     m.BabipPitchDiff,
	}
}

// PlayerMetrics is one player's derived value record for a period,
// used for per-team superlative selection
type PlayerMetrics struct {
	EntityID    int     `json:"entity_id"`
	Name        string  `json:"name"`
	TeamAbbr    string  `json:"team_abbr"`
	Position    string  `json:"position"`
	LocalPop    int     `json:"local_pop"`
	NationalPop int     `json:"national_pop"`
	BatWAR      float64 `json:"bat_war"`
	PitchWAR    float64 `json:"pitch_war"`
	TotalWAR    float64 `json:"total_war"`
}

// Snapshot is a full derived-metrics table for one domain at one point in
// time, tagged current or previous
type Snapshot struct {
	Domain     string        `json:"domain"`
	Generation Generation    `json:"generation"`
	CreatedAt  time.Time     `json:"created_at"`
	Records    []TeamMetrics `json:"records"`
}

// DeltaStatus flags how an entity relates to the snapshot pair
type DeltaStatus string

const (
	DeltaBoth     DeltaStatus = "both"
	DeltaNew      DeltaStatus = "new"      // present only in current
	DeltaDeparted DeltaStatus = "departed" // present only in previous
)

// DeltaRecord is the per-entity comparison between generations.
// Deltas is nil for new and departed entities; no delta is defined for them.
type DeltaRecord struct {
	EntityID int                `json:"entity_id"`
	Name     string             `json:"name"`
	Status   DeltaStatus        `json:"status"`
	Deltas   map[string]float64 `json:"deltas,omitempty"`
	Current  *TeamMetrics       `json:"current,omitempty"`
	Previous *TeamMetrics       `json:"previous,omitempty"`
}

// Delta returns a named delta, zero when undefined
func (d *DeltaRecord) Delta(field string) float64 {
	if d.Deltas == nil {
		return 0
	}
	return d.Deltas[field]
}

// ArchivedFile records one artifact captured by a freeze
type ArchivedFile struct {
	LogicalName string    `json:"file"`
	Source      string    `json:"source"`
	Target      string    `json:"target"`
	Bytes       int64     `json:"bytes"`
	CapturedAt  time.Time `json:"captured_at"`
}

// ArchiveManifest is the write-once record of one frozen period
type ArchiveManifest struct {
	Period          string         `json:"period"`
	CreatedAt       time.Time      `json:"created_at"`
	ArchiveDir      string         `json:"archive_dir"`
	Files           []ArchivedFile `json:"files"`
	SkippedOptional []string       `json:"skipped_optional,omitempty"`
}
