package metrics

import (
	"fmt"
	"strings"

	"github.com/wonny/almanac/internal/contracts"
)

// popRank orders the export's popularity labels for deterministic
// sorting. Unknown labels rank lowest.
var popRank = map[string]int{
	"Unkn.":   0,
	"Insig.":  1,
	"Fair":    2,
	"Known":   3,
	"Pop.":    4,
	"V.Pop":   5,
	"Ex.Pop.": 6,
}

// PopRank converts a popularity label to its numeric rank
func PopRank(label string) int {
	return popRank[strings.TrimSpace(label)]
}

// Player computes one player's value record. WAR halves default to zero
// so two-way players sum cleanly and one-way players need only their
// own extract.
func (c *Calculator) Player(rec contracts.EntityRecord) (contracts.PlayerMetrics, error) {
	p := contracts.PlayerMetrics{
		EntityID: rec.EntityID,
		Name:     rec.Name,
	}

	team, err := rec.String("team_abbr")
	if err != nil {
		return p, fmt.Errorf("player %d: %w", rec.EntityID, err)
	}
	p.TeamAbbr = strings.TrimSpace(team)

	if pos, err := rec.String("position"); err == nil {
		p.Position = strings.TrimSpace(pos)
	}

	if war, err := rec.Float("bat_war"); err == nil {
		p.BatWAR = war
	}
	if war, err := rec.Float("pit_war"); err == nil {
		p.PitchWAR = war
	}
	p.TotalWAR = p.BatWAR + p.PitchWAR

	if pop, err := rec.String("local_pop"); err == nil {
		p.LocalPop = PopRank(pop)
	}
	if pop, err := rec.String("national_pop"); err == nil {
		p.NationalPop = PopRank(pop)
	}

	return p, nil
}

// PlayerSet computes value records for every player in one period
func (c *Calculator) PlayerSet(recs []contracts.EntityRecord) ([]contracts.PlayerMetrics, error) {
	out := make([]contracts.PlayerMetrics, 0, len(recs))
	for _, rec := range recs {
		p, err := c.Player(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
