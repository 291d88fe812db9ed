package metrics

import (
	"github.com/wonny/almanac/internal/contracts"
)

// Babip is batting average on balls in play:
// (H - HR) / (AB - SO - HR + SF). Returns 0 when the denominator is
// not positive.
func Babip(h, hr, ab, so, sf float64) float64 {
	denom := ab - so - hr + sf
	if denom <= 0 {
		return 0
	}
	return (h - hr) / denom
}

// babipFromRecord computes BABIP from prefixed raw fields
// (bat_h, bat_hr, ... or pitch_h, pitch_hr, ...). Teams without the
// batting/pitching extract simply get 0 and stay out of the league mean.
func babipFromRecord(rec contracts.EntityRecord, prefix string) float64 {
	h, err := rec.Float(prefix + "_h")
	if err != nil {
		return 0
	}
	hr, err := rec.Float(prefix + "_hr")
	if err != nil {
		return 0
	}
	ab, err := rec.Float(prefix + "_ab")
	if err != nil {
		return 0
	}
	so, err := rec.Float(prefix + "_so")
	if err != nil {
		return 0
	}
	sf, err := rec.Float(prefix + "_sf")
	if err != nil {
		return 0
	}
	return Babip(h, hr, ab, so, sf)
}

// applyLeagueBabip fills the league-relative BABIP deltas. The means are
// simple arithmetic means over the teams of this period that have the
// underlying extract; mixing periods here would corrupt the baseline.
func (c *Calculator) applyLeagueBabip(teams []contracts.TeamMetrics) {
	var batSum, pitchSum float64
	var batN, pitchN int
	for i := range teams {
		if teams[i].BabipBat != 0 {
			batSum += teams[i].BabipBat
			batN++
		}
		if teams[i].BabipPitch != 0 {
			pitchSum += teams[i].BabipPitch
			pitchN++
		}
	}

	var batMean, pitchMean float64
	if batN > 0 {
		batMean = batSum / float64(batN)
	}
	if pitchN > 0 {
		pitchMean = pitchSum / float64(pitchN)
	}

	for i := range teams {
		if teams[i].BabipBat != 0 && batN > 0 {
			teams[i].BabipBatDiff = teams[i].BabipBat - batMean
		}
		if teams[i].BabipPitch != 0 && pitchN > 0 {
			teams[i].BabipPitchDiff = teams[i].BabipPitch - pitchMean
		}
	}
}

// BabipLucky reports whether a BABIP delta clears the luck-flag
// threshold in either direction: +1 lucky, -1 unlucky, 0 within noise
func (c *Calculator) BabipLucky(diff float64) int {
	if diff > c.cfg.BabipFlag {
		return 1
	}
	if diff < -c.cfg.BabipFlag {
		return -1
	}
	return 0
}
