package metrics

import "math"

// Angle categories for the pythag over/under report. Large-magnitude
// thresholds are checked first so exactly one label applies.
const (
	AngleBigOver   = "big_over_achiever"
	AngleMildOver  = "mild_over_achiever"
	AngleBigUnder  = "big_under_achiever"
	AngleMildUnder = "mild_under_achiever"
	AngleNeutral   = "true_to_form"
)

// PythagWinPct is the run-based expected win percentage:
// rf^k / (rf^k + ra^k). Defined as 0 when both run totals are zero.
// The exponent is a league convention supplied by the caller, not a
// fitted value.
func PythagWinPct(runsFor, runsAgainst int, exponent float64) float64 {
	rf := math.Pow(float64(runsFor), exponent)
	ra := math.Pow(float64(runsAgainst), exponent)
	denom := rf + ra
	if denom == 0 {
		return 0
	}
	return rf / denom
}

// ClassifyAngle maps a pythag diff (actual wins - expected wins) to its
// over/under-achiever bucket
func ClassifyAngle(diff float64) string {
	if diff >= 3.0 {
		return AngleBigOver
	}
	if diff >= 1.0 {
		return AngleMildOver
	}
	if diff <= -3.0 {
		return AngleBigUnder
	}
	if diff <= -1.0 {
		return AngleMildUnder
	}
	return AngleNeutral
}
