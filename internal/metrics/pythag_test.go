package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPythagWinPct(t *testing.T) {
	tests := []struct {
		name     string
		rf, ra   int
		exponent float64
		want     float64
	}{
		{"even runs", 100, 100, 2.0, 0.5},
		{"strong offense", 520, 480, 2.0, 0.539936},
		{"no runs at all", 0, 0, 2.0, 0},
		{"shutout season", 50, 0, 2.0, 1.0},
		{"alternate exponent", 520, 480, 1.83, 0.53655},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PythagWinPct(tt.rf, tt.ra, tt.exponent), 1e-4)
		})
	}
}

func TestClassifyAngle(t *testing.T) {
	tests := []struct {
		name string
		diff float64
		want string
	}{
		{"big over", 4.2, AngleBigOver},
		{"exactly three over", 3.0, AngleBigOver},
		{"mild over", 1.5, AngleMildOver},
		{"exactly one over", 1.0, AngleMildOver},
		{"neutral high", 0.99, AngleNeutral},
		{"neutral zero", 0, AngleNeutral},
		{"neutral low", -0.99, AngleNeutral},
		{"exactly one under", -1.0, AngleMildUnder},
		{"mild under", -2.4, AngleMildUnder},
		{"exactly three under", -3.0, AngleBigUnder},
		{"big under", -5.0, AngleBigUnder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyAngle(tt.diff))
		})
	}
}
