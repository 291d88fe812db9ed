package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/almanac/internal/contracts"
)

func TestParseStreak(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantDir contracts.StreakDirection
		wantLen int
	}{
		{"winning", "5", contracts.StreakWin, 5},
		{"losing", "-3", contracts.StreakLoss, 3},
		{"zero", "0", contracts.StreakNone, 0},
		{"padded", "  2 ", contracts.StreakWin, 2},
		{"empty", "", contracts.StreakNone, 0},
		{"garbage", "W5", contracts.StreakNone, 0},
		{"float", "3.5", contracts.StreakNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ParseStreak(tt.raw)
			assert.Equal(t, tt.wantDir, s.Direction)
			assert.Equal(t, tt.wantLen, s.Length)
		})
	}
}

func TestStreakDisplayAndSign(t *testing.T) {
	assert.Equal(t, "W5", contracts.Streak{Direction: contracts.StreakWin, Length: 5}.Display())
	assert.Equal(t, "L3", contracts.Streak{Direction: contracts.StreakLoss, Length: 3}.Display())
	assert.Equal(t, "", contracts.Streak{Direction: contracts.StreakNone}.Display())

	assert.Equal(t, 1, contracts.Streak{Direction: contracts.StreakWin, Length: 1}.Sign())
	assert.Equal(t, -1, contracts.Streak{Direction: contracts.StreakLoss, Length: 1}.Sign())
	assert.Equal(t, 0, contracts.Streak{Direction: contracts.StreakNone}.Sign())
}
