package metrics

import (
	"strconv"
	"strings"

	"github.com/wonny/almanac/internal/contracts"
)

// ParseStreak interprets the raw streak field as a signed integer:
// positive is a winning streak, negative a losing streak, zero none.
// Anything that does not coerce to an integer parses to {none, 0};
// this never errors.
func ParseStreak(raw string) contracts.Streak {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return contracts.Streak{Direction: contracts.StreakNone, Length: 0}
	}

	switch {
	case n > 0:
		return contracts.Streak{Direction: contracts.StreakWin, Length: n}
	case n < 0:
		return contracts.Streak{Direction: contracts.StreakLoss, Length: -n}
	default:
		return contracts.Streak{Direction: contracts.StreakNone, Length: 0}
	}
}
