package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJobHistory_AddResult(t *testing.T) {
	h := &JobHistory{}

	for i := 0; i < 150; i++ {
		h.AddResult(JobResult{JobName: "weekly-run-season_1981", Success: i%2 == 0})
	}

	// Only the last 100 are retained
	assert.Len(t, h.Results, 100)
}

func TestJobHistory_GetLatestResults(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < 5; i++ {
		h.AddResult(JobResult{
			JobName:   "weekly-run-season_1981",
			StartTime: time.Date(2026, 8, 24, 6, i, 0, 0, time.UTC),
			Success:   true,
		})
	}

	latest := h.GetLatestResults(3)
	assert.Len(t, latest, 3)
	assert.Equal(t, 2, latest[0].StartTime.Minute())

	all := h.GetLatestResults(10)
	assert.Len(t, all, 5)

	none := (&JobHistory{}).GetLatestResults(3)
	assert.Empty(t, none)
}
