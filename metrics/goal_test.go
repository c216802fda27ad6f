package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/IzhanHassan007/fitness-tracker-app-sub001/models"
)

func TestProgressPercentage(t *testing.T) {
	cases := []struct {
		name     string
		goalType string
		current  float64
		target   float64
		want     float64
	}{
		{"halfway", models.GoalTypeTarget, 50, 100, 50},
		{"overachieved clamps to 100", models.GoalTypeTarget, 12, 10, 100},
		{"negative clamps to 0", models.GoalTypeTarget, -5, 100, 0},
		{"zero target yields 0", models.GoalTypeTarget, 50, 0, 0},
		// reduction goals carry deltas: target=-10 means "lose 10 units"
		{"reduction uses magnitudes", models.GoalTypeReduction, -4, -10, 40},
		{"reduction mixed signs", models.GoalTypeReduction, 4, -10, 40},
		{"reduction overshoot clamps", models.GoalTypeReduction, -12, -10, 100},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.InDelta(t, c.want, ProgressPercentage(c.goalType, c.current, c.target), 1e-9)
		})
	}
}

func TestTimeProgressPercentage(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	target := start.AddDate(0, 0, 100)

	assert.InDelta(t, 60, TimeProgressPercentage(start, target, start.AddDate(0, 0, 60)), 1e-9)
	// clamped on both ends
	assert.Zero(t, TimeProgressPercentage(start, target, start.AddDate(0, 0, -5)))
	assert.InDelta(t, 100, TimeProgressPercentage(start, target, target.AddDate(0, 0, 30)), 1e-9)
	// degenerate window
	assert.Zero(t, TimeProgressPercentage(start, start, start))
}

func TestHealthStatus(t *testing.T) {
	cases := []struct {
		name    string
		status  string
		goalPct float64
		timePct float64
		want    string
	}{
		{"completed wins over everything", models.GoalStatusCompleted, 0, 100, "completed"},
		{"abandoned is failed", models.GoalStatusAbandoned, 90, 10, "failed"},
		{"expired is failed", models.GoalStatusExpired, 90, 10, "failed"},
		{"behind when time leads by >20", models.GoalStatusActive, 30, 60, "behind"},
		{"ahead when goal leads by >20", models.GoalStatusActive, 80, 40, "ahead"},
		{"on-track inside the band", models.GoalStatusActive, 50, 60, "on-track"},
		// boundary: a gap of exactly 20 lands in on-track, not behind
		{"boundary gap of 20 is on-track", models.GoalStatusActive, 40, 60, "on-track"},
		{"boundary gap of -20 is on-track", models.GoalStatusActive, 60, 40, "on-track"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, HealthStatus(c.status, c.goalPct, c.timePct))
		})
	}
}

func TestRecommendationsRulesAreIndependent(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	// behind schedule
	recs := Recommendations(10, 60, 40, nil, now)
	assert.Equal(t, []string{RecFallingBehind}, recs)

	// ahead of schedule
	recs = Recommendations(80, 40, 45, nil, now)
	assert.Equal(t, []string{RecAheadOfPace}, recs)

	// stale update can fire alongside another rule
	old := now.Add(-20 * 24 * time.Hour)
	recs = Recommendations(10, 60, 40, &old, now)
	assert.Equal(t, []string{RecFallingBehind, RecStaleUpdate}, recs)

	// recent update stays silent
	fresh := now.Add(-2 * 24 * time.Hour)
	assert.Empty(t, Recommendations(50, 50, 40, &fresh, now))
}
