package metrics

import (
	"math"
	"time"

	"github.com/IzhanHassan007/fitness-tracker-app-sub001/models"
)

// ProgressPercentage is clamped to [0,100]. Reduction goals express
// target/current as deltas (e.g. kg lost), so their ratio uses magnitudes;
// a direct signed ratio would go negative for "lose 10, lost 4".
// A zero target yields 0 rather than dividing.
func ProgressPercentage(goalType string, current, target float64) float64 {
	if target == 0 {
		return 0
	}
	var pct float64
	if goalType == models.GoalTypeReduction {
		pct = math.Abs(current) / math.Abs(target) * 100
	} else {
		pct = current / target * 100
	}
	return clampPct(pct)
}

// TimeProgressPercentage is elapsed time over total duration, clamped.
// Total duration is the ceiling of the start→target span in days.
func TimeProgressPercentage(startDate, targetDate, now time.Time) float64 {
	totalDays := math.Ceil(targetDate.Sub(startDate).Hours() / 24)
	if totalDays <= 0 {
		return 0
	}
	elapsed := now.Sub(startDate).Hours() / 24
	return clampPct(elapsed / totalDays * 100)
}

const healthStatusGapPts = 20.0

// HealthStatus classifies a goal into completed / failed / behind / ahead /
// on-track. The ±20-point bands overlap at their boundaries, so branches are
// evaluated in a fixed order and the first match wins; "caution" is the
// default for anything that falls through.
func HealthStatus(status string, goalPct, timePct float64) string {
	switch status {
	case models.GoalStatusCompleted:
		return "completed"
	case models.GoalStatusAbandoned, models.GoalStatusExpired:
		return "failed"
	}
	switch {
	case timePct-goalPct > healthStatusGapPts:
		return "behind"
	case goalPct-timePct > healthStatusGapPts:
		return "ahead"
	case math.Abs(timePct-goalPct) <= healthStatusGapPts:
		return "on-track"
	default:
		return "caution"
	}
}

// Recommendation rules are independent; several can fire for one goal.
const (
	RecFallingBehind = "You're falling behind schedule. Consider breaking the remaining work into smaller steps."
	RecAheadOfPace   = "You're ahead of schedule. Keep the current pace and you'll finish early."
	RecStaleUpdate   = "It's been a while since your last update. Log your current progress."
)

func Recommendations(goalPct, timePct float64, daysRemaining int, lastUpdate *time.Time, now time.Time) []string {
	var recs []string
	if goalPct < 25 && timePct > 50 {
		recs = append(recs, RecFallingBehind)
	}
	if goalPct > 75 && daysRemaining > 30 {
		recs = append(recs, RecAheadOfPace)
	}
	if lastUpdate != nil && now.Sub(*lastUpdate) > 14*24*time.Hour {
		recs = append(recs, RecStaleUpdate)
	}
	return recs
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
