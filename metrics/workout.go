package metrics

import (
	"math"
	"time"

	"github.com/IzhanHassan007/fitness-tracker-app-sub001/models"
)

// ExerciseVolume is Σ(set.weight × set.reps) over an exercise's sets, in kg.
// A set missing weight or reps contributes 0.
func ExerciseVolume(sets []models.WorkoutSet) float64 {
	var total float64
	for _, s := range sets {
		total += ToKilograms(s.WeightValue, s.WeightUnit) * float64(s.Reps)
	}
	return total
}

// WorkoutVolume restates the same sum at workout granularity; it must stay
// consistent with the per-exercise totals.
func WorkoutVolume(exercises []models.WorkoutExercise) float64 {
	var total float64
	for _, ex := range exercises {
		total += ExerciseVolume(ex.Sets)
	}
	return total
}

// ActualDuration derives the session length in whole minutes from the
// start/end timestamps. Unavailable until both are set.
func ActualDuration(start, end *time.Time) (int, bool) {
	if start == nil || end == nil {
		return 0, false
	}
	return int(math.Round(end.Sub(*start).Minutes())), true
}

// Calories burned per minute at the 70 kg reference weight, by workout type.
var calorieRates = map[string]float64{
	"strength":     6,
	"cardio":       8,
	"hiit":         10,
	"yoga":         3,
	"pilates":      4,
	"crossfit":     9,
	"powerlifting": 5,
	"bodybuilding": 6,
	"endurance":    7,
	"flexibility":  2,
	"sports":       8,
	"functional":   7,
	"circuit":      9,
	"other":        5,
}

const referenceWeightKg = 70.0

// CaloriesBurned estimates kcal for a session, scaled by the user's weight
// relative to the 70 kg reference. Unknown types use the "other" rate.
func CaloriesBurned(workoutType string, durationMin float64, userWeightKg float64) int {
	rate, ok := calorieRates[workoutType]
	if !ok {
		rate = calorieRates["other"]
	}
	return int(math.Round(rate * durationMin * userWeightKg / referenceWeightKg))
}
