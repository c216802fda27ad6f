package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IzhanHassan007/fitness-tracker-app-sub001/models"
)

func TestExerciseVolume(t *testing.T) {
	sets := []models.WorkoutSet{
		{Reps: 10, WeightValue: 60, WeightUnit: "kg"},
		{Reps: 8, WeightValue: 70, WeightUnit: "kg"},
		{Reps: 0, WeightValue: 80, WeightUnit: "kg"}, // contributes 0
		{Reps: 12, WeightValue: 0},                   // contributes 0
	}
	assert.InDelta(t, 600+560, ExerciseVolume(sets), 1e-9)
	assert.Zero(t, ExerciseVolume(nil))
}

func TestExerciseVolumeConvertsUnits(t *testing.T) {
	sets := []models.WorkoutSet{{Reps: 10, WeightValue: 100, WeightUnit: "lbs"}}
	assert.InDelta(t, 100*KgPerLb*10, ExerciseVolume(sets), 1e-9)
}

func TestWorkoutVolumeMatchesExerciseTotals(t *testing.T) {
	exercises := []models.WorkoutExercise{
		{Sets: []models.WorkoutSet{{Reps: 5, WeightValue: 100, WeightUnit: "kg"}}},
		{Sets: []models.WorkoutSet{{Reps: 10, WeightValue: 40, WeightUnit: "kg"}, {Reps: 10, WeightValue: 40, WeightUnit: "kg"}}},
	}
	var perExercise float64
	for _, ex := range exercises {
		perExercise += ExerciseVolume(ex.Sets)
	}
	assert.InDelta(t, perExercise, WorkoutVolume(exercises), 1e-9)
	assert.InDelta(t, 1300, WorkoutVolume(exercises), 1e-9)
}

func TestActualDuration(t *testing.T) {
	start := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	end := start.Add(45*time.Minute + 20*time.Second)

	min, ok := ActualDuration(&start, &end)
	require.True(t, ok)
	assert.Equal(t, 45, min)

	_, ok = ActualDuration(&start, nil)
	assert.False(t, ok)
	_, ok = ActualDuration(nil, &end)
	assert.False(t, ok)
}

func TestCaloriesBurned(t *testing.T) {
	// round(8 × 45 × 80/70) = round(411.43) = 411
	assert.Equal(t, 411, CaloriesBurned("cardio", 45, 80))
	// at reference weight the rate applies directly
	assert.Equal(t, 420, CaloriesBurned("hiit", 42, 70))
	// unknown type uses the "other" rate of 5
	assert.Equal(t, CaloriesBurned("other", 30, 70), CaloriesBurned("zumba", 30, 70))
}
