package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightTrend(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	weights := NewWeightService(db)
	svc := NewAnalyticsService(db)

	base := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	for i, kg := range []float64{92, 91, 90.5, 89} {
		_, err := weights.LogEntry(user.ID, WeightEntryInput{
			WeightValue: kg, WeightUnit: "kg",
			MeasuredAt: base.AddDate(0, 0, i*7),
		})
		require.NoError(t, err)
	}

	trend, err := svc.WeightTrend(context.Background(), user.ID, base, base.AddDate(0, 0, 21))
	require.NoError(t, err)

	assert.Equal(t, 4, trend.Entries)
	assert.InDelta(t, 89, trend.MinKg, 0.001)
	assert.InDelta(t, 92, trend.MaxKg, 0.001)
	assert.InDelta(t, 90.63, trend.AvgKg, 0.001)
	assert.InDelta(t, -3, trend.NetChangeKg, 0.001)
	assert.InDelta(t, -1, trend.WeeklyRateKg, 0.001) // -3 kg over 21 days
	require.Len(t, trend.Series, 4)
	assert.Equal(t, "2026-06-01", trend.Series[0].Date)
}

func TestWeightTrendEmptyRange(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewAnalyticsService(db)

	trend, err := svc.WeightTrend(context.Background(), user.ID, time.Now().AddDate(0, -1, 0), time.Now())
	require.NoError(t, err)
	assert.Zero(t, trend.Entries)
	assert.Empty(t, trend.Series)
}

func TestWorkoutStats(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	workouts := NewWorkoutService(db)
	svc := NewAnalyticsService(db)

	w1, err := workouts.CreateWorkout(user.ID, WorkoutInput{
		Name: "Lift", Type: "strength", ActualDurationMin: ptr(60),
		Exercises: []WorkoutExerciseInput{benchPress(100, 5, 2)}, // 1000 kg
	})
	require.NoError(t, err)
	_, err = workouts.CompleteWorkout(user.ID, w1.ID)
	require.NoError(t, err)

	w2, err := workouts.CreateWorkout(user.ID, WorkoutInput{Name: "Run", Type: "cardio"})
	require.NoError(t, err)
	_, err = workouts.SkipWorkout(user.ID, w2.ID)
	require.NoError(t, err)

	// planned workouts are not counted
	_, err = workouts.CreateWorkout(user.ID, WorkoutInput{Name: "Later", Type: "yoga"})
	require.NoError(t, err)

	stats, err := svc.WorkoutStats(context.Background(), user.ID, time.Now().AddDate(0, 0, -1), time.Now())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 60, stats.TotalMinutes)
	assert.InDelta(t, 1000, stats.TotalVolumeKg, 0.001)
	// strength at 6 kcal/min reference, 60 min, 80 kg user
	assert.Equal(t, 411, stats.TotalCalories)

	require.Contains(t, stats.ByType, "strength")
	assert.Equal(t, 1, stats.ByType["strength"].Count)
	assert.NotContains(t, stats.ByType, "yoga")
}

func TestNutritionSummaryAveragesOverFullRange(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	meals := NewMealService(db)
	nutrition := NewNutritionService(db, meals)
	svc := NewAnalyticsService(db)

	day1 := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	_, err := nutrition.UpsertDay(user.ID, day1, DailyGoalsInput{CalorieGoal: 2000})
	require.NoError(t, err)
	_, err = nutrition.LogWater(user.ID, day1, 1000, "ml")
	require.NoError(t, err)

	_, err = meals.AddMeal(user.ID, "breakfast", day1.Add(8*time.Hour), []FoodItemInput{
		{Name: "Eggs", Calories: 300, Protein: 20, Fat: 20},
	})
	require.NoError(t, err)
	_, err = meals.AddMeal(user.ID, "lunch", day1.Add(13*time.Hour), []FoodItemInput{
		{Name: "Rice Bowl", Calories: 700, Protein: 30, Carbs: 100},
	})
	require.NoError(t, err)
	// day2 has no meals and no goals row, still in the denominator

	sum, err := svc.NutritionSummary(context.Background(), user.ID, day1, day2)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.DaysCounted)
	assert.InDelta(t, 500, sum.Macros["calories"].AvgConsumed, 0.001) // 1000 over 2 days
	assert.InDelta(t, 1000, sum.Macros["calories"].AvgGoal, 0.001)
	assert.InDelta(t, 25, sum.Macros["calories"].AvgPercent, 0.001) // 50% on day1, no goal day2
	assert.InDelta(t, 25, sum.Macros["protein"].AvgConsumed, 0.001)
	assert.InDelta(t, 500, sum.WaterMlAvg, 0.001)
}
