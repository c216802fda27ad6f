package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IzhanHassan007/fitness-tracker-app-sub001/models"
)

func TestUpsertDayOneRowPerDay(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewNutritionService(db, NewMealService(db))

	day := time.Date(2026, 5, 2, 15, 30, 0, 0, time.UTC) // mid-day timestamp normalizes to midnight

	first, err := svc.UpsertDay(user.ID, day, DailyGoalsInput{CalorieGoal: 2200, ProteinGoal: 150})
	require.NoError(t, err)
	assert.Equal(t, 2, first.Date.Day())
	assert.Zero(t, first.Date.Hour())

	second, err := svc.UpsertDay(user.ID, day.Add(2*time.Hour), DailyGoalsInput{CalorieGoal: 2000, ProteinGoal: 160})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "same calendar day updates in place")
	assert.InDelta(t, 2000, second.CalorieGoal, 0.001)

	var count int64
	require.NoError(t, db.Model(&models.DailyNutrition{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLogWaterAccumulates(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewNutritionService(db, NewMealService(db))

	day := time.Date(2026, 5, 3, 9, 0, 0, 0, time.UTC)

	d, err := svc.LogWater(user.ID, day, 500, "ml")
	require.NoError(t, err)
	assert.InDelta(t, 500, d.WaterMl, 0.001)

	d, err = svc.LogWater(user.ID, day, 1, "liters")
	require.NoError(t, err)
	assert.InDelta(t, 1500, d.WaterMl, 0.001)

	d, err = svc.LogWater(user.ID, day, 1, "cups")
	require.NoError(t, err)
	assert.InDelta(t, 1736.588, d.WaterMl, 0.001)

	_, err = svc.LogWater(user.ID, day, -100, "ml")
	assert.Error(t, err)
}

func TestGetDayProgressSumsMeals(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	meals := NewMealService(db)
	svc := NewNutritionService(db, meals)

	day := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)

	_, err := svc.UpsertDay(user.ID, day, DailyGoalsInput{CalorieGoal: 2000, ProteinGoal: 100})
	require.NoError(t, err)

	_, err = meals.AddMeal(user.ID, "breakfast", day.Add(8*time.Hour), []FoodItemInput{oatmeal()})
	require.NoError(t, err)
	_, err = meals.AddMeal(user.ID, "lunch", day.Add(13*time.Hour), []FoodItemInput{banana()})
	require.NoError(t, err)
	// next day, excluded
	_, err = meals.AddMeal(user.ID, "breakfast", day.AddDate(0, 0, 1).Add(8*time.Hour), []FoodItemInput{oatmeal()})
	require.NoError(t, err)

	p, err := svc.GetDayProgress(user.ID, day)
	require.NoError(t, err)

	assert.InDelta(t, 485, p.Totals.Calories, 0.001)
	assert.InDelta(t, 24.25, p.Nutrients["calories"].Percent, 0.001)
	assert.InDelta(t, 14.3, p.Nutrients["protein"].Consumed, 0.001)
	assert.InDelta(t, 14.3, p.Nutrients["protein"].Percent, 0.001)
	// no goal set for fat → 0%, never an error
	assert.Zero(t, p.Nutrients["fat"].Percent)
}

func TestGetDayProgressWithoutRowOrMeals(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewNutritionService(db, NewMealService(db))

	p, err := svc.GetDayProgress(user.ID, time.Now())
	require.NoError(t, err)
	assert.Zero(t, p.Totals.Calories)
	assert.Zero(t, p.WaterMl)
	assert.Zero(t, p.Nutrients["calories"].Percent)
}

func TestRecommendFromProfile(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewNutritionService(db, NewMealService(db))

	rec, err := svc.Recommend(user)
	require.NoError(t, err)
	assert.Greater(t, rec.BMR, 1500.0)
	assert.Greater(t, rec.TDEE, rec.BMR)
	assert.InDelta(t, rec.TDEE, rec.CalorieGoal, 0.001, "maintenance keeps TDEE")
	assert.Greater(t, rec.MacroTargets.ProteinG, 0.0)

	incomplete := models.User{Gender: "male"}
	_, err = svc.Recommend(incomplete)
	assert.Error(t, err)
}
