package metrics

import (
	"math"

	"github.com/IzhanHassan007/fitness-tracker-app-sub001/models"
)

// NutrientTotals are exact sums over a meal's food items, no rounding.
type NutrientTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Fat      float64 `json:"fat"`
	Sodium   float64 `json:"sodium"`
}

func SumFoodItems(items []models.FoodItem) NutrientTotals {
	var t NutrientTotals
	for _, it := range items {
		t.Calories += it.Calories
		t.Protein += it.Protein
		t.Carbs += it.Carbs
		t.Fiber += it.Fiber
		t.Sugar += it.Sugar
		t.Fat += it.Fat
		t.Sodium += it.Sodium
	}
	return t
}

func (t NutrientTotals) Add(o NutrientTotals) NutrientTotals {
	t.Calories += o.Calories
	t.Protein += o.Protein
	t.Carbs += o.Carbs
	t.Fiber += o.Fiber
	t.Sugar += o.Sugar
	t.Fat += o.Fat
	t.Sodium += o.Sodium
	return t
}

type MacroRatio struct {
	ProteinPct int `json:"protein_pct"`
	CarbsPct   int `json:"carbs_pct"`
	FatPct     int `json:"fat_pct"`
}

// MacroRatioOf converts macro grams to percentages of total calories
// (4 kcal/g protein and carbs, 9 kcal/g fat). All zero when totalCalories
// is zero.
func MacroRatioOf(proteinG, carbsG, fatG, totalCalories float64) MacroRatio {
	if totalCalories == 0 {
		return MacroRatio{}
	}
	return MacroRatio{
		ProteinPct: int(math.Round(proteinG * 4 / totalCalories * 100)),
		CarbsPct:   int(math.Round(carbsG * 4 / totalCalories * 100)),
		FatPct:     int(math.Round(fatG * 9 / totalCalories * 100)),
	}
}

// BMR implemented per Mifflin-St Jeor. Weight kg, height cm, age years.
func BMR(gender string, weightKg, heightCm float64, ageYears int) float64 {
	a := float64(ageYears)
	if gender == "female" {
		return 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*a
	}
	return 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*a
}

var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very-active": 1.9,
}

// TDEE multiplies BMR by the activity factor. Unknown levels fall back to
// sedentary.
func TDEE(bmr float64, activityLevel string) float64 {
	m, ok := activityMultipliers[activityLevel]
	if !ok {
		m = activityMultipliers["sedentary"]
	}
	return bmr * m
}

// CalorieGoal adjusts TDEE for the user's objective, floored at 1200 kcal.
func CalorieGoal(tdee float64, objective string) float64 {
	goal := tdee
	switch objective {
	case "weight-loss":
		goal = tdee - 500
	case "muscle-gain":
		goal = tdee + 300
	}
	if goal < 1200 {
		goal = 1200
	}
	return goal
}

type MacroTargets struct {
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// MacroTargetsFor splits a calorie goal into gram targets using ratio
// percentages (protein/carbs 4 kcal/g, fat 9 kcal/g).
func MacroTargetsFor(calorieGoal float64, ratio MacroRatio) MacroTargets {
	return MacroTargets{
		ProteinG: calorieGoal * float64(ratio.ProteinPct) / 100 / 4,
		CarbsG:   calorieGoal * float64(ratio.CarbsPct) / 100 / 4,
		FatG:     calorieGoal * float64(ratio.FatPct) / 100 / 9,
	}
}

// NutrientProgress returns 100 × consumed/goal, 0 when the goal is unset.
// Not clamped: exceeding a target reads as >100%.
func NutrientProgress(consumed, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return math.Round(consumed/goal*100*100) / 100
}
