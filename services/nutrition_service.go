package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/IzhanHassan007/fitness-tracker-app-sub001/metrics"
	"github.com/IzhanHassan007/fitness-tracker-app-sub001/models"
	"github.com/IzhanHassan007/fitness-tracker-app-sub001/utils"
)

type NutritionService struct {
	db    *gorm.DB
	meals *MealService
}

func NewNutritionService(db *gorm.DB, meals *MealService) *NutritionService {
	return &NutritionService{db: db, meals: meals}
}

type DailyGoalsInput struct {
	CalorieGoal float64 `json:"calorie_goal"`
	ProteinGoal float64 `json:"protein_goal"`
	CarbsGoal   float64 `json:"carbs_goal"`
	FatGoal     float64 `json:"fat_goal"`
	SodiumGoal  float64 `json:"sodium_goal"`
	SugarGoal   float64 `json:"sugar_goal"`
	Supplements string  `json:"supplements"`
}

type NutrientProgress struct {
	Consumed float64 `json:"consumed"`
	Goal     float64 `json:"goal"`
	Percent  float64 `json:"percent"`
}

type DayProgress struct {
	Date        string                      `json:"date"`
	WaterMl     float64                     `json:"water_ml"`
	Supplements string                      `json:"supplements,omitempty"`
	Totals      metrics.NutrientTotals      `json:"totals"`
	MacroRatio  metrics.MacroRatio          `json:"macro_ratio"`
	Nutrients   map[string]NutrientProgress `json:"nutrients"`
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// UpsertDay writes the per-nutrient targets and supplements for one
// (user, calendar day). One row per day is an invariant; FirstOrCreate under
// the unique index keeps it so.
func (s *NutritionService) UpsertDay(userID uint, date time.Time, in DailyGoalsInput) (*models.DailyNutrition, error) {
	start := dayStart(date)

	day := models.DailyNutrition{
		UserID:      userID,
		Date:        start,
		CalorieGoal: in.CalorieGoal,
		ProteinGoal: in.ProteinGoal,
		CarbsGoal:   in.CarbsGoal,
		FatGoal:     in.FatGoal,
		SodiumGoal:  in.SodiumGoal,
		SugarGoal:   in.SugarGoal,
		Supplements: in.Supplements,
	}
	err := s.db.
		Where("user_id = ? AND date = ?", userID, start).
		Assign(map[string]any{
			"calorie_goal": in.CalorieGoal,
			"protein_goal": in.ProteinGoal,
			"carbs_goal":   in.CarbsGoal,
			"fat_goal":     in.FatGoal,
			"sodium_goal":  in.SodiumGoal,
			"sugar_goal":   in.SugarGoal,
			"supplements":  in.Supplements,
		}).
		FirstOrCreate(&day).Error
	if err != nil {
		return nil, err
	}
	return &day, nil
}

// LogWater adds a drink to the day's running total. The volume is normalized
// to ml (ml, l, cup, fl-oz accepted).
func (s *NutritionService) LogWater(userID uint, date time.Time, amount float64, unit string) (*models.DailyNutrition, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("water amount must be positive")
	}
	start := dayStart(date)
	ml := metrics.ToMilliliters(amount, unit)

	var day models.DailyNutrition
	err := s.db.Where("user_id = ? AND date = ?", userID, start).First(&day).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		day = models.DailyNutrition{UserID: userID, Date: start, WaterMl: ml}
		if err := s.db.Create(&day).Error; err != nil {
			return nil, err
		}
		return &day, nil
	}
	if err != nil {
		return nil, err
	}

	day.WaterMl += ml
	if err := s.db.Save(&day).Error; err != nil {
		return nil, err
	}
	return &day, nil
}

// GetDayProgress sums the day's meals and reports per-nutrient progress
// against that day's goals. Unset goals read as 0%, never as an error.
func (s *NutritionService) GetDayProgress(userID uint, date time.Time) (*DayProgress, error) {
	start := dayStart(date)
	end := start.Add(24 * time.Hour)

	var day models.DailyNutrition
	if err := s.db.Where("user_id = ? AND date = ?", userID, start).First(&day).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		day = models.DailyNutrition{UserID: userID, Date: start}
	}

	meals, err := s.meals.ListMealsByDateRange(userID, start, end)
	if err != nil {
		return nil, err
	}

	var totals metrics.NutrientTotals
	for _, m := range meals {
		totals = totals.Add(metrics.SumFoodItems(m.Items))
	}

	return &DayProgress{
		Date:        start.Format("2006-01-02"),
		WaterMl:     day.WaterMl,
		Supplements: day.Supplements,
		Totals:      totals,
		MacroRatio:  metrics.MacroRatioOf(totals.Protein, totals.Carbs, totals.Fat, totals.Calories),
		Nutrients: map[string]NutrientProgress{
			"calories": {Consumed: totals.Calories, Goal: day.CalorieGoal, Percent: metrics.NutrientProgress(totals.Calories, day.CalorieGoal)},
			"protein":  {Consumed: totals.Protein, Goal: day.ProteinGoal, Percent: metrics.NutrientProgress(totals.Protein, day.ProteinGoal)},
			"carbs":    {Consumed: totals.Carbs, Goal: day.CarbsGoal, Percent: metrics.NutrientProgress(totals.Carbs, day.CarbsGoal)},
			"fat":      {Consumed: totals.Fat, Goal: day.FatGoal, Percent: metrics.NutrientProgress(totals.Fat, day.FatGoal)},
			"sodium":   {Consumed: totals.Sodium, Goal: day.SodiumGoal, Percent: metrics.NutrientProgress(totals.Sodium, day.SodiumGoal)},
			"sugar":    {Consumed: totals.Sugar, Goal: day.SugarGoal, Percent: metrics.NutrientProgress(totals.Sugar, day.SugarGoal)},
		},
	}, nil
}

type CalorieRecommendation struct {
	BMR          float64              `json:"bmr"`
	TDEE         float64              `json:"tdee"`
	CalorieGoal  float64              `json:"calorie_goal"`
	MacroRatio   metrics.MacroRatio   `json:"macro_ratio"`
	MacroTargets metrics.MacroTargets `json:"macro_targets"`
}

// default macro split used for recommended gram targets
var defaultMacroRatio = metrics.MacroRatio{ProteinPct: 30, CarbsPct: 40, FatPct: 30}

// Recommend derives BMR (Mifflin-St Jeor), TDEE and a calorie goal from the
// user's profile. Profile fields are taken as explicit inputs here; an
// incomplete profile is a validation error, not a silent zero.
func (s *NutritionService) Recommend(user models.User) (*CalorieRecommendation, error) {
	if user.WeightKg <= 0 || user.HeightCm <= 0 || user.Birthday.IsZero() {
		return nil, fmt.Errorf("profile incomplete: weight, height and birthday are required")
	}

	bmr := metrics.BMR(user.Gender, user.WeightKg, user.HeightCm, utils.CalculateAge(user.Birthday))
	tdee := metrics.TDEE(bmr, user.ActivityLevel)
	goal := metrics.CalorieGoal(tdee, user.FitnessGoal)

	return &CalorieRecommendation{
		BMR:          bmr,
		TDEE:         tdee,
		CalorieGoal:  goal,
		MacroRatio:   defaultMacroRatio,
		MacroTargets: metrics.MacroTargetsFor(goal, defaultMacroRatio),
	}, nil
}
