package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/IzhanHassan007/fitness-tracker-app-sub001/metrics"
	"github.com/IzhanHassan007/fitness-tracker-app-sub001/models"
)

type MealService struct {
	db *gorm.DB
}

func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

type FoodItemInput struct {
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Fat      float64 `json:"fat"`
	Sodium   float64 `json:"sodium"`
}

// MealDetail is a meal plus its computed totals and macro split, derived
// fresh from the line items on every read.
type MealDetail struct {
	models.Meal
	Totals     metrics.NutrientTotals `json:"totals"`
	MacroRatio metrics.MacroRatio     `json:"macro_ratio"`
}

func (s *MealService) AddMeal(userID uint, mealType string, ateAt time.Time, items []FoodItemInput) (*MealDetail, error) {
	if ateAt.IsZero() {
		ateAt = time.Now()
	}
	meal := &models.Meal{UserID: userID, Type: mealType, AteAt: ateAt}
	for _, it := range items {
		meal.Items = append(meal.Items, foodItemFrom(it))
	}

	if err := s.db.Create(meal).Error; err != nil {
		return nil, err
	}
	return s.GetMeal(userID, meal.ID)
}

func (s *MealService) GetMeal(userID, mealID uint) (*MealDetail, error) {
	var meal models.Meal
	err := s.db.Preload("Items").
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error
	if err != nil {
		return nil, err
	}
	return detailOf(meal), nil
}

func (s *MealService) ListMeals(userID uint, from, to *time.Time, page, limit int) ([]MealDetail, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	q := s.db.Preload("Items").Where("user_id = ?", userID).Order("ate_at DESC")
	if from != nil {
		q = q.Where("ate_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("ate_at < ?", *to)
	}

	var meals []models.Meal
	if err := q.Offset((page - 1) * limit).Limit(limit).Find(&meals).Error; err != nil {
		return nil, err
	}

	out := make([]MealDetail, 0, len(meals))
	for _, m := range meals {
		out = append(out, *detailOf(m))
	}
	return out, nil
}

func (s *MealService) ListMealsByDateRange(userID uint, from, to time.Time) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.db.Preload("Items").
		Where("user_id = ? AND ate_at >= ? AND ate_at < ?", userID, from, to).
		Order("ate_at DESC").
		Find(&meals).Error
	return meals, err
}

func (s *MealService) UpdateMeal(userID, mealID uint, mealType string, ateAt time.Time, items []FoodItemInput) (*MealDetail, error) {
	var meal models.Meal
	if err := s.db.Where("id = ? AND user_id = ?", mealID, userID).First(&meal).Error; err != nil {
		return nil, err
	}

	meal.Type = mealType
	if !ateAt.IsZero() {
		meal.AteAt = ateAt
	}
	if err := s.db.Save(&meal).Error; err != nil {
		return nil, err
	}

	// replace line items wholesale
	if err := s.db.Where("meal_id = ?", meal.ID).Delete(&models.FoodItem{}).Error; err != nil {
		return nil, err
	}
	for _, it := range items {
		fi := foodItemFrom(it)
		fi.MealID = meal.ID
		if err := s.db.Create(&fi).Error; err != nil {
			return nil, err
		}
	}

	return s.GetMeal(userID, meal.ID)
}

func (s *MealService) DeleteMeal(userID, mealID uint) error {
	var meal models.Meal
	if err := s.db.Where("id = ? AND user_id = ?", mealID, userID).First(&meal).Error; err != nil {
		return err
	}
	if err := s.db.Where("meal_id = ?", meal.ID).Delete(&models.FoodItem{}).Error; err != nil {
		return err
	}
	return s.db.Delete(&meal).Error
}

func detailOf(meal models.Meal) *MealDetail {
	totals := metrics.SumFoodItems(meal.Items)
	return &MealDetail{
		Meal:       meal,
		Totals:     totals,
		MacroRatio: metrics.MacroRatioOf(totals.Protein, totals.Carbs, totals.Fat, totals.Calories),
	}
}

func foodItemFrom(in FoodItemInput) models.FoodItem {
	return models.FoodItem{
		Name:     in.Name,
		Quantity: in.Quantity,
		Unit:     in.Unit,
		Calories: in.Calories,
		Protein:  in.Protein,
		Carbs:    in.Carbs,
		Fiber:    in.Fiber,
		Sugar:    in.Sugar,
		Fat:      in.Fat,
		Sodium:   in.Sodium,
	}
}
