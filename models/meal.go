package models

import (
	"time"

	"gorm.io/gorm"
)

// One Meal (breakfast/lunch/...) with its logged food items.
type Meal struct {
	gorm.Model
	UserID uint       `gorm:"index;not null"`
	Type   string     `gorm:"size:16"` // breakfast | lunch | dinner | snack
	AteAt  time.Time  `gorm:"index;not null"`
	Notes  string     `gorm:"type:text"`
	Items  []FoodItem `gorm:"constraint:OnDelete:CASCADE"`
}

// FoodItem stores the nutrient snapshot for one line of a meal.
// Totals of a meal are exact sums over these fields.
type FoodItem struct {
	gorm.Model
	MealID   uint    `gorm:"index;not null"`
	Name     string  `gorm:"not null"`
	Quantity float64 // e.g. 200
	Unit     string  `gorm:"size:8"` // g | ml | serving

	Calories float64 // kcal
	Protein  float64 // g
	Carbs    float64 // g
	Fiber    float64 // g
	Sugar    float64 // g
	Fat      float64 // g
	Sodium   float64 // mg
}
