package models

import (
	"time"

	"gorm.io/gorm"
)

// DailyNutrition holds one row per (user, calendar day): directly logged
// water intake and supplements plus the day's per-nutrient targets.
// Consumed totals are not stored; they are summed from the day's meals on
// every read.
type DailyNutrition struct {
	gorm.Model
	UserID uint      `gorm:"uniqueIndex:idx_user_day;not null"`
	Date   time.Time `gorm:"uniqueIndex:idx_user_day;not null"` // local midnight

	WaterMl     float64
	Supplements string `gorm:"type:text"` // comma separated

	CalorieGoal float64
	ProteinGoal float64
	CarbsGoal   float64
	FatGoal     float64
	SodiumGoal  float64
	SugarGoal   float64
}
