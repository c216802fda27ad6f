package models

import (
	"time"

	"gorm.io/gorm"
)

// WeightEntry is a single body measurement event. Weight is stored as
// entered (value + unit); services convert to kg before doing arithmetic.
type WeightEntry struct {
	gorm.Model
	UserID       uint     `gorm:"index;not null"`
	WeightValue  float64  `gorm:"not null"`
	WeightUnit   string   `gorm:"size:8;not null"` // "kg" | "lbs"
	BodyFatPct   *float64
	MuscleMassKg *float64
	WaterPct     *float64

	// optional tape measurements, cm
	ChestCm *float64
	WaistCm *float64
	HipsCm  *float64

	MeasuredAt time.Time `gorm:"index;not null"`
	TimeOfDay  string    `gorm:"size:16"` // morning | afternoon | evening
	Notes      string    `gorm:"type:text"`
	PhotoURL   string    // progress photo, S3
}
