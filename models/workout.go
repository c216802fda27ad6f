package models

import (
	"time"

	"gorm.io/gorm"
)

// Workout status flow: planned → in-progress → completed | skipped.
const (
	WorkoutStatusPlanned    = "planned"
	WorkoutStatusInProgress = "in-progress"
	WorkoutStatusCompleted  = "completed"
	WorkoutStatusSkipped    = "skipped"
)

type Workout struct {
	gorm.Model
	UserID    uint   `gorm:"index;not null"`
	Name      string `gorm:"not null"`
	Type      string `gorm:"size:20;index;not null"` // strength | cardio | hiit | ...
	Intensity string `gorm:"size:16"`                // low | moderate | high
	Status    string `gorm:"size:16;index;default:planned"`

	PlannedDurationMin int
	// Explicit override; when nil and both timestamps are set the actual
	// duration is derived from them.
	ActualDurationMin *int
	StartedAt         *time.Time
	EndedAt           *time.Time

	// CaloriesBurned is filled on completion if the client did not supply it.
	CaloriesBurned *int
	// TotalVolume is recomputed from sets on every save.
	TotalVolume float64
	Notes       string `gorm:"type:text"`

	Exercises []WorkoutExercise `gorm:"constraint:OnDelete:CASCADE"`
}

type WorkoutExercise struct {
	gorm.Model
	WorkoutID   uint   `gorm:"index;not null"`
	Name        string `gorm:"not null"`
	MuscleGroup string `gorm:"size:32"`
	Position    int    // order within the workout
	// TotalVolume = Σ(set.weight × set.reps), recomputed whenever sets change.
	TotalVolume float64

	Sets []WorkoutSet `gorm:"foreignKey:ExerciseID;constraint:OnDelete:CASCADE"`
}

type WorkoutSet struct {
	gorm.Model
	ExerciseID  uint `gorm:"index;not null"`
	Position    int
	Reps        int
	WeightValue float64
	WeightUnit  string `gorm:"size:8"` // "kg" | "lbs"
	DurationSec int
	DistanceM   float64
	RestSec     int
	Completed   bool
}
