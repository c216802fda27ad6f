package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	GoalTypeTarget      = "target"
	GoalTypeHabit       = "habit"
	GoalTypeReduction   = "reduction"
	GoalTypeMaintenance = "maintenance"
	GoalTypeChallenge   = "challenge"
)

// Status flow: draft → active → completed | paused | abandoned | expired.
// Completed/expired goals can be administratively reopened to active.
const (
	GoalStatusDraft     = "draft"
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusPaused    = "paused"
	GoalStatusAbandoned = "abandoned"
	GoalStatusExpired   = "expired"
)

type Goal struct {
	gorm.Model
	UserID      uint   `gorm:"index;not null"`
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Type        string `gorm:"size:16;index;not null"`
	Status      string `gorm:"size:16;index;default:draft"`
	Category    string `gorm:"size:16"` // weight | workout | nutrition | custom

	// For reduction goals target/current are deltas (e.g. kg lost), not
	// absolute values.
	TargetValue  float64
	CurrentValue float64
	Unit         string `gorm:"size:16"`

	StartDate   time.Time
	TargetDate  time.Time
	CompletedAt *time.Time

	Milestones []GoalMilestone      `gorm:"constraint:OnDelete:CASCADE"`
	Updates    []GoalProgressUpdate `gorm:"constraint:OnDelete:CASCADE"`
}

// Milestones are kept sorted ascending by TargetValue.
type GoalMilestone struct {
	gorm.Model
	GoalID      uint       `gorm:"index;not null"`
	Title       string
	TargetValue float64
	Achieved    bool
	AchievedAt  *time.Time
}

type GoalProgressUpdate struct {
	gorm.Model
	GoalID     uint      `gorm:"index;not null"`
	Value      float64
	Note       string    `gorm:"type:text"`
	RecordedAt time.Time `gorm:"index;not null"`
}
