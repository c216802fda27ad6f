package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email          string `gorm:"uniqueIndex;not null"`
	Password       string `gorm:"not null"`
	FullName       string
	Gender         string // "male" | "female"
	Birthday       time.Time
	HeightCm       float64 // used for BMI / BMR
	WeightKg       float64 // latest known weight, synced by the weight service
	ActivityLevel  string  // sedentary | light | moderate | active | very-active
	FitnessGoal    string  // weight-loss | muscle-gain | maintenance
	ProfilePicture string
	MFAEnabled     bool
	MFACode        string
	ResetCode      string
	Disabled       bool
	Onboarded      bool
}
