package services

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/IzhanHassan007/fitness-tracker-app-sub001/config"
	"github.com/IzhanHassan007/fitness-tracker-app-sub001/models"
)

// newTestDB opens a throwaway in-memory database. The named shared-cache DSN
// keeps gorm's pooled connections on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	u := models.User{
		Email:         fmt.Sprintf("%s@example.com", t.Name()),
		Password:      "hashed",
		FullName:      "Test User",
		Gender:        "male",
		Birthday:      time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
		HeightCm:      180,
		WeightKg:      80,
		ActivityLevel: "moderate",
		FitnessGoal:   "maintenance",
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func ptr[T any](v T) *T { return &v }
