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

type WeightService struct {
	db *gorm.DB
}

func NewWeightService(db *gorm.DB) *WeightService {
	return &WeightService{db: db}
}

type WeightEntryInput struct {
	WeightValue  float64   `json:"weight_value" binding:"required"`
	WeightUnit   string    `json:"weight_unit" binding:"required,oneof=kg lbs"`
	BodyFatPct   *float64  `json:"body_fat_pct"`
	MuscleMassKg *float64  `json:"muscle_mass_kg"`
	WaterPct     *float64  `json:"water_pct"`
	ChestCm      *float64  `json:"chest_cm"`
	WaistCm      *float64  `json:"waist_cm"`
	HipsCm       *float64  `json:"hips_cm"`
	MeasuredAt   time.Time `json:"measured_at"`
	TimeOfDay    string    `json:"time_of_day"`
	Notes        string    `json:"notes"`
	PhotoBase64  string    `json:"photo_base64"`
}

// WeightEntryDetail is an entry plus its derived fields, computed fresh on
// every read and never persisted.
type WeightEntryDetail struct {
	models.WeightEntry
	WeightKg    float64               `json:"weight_kg"`
	BMI         *float64              `json:"bmi,omitempty"`
	BMICategory string                `json:"bmi_category,omitempty"`
	LeanMassKg  *float64              `json:"lean_mass_kg,omitempty"`
	FatMassKg   *float64              `json:"fat_mass_kg,omitempty"`
	Progress    *metrics.BodyProgress `json:"progress,omitempty"`
}

func validateWeightInput(in WeightEntryInput) error {
	kg := metrics.ToKilograms(in.WeightValue, in.WeightUnit)
	if kg < 20 || kg > 500 {
		return fmt.Errorf("weight must be between 20 and 500 kg (got %.1f kg)", kg)
	}
	if in.BodyFatPct != nil && (*in.BodyFatPct < 3 || *in.BodyFatPct > 60) {
		return fmt.Errorf("body fat %% must be between 3 and 60")
	}
	return nil
}

func (s *WeightService) LogEntry(userID uint, in WeightEntryInput) (*models.WeightEntry, error) {
	if err := validateWeightInput(in); err != nil {
		return nil, err
	}
	if in.MeasuredAt.IsZero() {
		in.MeasuredAt = time.Now()
	}

	entry := &models.WeightEntry{
		UserID:       userID,
		WeightValue:  in.WeightValue,
		WeightUnit:   in.WeightUnit,
		BodyFatPct:   in.BodyFatPct,
		MuscleMassKg: in.MuscleMassKg,
		WaterPct:     in.WaterPct,
		ChestCm:      in.ChestCm,
		WaistCm:      in.WaistCm,
		HipsCm:       in.HipsCm,
		MeasuredAt:   in.MeasuredAt,
		TimeOfDay:    in.TimeOfDay,
		Notes:        in.Notes,
	}

	if in.PhotoBase64 != "" {
		url, err := utils.UploadBase64ImageToS3(in.PhotoBase64, fmt.Sprintf("progress-photos/user-%d", userID))
		if err != nil {
			return nil, fmt.Errorf("failed to upload progress photo: %w", err)
		}
		entry.PhotoURL = url
	}

	if err := s.db.Create(entry).Error; err != nil {
		return nil, err
	}

	// keep the profile's latest-known weight in sync for calorie estimates
	s.syncProfileWeight(userID)

	return entry, nil
}

func (s *WeightService) UpdateEntry(userID, entryID uint, in WeightEntryInput) (*models.WeightEntry, error) {
	if err := validateWeightInput(in); err != nil {
		return nil, err
	}

	var entry models.WeightEntry
	if err := s.db.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
		return nil, err
	}

	entry.WeightValue = in.WeightValue
	entry.WeightUnit = in.WeightUnit
	entry.BodyFatPct = in.BodyFatPct
	entry.MuscleMassKg = in.MuscleMassKg
	entry.WaterPct = in.WaterPct
	entry.ChestCm = in.ChestCm
	entry.WaistCm = in.WaistCm
	entry.HipsCm = in.HipsCm
	if !in.MeasuredAt.IsZero() {
		entry.MeasuredAt = in.MeasuredAt
	}
	entry.TimeOfDay = in.TimeOfDay
	entry.Notes = in.Notes

	if in.PhotoBase64 != "" {
		url, err := utils.UploadBase64ImageToS3(in.PhotoBase64, fmt.Sprintf("progress-photos/user-%d", userID))
		if err != nil {
			return nil, fmt.Errorf("failed to upload progress photo: %w", err)
		}
		entry.PhotoURL = url
	}

	if err := s.db.Save(&entry).Error; err != nil {
		return nil, err
	}
	s.syncProfileWeight(userID)
	return &entry, nil
}

func (s *WeightService) DeleteEntry(userID, entryID uint) error {
	res := s.db.Where("id = ? AND user_id = ?", entryID, userID).Delete(&models.WeightEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	s.syncProfileWeight(userID)
	return nil
}

func (s *WeightService) ListEntries(userID uint, from, to *time.Time, page, limit int) ([]models.WeightEntry, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	q := s.db.Where("user_id = ?", userID).Order("measured_at DESC")
	if from != nil {
		q = q.Where("measured_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("measured_at < ?", *to)
	}

	var entries []models.WeightEntry
	err := q.Offset((page - 1) * limit).Limit(limit).Find(&entries).Error
	return entries, err
}

// GetEntryDetail computes the derived fields: BMI against the user's height
// on file (omitted when height is missing), lean/fat mass when body fat was
// measured, and progress relative to the preceding entry.
func (s *WeightService) GetEntryDetail(userID, entryID uint, heightCm float64) (*WeightEntryDetail, error) {
	var entry models.WeightEntry
	if err := s.db.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
		return nil, err
	}

	detail := s.buildDetail(entry, heightCm)

	var prev models.WeightEntry
	err := s.db.Where("user_id = ? AND measured_at < ?", userID, entry.MeasuredAt).
		Order("measured_at DESC").First(&prev).Error
	if err == nil {
		days := int(entry.MeasuredAt.Sub(prev.MeasuredAt).Hours() / 24)
		p := metrics.Progress(
			metrics.ToKilograms(entry.WeightValue, entry.WeightUnit),
			metrics.ToKilograms(prev.WeightValue, prev.WeightUnit),
			days,
			entry.BodyFatPct, prev.BodyFatPct,
			entry.MuscleMassKg, prev.MuscleMassKg,
		)
		detail.Progress = &p
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return detail, nil
}

func (s *WeightService) LatestEntry(userID uint) (*models.WeightEntry, error) {
	var entry models.WeightEntry
	err := s.db.Where("user_id = ?", userID).Order("measured_at DESC").First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *WeightService) buildDetail(entry models.WeightEntry, heightCm float64) *WeightEntryDetail {
	kg := metrics.ToKilograms(entry.WeightValue, entry.WeightUnit)
	detail := &WeightEntryDetail{WeightEntry: entry, WeightKg: kg}

	if bmi, ok := metrics.BMI(kg, heightCm/100); ok {
		detail.BMI = &bmi
		detail.BMICategory = metrics.BMICategory(bmi)
	}
	if lean, ok := metrics.LeanMass(kg, entry.BodyFatPct); ok {
		detail.LeanMassKg = &lean
	}
	if fat, ok := metrics.FatMass(kg, entry.BodyFatPct); ok {
		detail.FatMassKg = &fat
	}
	return detail
}

func (s *WeightService) syncProfileWeight(userID uint) {
	entry, err := s.LatestEntry(userID)
	if err != nil {
		return
	}
	kg := metrics.ToKilograms(entry.WeightValue, entry.WeightUnit)
	_ = s.db.Model(&models.User{}).Where("id = ?", userID).Update("weight_kg", kg).Error
}
