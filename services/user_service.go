package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/IzhanHassan007/fitness-tracker-app-sub001/config"
	"github.com/IzhanHassan007/fitness-tracker-app-sub001/metrics"
	"github.com/IzhanHassan007/fitness-tracker-app-sub001/models"
	"github.com/IzhanHassan007/fitness-tracker-app-sub001/utils"
)

type ProfileInput struct {
	FullName       string  `json:"full_name"`
	Gender         string  `json:"gender" binding:"omitempty,oneof=male female"`
	Birthday       string  `json:"birthday"` // YYYY-MM-DD
	HeightCm       float64 `json:"height_cm"`
	WeightKg       float64 `json:"weight_kg"`
	ActivityLevel  string  `json:"activity_level" binding:"omitempty,oneof=sedentary light moderate active very-active"`
	FitnessGoal    string  `json:"fitness_goal" binding:"omitempty,oneof=weight-loss muscle-gain maintenance"`
	ProfilePicture string  `json:"profile_picture"`
	Onboarded      bool    `json:"onboarded"`
}

func GetUserProfile(userID uint) (map[string]interface{}, error) {
	var user models.User
	if err := config.DB.Where("id = ? AND disabled = ?", userID, false).First(&user).Error; err != nil {
		return nil, errors.New("user not found or disabled")
	}

	age := 0
	if !user.Birthday.IsZero() {
		age = utils.CalculateAge(user.Birthday)
	}

	profile := map[string]interface{}{
		"id":              user.ID,
		"email":           user.Email,
		"full_name":       user.FullName,
		"gender":          user.Gender,
		"birthday":        user.Birthday.Format("2006-01-02"),
		"age":             age,
		"height_cm":       user.HeightCm,
		"weight_kg":       user.WeightKg,
		"activity_level":  user.ActivityLevel,
		"fitness_goal":    user.FitnessGoal,
		"profile_picture": user.ProfilePicture,
		"mfa_enabled":     user.MFAEnabled,
		"onboarded":       user.Onboarded,
	}

	if bmi, ok := metrics.BMI(user.WeightKg, user.HeightCm/100); ok {
		profile["bmi"] = bmi
		profile["bmi_category"] = metrics.BMICategory(bmi)
	}

	return profile, nil
}

func UpdateUserProfile(userID uint, input ProfileInput) error {
	var user models.User
	if err := config.DB.Where("id = ? AND disabled = ?", userID, false).First(&user).Error; err != nil {
		return errors.New("user not found or disabled")
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Gender != "" {
		user.Gender = input.Gender
	}
	if input.Birthday != "" {
		if birthday, err := time.Parse("2006-01-02", input.Birthday); err == nil {
			user.Birthday = birthday
		}
	}
	if input.HeightCm > 0 {
		user.HeightCm = input.HeightCm
	}
	if input.WeightKg > 0 {
		user.WeightKg = input.WeightKg
	}
	if input.ActivityLevel != "" {
		user.ActivityLevel = input.ActivityLevel
	}
	if input.FitnessGoal != "" {
		user.FitnessGoal = input.FitnessGoal
	}
	if input.ProfilePicture != "" {
		url, err := utils.UploadBase64ImageToS3(input.ProfilePicture, fmt.Sprintf("profile-pictures/user-%d", userID))
		if err != nil {
			return fmt.Errorf("failed to upload image: %w", err)
		}
		user.ProfilePicture = url
	}
	user.Onboarded = input.Onboarded

	return config.DB.Save(&user).Error
}

func FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, "email = ?", email).Error; err != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}

func FindUserByID(userID uint) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}

// DeleteUser disables the account rather than removing the rows; logged
// history stays queryable for support.
func DeleteUser(userID uint) error {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return err
	}
	user.Disabled = true
	return config.DB.Save(&user).Error
}
