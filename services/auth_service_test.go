package services

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IzhanHassan007/fitness-tracker-app-sub001/config"
)

// the auth and profile paths go through the package-level connection
func useTestDB(t *testing.T) {
	t.Helper()
	prev := config.DB
	config.DB = newTestDB(t)
	t.Cleanup(func() { config.DB = prev })
}

func TestRegisterAndAuthenticate(t *testing.T) {
	useTestDB(t)
	os.Setenv("JWT_SECRET", "test-secret")

	require.NoError(t, RegisterUser("jane@example.com", "s3cretpass", "Jane Doe"))

	// duplicate email
	assert.Error(t, RegisterUser("jane@example.com", "other", "Jane Again"))

	token, err := AuthenticateUser("jane@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = AuthenticateUser("jane@example.com", "wrongpass")
	assert.Error(t, err)

	_, err = AuthenticateUser("nobody@example.com", "s3cretpass")
	assert.Error(t, err)
}

func TestAuthenticateDisabledUser(t *testing.T) {
	useTestDB(t)
	os.Setenv("JWT_SECRET", "test-secret")

	require.NoError(t, RegisterUser("gone@example.com", "s3cretpass", "Gone"))
	u, err := FindUserByEmail("gone@example.com")
	require.NoError(t, err)
	require.NoError(t, DeleteUser(u.ID))

	_, err = AuthenticateUser("gone@example.com", "s3cretpass")
	assert.Error(t, err)
}

func TestUpdateAndGetProfile(t *testing.T) {
	useTestDB(t)

	require.NoError(t, RegisterUser("pat@example.com", "s3cretpass", "Pat"))
	u, err := FindUserByEmail("pat@example.com")
	require.NoError(t, err)

	require.NoError(t, UpdateUserProfile(u.ID, ProfileInput{
		Gender:        "female",
		Birthday:      "1992-02-10",
		HeightCm:      165,
		WeightKg:      60,
		ActivityLevel: "light",
		FitnessGoal:   "weight-loss",
		Onboarded:     true,
	}))

	profile, err := GetUserProfile(u.ID)
	require.NoError(t, err)
	assert.Equal(t, 165.0, profile["height_cm"])
	assert.Equal(t, true, profile["onboarded"])
	// 60 / 1.65² = 22.0
	assert.Equal(t, 22.0, profile["bmi"])
	assert.Equal(t, "normal", profile["bmi_category"])
}
