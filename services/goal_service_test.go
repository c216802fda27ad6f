package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IzhanHassan007/fitness-tracker-app-sub001/models"
)

func activeGoal(t *testing.T, svc *GoalService, userID uint, in GoalInput) *GoalDetail {
	t.Helper()
	in.Activate = true
	if in.StartDate.IsZero() {
		in.StartDate = time.Now().AddDate(0, 0, -10)
	}
	if in.TargetDate.IsZero() {
		in.TargetDate = time.Now().AddDate(0, 0, 30)
	}
	g, err := svc.CreateGoal(userID, in)
	require.NoError(t, err)
	return g
}

func TestCreateGoalValidatesDates(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewGoalService(db)

	_, err := svc.CreateGoal(user.ID, GoalInput{
		Title:      "Backwards",
		Type:       models.GoalTypeTarget,
		StartDate:  time.Now(),
		TargetDate: time.Now().AddDate(0, 0, -1),
	})
	assert.Error(t, err)
}

func TestAddProgressSweepsMilestones(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewGoalService(db)

	g := activeGoal(t, svc, user.ID, GoalInput{
		Title:       "Bench 100 kg",
		Type:        models.GoalTypeTarget,
		Category:    "custom",
		TargetValue: 100,
		Milestones: []MilestoneInput{
			{Title: "90", TargetValue: 90},
			{Title: "80", TargetValue: 80},
		},
	})

	// stored sorted ascending regardless of input order
	require.Len(t, g.Milestones, 2)
	assert.InDelta(t, 80, g.Milestones[0].TargetValue, 0.001)

	g, err := svc.AddProgress(user.ID, g.ID, 85, "", time.Now())
	require.NoError(t, err)
	assert.True(t, g.Milestones[0].Achieved)
	assert.False(t, g.Milestones[1].Achieved)
	require.NotNil(t, g.Milestones[0].AchievedAt)
	firstStamp := *g.Milestones[0].AchievedAt

	// dropping below an achieved milestone never un-achieves it,
	// and re-sweeping never restamps it
	g, err = svc.AddProgress(user.ID, g.ID, 70, "", time.Now())
	require.NoError(t, err)
	assert.True(t, g.Milestones[0].Achieved)
	assert.Equal(t, firstStamp.Unix(), g.Milestones[0].AchievedAt.Unix())
}

func TestAddProgressAutoCompletes(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewGoalService(db)

	g := activeGoal(t, svc, user.ID, GoalInput{
		Title:       "Run 50 km",
		Type:        models.GoalTypeChallenge,
		TargetValue: 50,
	})

	g, err := svc.AddProgress(user.ID, g.ID, 52, "final push", time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.GoalStatusCompleted, g.Status)
	require.NotNil(t, g.CompletedAt)
	assert.InDelta(t, 100, g.ProgressPct, 0.001, "progress is clamped at 100")

	// progress on a completed goal is rejected
	_, err = svc.AddProgress(user.ID, g.ID, 60, "", time.Now())
	assert.Error(t, err)
}

func TestReductionGoalProgressAndMilestones(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewGoalService(db)

	// lose 10 kg, expressed as deltas
	g := activeGoal(t, svc, user.ID, GoalInput{
		Title:       "Cut",
		Type:        models.GoalTypeReduction,
		Category:    "weight",
		TargetValue: -10,
		Milestones:  []MilestoneInput{{Title: "halfway", TargetValue: -5}},
	})

	g, err := svc.AddProgress(user.ID, g.ID, -4, "", time.Now())
	require.NoError(t, err)
	assert.InDelta(t, 40, g.ProgressPct, 0.001)
	assert.False(t, g.Milestones[0].Achieved)

	g, err = svc.AddProgress(user.ID, g.ID, -6, "", time.Now())
	require.NoError(t, err)
	assert.True(t, g.Milestones[0].Achieved, "5 kg lost of the 10 kg target")
}

func TestAddProgressWritesOneHistoryRowPerCall(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewGoalService(db)

	g := activeGoal(t, svc, user.ID, GoalInput{
		Title:       "History",
		Type:        models.GoalTypeTarget,
		TargetValue: 100,
	})

	for _, v := range []float64{10, 20, 30} {
		_, err := svc.AddProgress(user.ID, g.ID, v, "", time.Now())
		require.NoError(t, err)
	}

	var rows int64
	require.NoError(t, db.Model(&models.GoalProgressUpdate{}).Where("goal_id = ?", g.ID).Count(&rows).Error)
	assert.EqualValues(t, 3, rows)

	g, err := svc.GetGoal(user.ID, g.ID)
	require.NoError(t, err)
	require.Len(t, g.Updates, 3)
	assert.InDelta(t, 30, g.Updates[2].Value, 0.001)
	assert.InDelta(t, 30, g.CurrentValue, 0.001)
}

func TestStatusTransitions(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewGoalService(db)

	g, err := svc.CreateGoal(user.ID, GoalInput{
		Title:      "Draft First",
		Type:       models.GoalTypeHabit,
		TargetDate: time.Now().AddDate(0, 1, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, models.GoalStatusDraft, g.Status)

	// draft cannot complete directly
	_, err = svc.UpdateStatus(user.ID, g.ID, models.GoalStatusCompleted)
	assert.Error(t, err)

	g, err = svc.UpdateStatus(user.ID, g.ID, models.GoalStatusActive)
	require.NoError(t, err)

	g, err = svc.UpdateStatus(user.ID, g.ID, models.GoalStatusPaused)
	require.NoError(t, err)
	assert.Equal(t, models.GoalStatusPaused, g.Status)

	g, err = svc.UpdateStatus(user.ID, g.ID, models.GoalStatusActive)
	require.NoError(t, err)

	g, err = svc.UpdateStatus(user.ID, g.ID, models.GoalStatusCompleted)
	require.NoError(t, err)
	require.NotNil(t, g.CompletedAt)

	// administrative reopen clears the completion stamp
	g, err = svc.UpdateStatus(user.ID, g.ID, models.GoalStatusActive)
	require.NoError(t, err)
	assert.Nil(t, g.CompletedAt)
}

func TestActiveGoalExpiresPastTargetDate(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewGoalService(db)

	g := activeGoal(t, svc, user.ID, GoalInput{
		Title:       "Too Late",
		Type:        models.GoalTypeTarget,
		TargetValue: 100,
		StartDate:   time.Now().AddDate(0, 0, -30),
		TargetDate:  time.Now().Add(time.Second),
	})
	require.Equal(t, models.GoalStatusActive, g.Status)

	time.Sleep(1100 * time.Millisecond)

	g, err := svc.AddProgress(user.ID, g.ID, 10, "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.GoalStatusExpired, g.Status)
	assert.Nil(t, g.CompletedAt)
}

func TestUpdateGoalEditsFields(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewGoalService(db)

	g := activeGoal(t, svc, user.ID, GoalInput{
		Title:       "Run 30 km",
		Type:        models.GoalTypeTarget,
		TargetValue: 30,
	})

	g, err := svc.UpdateGoal(user.ID, g.ID, GoalUpdateInput{
		Title:       ptr("Run 40 km"),
		TargetValue: ptr(40.0),
	})
	require.NoError(t, err)
	assert.Equal(t, "Run 40 km", g.Title)
	assert.InDelta(t, 40, g.TargetValue, 0.001)

	// a target date before the start date is rejected
	_, err = svc.UpdateGoal(user.ID, g.ID, GoalUpdateInput{
		TargetDate: ptr(g.StartDate.AddDate(0, 0, -1)),
	})
	assert.Error(t, err)
}

func TestUpdateGoalLoweringTargetAutoCompletes(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewGoalService(db)

	g := activeGoal(t, svc, user.ID, GoalInput{
		Title:       "Sessions",
		Type:        models.GoalTypeHabit,
		TargetValue: 20,
	})
	g, err := svc.AddProgress(user.ID, g.ID, 12, "", time.Now())
	require.NoError(t, err)

	// lowering the target below the current value completes the goal
	g, err = svc.UpdateGoal(user.ID, g.ID, GoalUpdateInput{TargetValue: ptr(10.0)})
	require.NoError(t, err)
	assert.Equal(t, models.GoalStatusCompleted, g.Status)
	require.NotNil(t, g.CompletedAt)
}

func TestReopenExpiredGoalAfterDeadlineExtension(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewGoalService(db)

	g := activeGoal(t, svc, user.ID, GoalInput{
		Title:       "Second Chance",
		Type:        models.GoalTypeTarget,
		TargetValue: 100,
		StartDate:   time.Now().AddDate(0, 0, -30),
		TargetDate:  time.Now().Add(time.Second),
	})

	time.Sleep(1100 * time.Millisecond)

	g, err := svc.AddProgress(user.ID, g.ID, 10, "", time.Now())
	require.NoError(t, err)
	require.Equal(t, models.GoalStatusExpired, g.Status)

	// extending the deadline does not reopen by itself
	g, err = svc.UpdateGoal(user.ID, g.ID, GoalUpdateInput{
		TargetDate: ptr(time.Now().AddDate(0, 1, 0)),
	})
	require.NoError(t, err)
	assert.Equal(t, models.GoalStatusExpired, g.Status)

	// with the new deadline the reopen sticks instead of re-expiring
	g, err = svc.UpdateStatus(user.ID, g.ID, models.GoalStatusActive)
	require.NoError(t, err)
	assert.Equal(t, models.GoalStatusActive, g.Status)

	g, err = svc.GetGoal(user.ID, g.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GoalStatusActive, g.Status)

	_, err = svc.AddProgress(user.ID, g.ID, 20, "back at it", time.Now())
	require.NoError(t, err)
}

func TestSyncWeightReductionGoal(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	goals := NewGoalService(db)
	weights := NewWeightService(db)

	start := time.Now().AddDate(0, 0, -20)

	// baseline before the goal started, latest after
	_, err := weights.LogEntry(user.ID, WeightEntryInput{
		WeightValue: 95, WeightUnit: "kg", MeasuredAt: start.AddDate(0, 0, -2),
	})
	require.NoError(t, err)
	_, err = weights.LogEntry(user.ID, WeightEntryInput{
		WeightValue: 91, WeightUnit: "kg", MeasuredAt: time.Now(),
	})
	require.NoError(t, err)

	g := activeGoal(t, goals, user.ID, GoalInput{
		Title:       "Lose 10",
		Type:        models.GoalTypeReduction,
		Category:    "weight",
		TargetValue: -10,
		StartDate:   start,
	})

	g, err = goals.SyncGoal(user.ID, g.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4, g.CurrentValue, 0.001, "95 kg baseline minus 91 kg latest")
	assert.InDelta(t, 40, g.ProgressPct, 0.001)
}

func TestSyncWorkoutGoalCountsCompleted(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	goals := NewGoalService(db)
	workouts := NewWorkoutService(db)

	for i := 0; i < 3; i++ {
		w, err := workouts.CreateWorkout(user.ID, WorkoutInput{Name: "Session", Type: "strength"})
		require.NoError(t, err)
		if i < 2 {
			_, err = workouts.CompleteWorkout(user.ID, w.ID)
			require.NoError(t, err)
		}
	}

	g := activeGoal(t, goals, user.ID, GoalInput{
		Title:       "12 sessions",
		Type:        models.GoalTypeHabit,
		Category:    "workout",
		TargetValue: 12,
		StartDate:   time.Now().AddDate(0, 0, -1),
	})

	g, err := goals.SyncGoal(user.ID, g.ID)
	require.NoError(t, err)
	assert.InDelta(t, 2, g.CurrentValue, 0.001, "only completed sessions count")
}

func TestSyncRejectsUnsyncableCategory(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewGoalService(db)

	g := activeGoal(t, svc, user.ID, GoalInput{
		Title: "Manual Only", Type: models.GoalTypeTarget, Category: "custom", TargetValue: 10,
	})
	_, err := svc.SyncGoal(user.ID, g.ID)
	assert.Error(t, err)
}

func TestGoalAlertsPersisted(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewGoalService(db)

	InitAlertDeps(db, nil, nil)
	defer InitAlertDeps(nil, nil, nil)

	g := activeGoal(t, svc, user.ID, GoalInput{
		Title:       "Alerting",
		Type:        models.GoalTypeTarget,
		TargetValue: 10,
		Milestones:  []MilestoneInput{{Title: "half", TargetValue: 5}},
	})

	_, err := svc.AddProgress(user.ID, g.ID, 10, "", time.Now())
	require.NoError(t, err)

	alerts, err := ListAlerts(db, user.ID, 10)
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	types := []string{alerts[0].Type, alerts[1].Type}
	assert.Contains(t, types, "milestone")
	assert.Contains(t, types, "goal-completed")
}

func TestListGoalsFilters(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewGoalService(db)

	activeGoal(t, svc, user.ID, GoalInput{Title: "A", Type: models.GoalTypeTarget, Category: "weight", TargetValue: 5})
	activeGoal(t, svc, user.ID, GoalInput{Title: "B", Type: models.GoalTypeHabit, Category: "workout", TargetValue: 5})

	all, err := svc.ListGoals(user.ID, "", "", "", 1, 20)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	habits, err := svc.ListGoals(user.ID, "", models.GoalTypeHabit, "", 1, 20)
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, "B", habits[0].Title)

	none, err := svc.ListGoals(user.ID, models.GoalStatusCompleted, "", "", 1, 20)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeleteGoalRemovesChildren(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	svc := NewGoalService(db)

	g := activeGoal(t, svc, user.ID, GoalInput{
		Title: "Gone", Type: models.GoalTypeTarget, TargetValue: 10,
		Milestones: []MilestoneInput{{Title: "m", TargetValue: 5}},
	})
	_, err := svc.AddProgress(user.ID, g.ID, 2, "", time.Now())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGoal(user.ID, g.ID))

	var milestones, updates int64
	require.NoError(t, db.Model(&models.GoalMilestone{}).Where("goal_id = ?", g.ID).Count(&milestones).Error)
	require.NoError(t, db.Model(&models.GoalProgressUpdate{}).Where("goal_id = ?", g.ID).Count(&updates).Error)
	assert.Zero(t, milestones)
	assert.Zero(t, updates)
}
