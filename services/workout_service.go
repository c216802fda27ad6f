package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/IzhanHassan007/fitness-tracker-app-sub001/metrics"
	"github.com/IzhanHassan007/fitness-tracker-app-sub001/models"
)

type WorkoutService struct {
	db *gorm.DB
}

func NewWorkoutService(db *gorm.DB) *WorkoutService {
	return &WorkoutService{db: db}
}

type WorkoutSetInput struct {
	Reps        int     `json:"reps"`
	WeightValue float64 `json:"weight_value"`
	WeightUnit  string  `json:"weight_unit"`
	DurationSec int     `json:"duration_sec"`
	DistanceM   float64 `json:"distance_m"`
	RestSec     int     `json:"rest_sec"`
	Completed   bool    `json:"completed"`
}

type WorkoutExerciseInput struct {
	Name        string            `json:"name" binding:"required"`
	MuscleGroup string            `json:"muscle_group"`
	Sets        []WorkoutSetInput `json:"sets"`
}

type WorkoutInput struct {
	Name               string                 `json:"name" binding:"required"`
	Type               string                 `json:"type" binding:"required,oneof=strength cardio hiit yoga pilates crossfit powerlifting bodybuilding endurance flexibility sports functional circuit other"`
	Intensity          string                 `json:"intensity" binding:"omitempty,oneof=low moderate high"`
	PlannedDurationMin int                    `json:"planned_duration_min"`
	ActualDurationMin  *int                   `json:"actual_duration_min"`
	StartedAt          *time.Time             `json:"started_at"`
	EndedAt            *time.Time             `json:"ended_at"`
	Notes              string                 `json:"notes"`
	Exercises          []WorkoutExerciseInput `json:"exercises"`
}

// normalizeWorkout is the explicit pre-save step: per-exercise and aggregate
// volumes are recomputed from sets, the actual duration is derived from the
// timestamps unless the client supplied an override, setting an end time
// implies completion, and completed sessions get a calorie estimate if the
// client did not provide one.
func normalizeWorkout(w *models.Workout, userWeightKg float64) {
	w.TotalVolume = 0
	for i := range w.Exercises {
		w.Exercises[i].TotalVolume = metrics.ExerciseVolume(w.Exercises[i].Sets)
		w.TotalVolume += w.Exercises[i].TotalVolume
	}

	if w.ActualDurationMin == nil {
		if min, ok := metrics.ActualDuration(w.StartedAt, w.EndedAt); ok {
			w.ActualDurationMin = &min
		}
	}

	if w.EndedAt != nil && (w.Status == models.WorkoutStatusPlanned || w.Status == models.WorkoutStatusInProgress) {
		w.Status = models.WorkoutStatusCompleted
	}

	if w.Status == models.WorkoutStatusCompleted && w.CaloriesBurned == nil && w.ActualDurationMin != nil {
		cal := metrics.CaloriesBurned(w.Type, float64(*w.ActualDurationMin), userWeightKg)
		w.CaloriesBurned = &cal
	}
}

func (s *WorkoutService) userWeight(userID uint) float64 {
	var u models.User
	if err := s.db.First(&u, userID).Error; err != nil || u.WeightKg <= 0 {
		return 70 // reference weight when no profile weight is on file
	}
	return u.WeightKg
}

func (s *WorkoutService) CreateWorkout(userID uint, in WorkoutInput) (*models.Workout, error) {
	w := &models.Workout{
		UserID:             userID,
		Name:               in.Name,
		Type:               in.Type,
		Intensity:          in.Intensity,
		Status:             models.WorkoutStatusPlanned,
		PlannedDurationMin: in.PlannedDurationMin,
		ActualDurationMin:  in.ActualDurationMin,
		StartedAt:          in.StartedAt,
		EndedAt:            in.EndedAt,
		Notes:              in.Notes,
	}
	if in.StartedAt != nil {
		w.Status = models.WorkoutStatusInProgress
	}
	for i, exIn := range in.Exercises {
		ex := models.WorkoutExercise{Name: exIn.Name, MuscleGroup: exIn.MuscleGroup, Position: i}
		for j, setIn := range exIn.Sets {
			ex.Sets = append(ex.Sets, newSet(setIn, j))
		}
		w.Exercises = append(w.Exercises, ex)
	}

	normalizeWorkout(w, s.userWeight(userID))

	if err := s.db.Create(w).Error; err != nil {
		return nil, err
	}
	return s.GetWorkout(userID, w.ID)
}

func (s *WorkoutService) GetWorkout(userID, workoutID uint) (*models.Workout, error) {
	var w models.Workout
	err := s.db.
		Preload("Exercises", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Exercises.Sets", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ? AND user_id = ?", workoutID, userID).
		First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *WorkoutService) ListWorkouts(userID uint, status, workoutType string, from, to *time.Time, page, limit int) ([]models.Workout, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	q := s.db.
		Preload("Exercises", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Exercises.Sets", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if workoutType != "" {
		q = q.Where("type = ?", workoutType)
	}
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("created_at < ?", *to)
	}

	var workouts []models.Workout
	err := q.Offset((page - 1) * limit).Limit(limit).Find(&workouts).Error
	return workouts, err
}

// StartWorkout moves planned → in-progress and stamps the start time.
func (s *WorkoutService) StartWorkout(userID, workoutID uint) (*models.Workout, error) {
	w, err := s.GetWorkout(userID, workoutID)
	if err != nil {
		return nil, err
	}
	if w.Status != models.WorkoutStatusPlanned {
		return nil, fmt.Errorf("cannot start a %s workout", w.Status)
	}
	now := time.Now()
	w.Status = models.WorkoutStatusInProgress
	if w.StartedAt == nil {
		w.StartedAt = &now
	}
	if err := s.db.Save(w).Error; err != nil {
		return nil, err
	}
	return w, nil
}

// CompleteWorkout stamps the end time if absent, derives the duration and
// fills in the calorie estimate if the client did not supply one.
func (s *WorkoutService) CompleteWorkout(userID, workoutID uint) (*models.Workout, error) {
	w, err := s.GetWorkout(userID, workoutID)
	if err != nil {
		return nil, err
	}
	if w.Status == models.WorkoutStatusCompleted || w.Status == models.WorkoutStatusSkipped {
		return nil, fmt.Errorf("workout already %s", w.Status)
	}
	now := time.Now()
	w.Status = models.WorkoutStatusCompleted
	if w.EndedAt == nil {
		w.EndedAt = &now
	}
	normalizeWorkout(w, s.userWeight(userID))
	if err := s.db.Save(w).Error; err != nil {
		return nil, err
	}
	return w, nil
}

func (s *WorkoutService) SkipWorkout(userID, workoutID uint) (*models.Workout, error) {
	w, err := s.GetWorkout(userID, workoutID)
	if err != nil {
		return nil, err
	}
	if w.Status == models.WorkoutStatusCompleted {
		return nil, fmt.Errorf("cannot skip a completed workout")
	}
	w.Status = models.WorkoutStatusSkipped
	if err := s.db.Save(w).Error; err != nil {
		return nil, err
	}
	return w, nil
}

// AddExercise appends an exercise (with sets) to an in-flight session and
// recomputes the volumes.
func (s *WorkoutService) AddExercise(userID, workoutID uint, in WorkoutExerciseInput) (*models.Workout, error) {
	w, err := s.GetWorkout(userID, workoutID)
	if err != nil {
		return nil, err
	}

	ex := models.WorkoutExercise{
		WorkoutID:   w.ID,
		Name:        in.Name,
		MuscleGroup: in.MuscleGroup,
		Position:    len(w.Exercises),
	}
	for j, setIn := range in.Sets {
		ex.Sets = append(ex.Sets, newSet(setIn, j))
	}
	ex.TotalVolume = metrics.ExerciseVolume(ex.Sets)
	if err := s.db.Create(&ex).Error; err != nil {
		return nil, err
	}
	return s.recomputeAndReload(userID, w.ID)
}

// AddSet appends a set to an exercise of the user's workout and recomputes
// the exercise and workout volumes.
func (s *WorkoutService) AddSet(userID, workoutID, exerciseID uint, in WorkoutSetInput) (*models.Workout, error) {
	w, err := s.GetWorkout(userID, workoutID)
	if err != nil {
		return nil, err
	}

	var target *models.WorkoutExercise
	for i := range w.Exercises {
		if w.Exercises[i].ID == exerciseID {
			target = &w.Exercises[i]
			break
		}
	}
	if target == nil {
		return nil, gorm.ErrRecordNotFound
	}

	set := newSet(in, len(target.Sets))
	set.ExerciseID = target.ID
	if err := s.db.Create(&set).Error; err != nil {
		return nil, err
	}
	return s.recomputeAndReload(userID, w.ID)
}

func (s *WorkoutService) UpdateWorkout(userID, workoutID uint, in WorkoutInput) (*models.Workout, error) {
	w, err := s.GetWorkout(userID, workoutID)
	if err != nil {
		return nil, err
	}

	w.Name = in.Name
	w.Type = in.Type
	w.Intensity = in.Intensity
	w.PlannedDurationMin = in.PlannedDurationMin
	w.ActualDurationMin = in.ActualDurationMin
	w.StartedAt = in.StartedAt
	w.EndedAt = in.EndedAt
	w.Notes = in.Notes

	// replace children wholesale
	exerciseIDs := s.db.Model(&models.WorkoutExercise{}).Select("id").Where("workout_id = ?", w.ID)
	if err := s.db.Where("exercise_id IN (?)", exerciseIDs).Delete(&models.WorkoutSet{}).Error; err != nil {
		return nil, err
	}
	if err := s.db.Where("workout_id = ?", w.ID).Delete(&models.WorkoutExercise{}).Error; err != nil {
		return nil, err
	}
	w.Exercises = nil
	for i, exIn := range in.Exercises {
		ex := models.WorkoutExercise{WorkoutID: w.ID, Name: exIn.Name, MuscleGroup: exIn.MuscleGroup, Position: i}
		for j, setIn := range exIn.Sets {
			ex.Sets = append(ex.Sets, newSet(setIn, j))
		}
		w.Exercises = append(w.Exercises, ex)
	}

	normalizeWorkout(w, s.userWeight(userID))

	if err := s.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(w).Error; err != nil {
		return nil, err
	}
	return s.GetWorkout(userID, w.ID)
}

func (s *WorkoutService) DeleteWorkout(userID, workoutID uint) error {
	w, err := s.GetWorkout(userID, workoutID)
	if err != nil {
		return err
	}
	exerciseIDs := s.db.Model(&models.WorkoutExercise{}).Select("id").Where("workout_id = ?", w.ID)
	if err := s.db.Where("exercise_id IN (?)", exerciseIDs).Delete(&models.WorkoutSet{}).Error; err != nil {
		return err
	}
	if err := s.db.Where("workout_id = ?", w.ID).Delete(&models.WorkoutExercise{}).Error; err != nil {
		return err
	}
	return s.db.Delete(w).Error
}

func (s *WorkoutService) recomputeAndReload(userID, workoutID uint) (*models.Workout, error) {
	w, err := s.GetWorkout(userID, workoutID)
	if err != nil {
		return nil, err
	}
	normalizeWorkout(w, s.userWeight(userID))
	for i := range w.Exercises {
		if err := s.db.Model(&w.Exercises[i]).Update("total_volume", w.Exercises[i].TotalVolume).Error; err != nil {
			return nil, err
		}
	}
	if err := s.db.Model(w).Update("total_volume", w.TotalVolume).Error; err != nil {
		return nil, err
	}
	return w, nil
}

func newSet(in WorkoutSetInput, position int) models.WorkoutSet {
	unit := in.WeightUnit
	if unit == "" {
		unit = "kg"
	}
	return models.WorkoutSet{
		Position:    position,
		Reps:        in.Reps,
		WeightValue: in.WeightValue,
		WeightUnit:  unit,
		DurationSec: in.DurationSec,
		DistanceM:   in.DistanceM,
		RestSec:     in.RestSec,
		Completed:   in.Completed,
	}
}
