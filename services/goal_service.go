package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/IzhanHassan007/fitness-tracker-app-sub001/metrics"
	"github.com/IzhanHassan007/fitness-tracker-app-sub001/models"
)

type GoalService struct {
	db *gorm.DB
}

func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{db: db}
}

type MilestoneInput struct {
	Title       string  `json:"title"`
	TargetValue float64 `json:"target_value"`
}

type GoalInput struct {
	Title        string           `json:"title" binding:"required"`
	Description  string           `json:"description"`
	Type         string           `json:"type" binding:"required,oneof=target habit reduction maintenance challenge"`
	Category     string           `json:"category" binding:"omitempty,oneof=weight workout nutrition custom"`
	TargetValue  float64          `json:"target_value"`
	CurrentValue float64          `json:"current_value"`
	Unit         string           `json:"unit"`
	StartDate    time.Time        `json:"start_date"`
	TargetDate   time.Time        `json:"target_date" binding:"required"`
	Activate     bool             `json:"activate"`
	Milestones   []MilestoneInput `json:"milestones"`
}

// GoalDetail carries the stored goal plus every derived field, computed
// fresh on each read.
type GoalDetail struct {
	models.Goal
	ProgressPct     float64  `json:"progress_pct"`
	TimePct         float64  `json:"time_pct"`
	HealthStatus    string   `json:"health_status"`
	DaysRemaining   int      `json:"days_remaining"`
	Recommendations []string `json:"recommendations,omitempty"`
}

func (s *GoalService) CreateGoal(userID uint, in GoalInput) (*GoalDetail, error) {
	if in.StartDate.IsZero() {
		in.StartDate = time.Now()
	}
	if !in.TargetDate.After(in.StartDate) {
		return nil, fmt.Errorf("target date must be after start date")
	}

	g := &models.Goal{
		UserID:       userID,
		Title:        in.Title,
		Description:  in.Description,
		Type:         in.Type,
		Status:       models.GoalStatusDraft,
		Category:     in.Category,
		TargetValue:  in.TargetValue,
		CurrentValue: in.CurrentValue,
		Unit:         in.Unit,
		StartDate:    in.StartDate,
		TargetDate:   in.TargetDate,
	}
	if in.Activate {
		g.Status = models.GoalStatusActive
	}
	for _, m := range in.Milestones {
		g.Milestones = append(g.Milestones, models.GoalMilestone{Title: m.Title, TargetValue: m.TargetValue})
	}
	sortMilestones(g.Milestones)

	s.normalizeGoal(g, time.Now())

	if err := s.db.Create(g).Error; err != nil {
		return nil, err
	}
	return s.GetGoal(userID, g.ID)
}

func (s *GoalService) GetGoal(userID, goalID uint) (*GoalDetail, error) {
	g, err := s.loadGoal(userID, goalID)
	if err != nil {
		return nil, err
	}
	return s.detailOf(g, time.Now()), nil
}

func (s *GoalService) ListGoals(userID uint, status, goalType, category string, page, limit int) ([]GoalDetail, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	q := s.db.
		Preload("Milestones", func(db *gorm.DB) *gorm.DB { return db.Order("target_value ASC") }).
		Preload("Updates", func(db *gorm.DB) *gorm.DB { return db.Order("recorded_at ASC") }).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if goalType != "" {
		q = q.Where("type = ?", goalType)
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var goals []models.Goal
	if err := q.Offset((page - 1) * limit).Limit(limit).Find(&goals).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]GoalDetail, 0, len(goals))
	for i := range goals {
		out = append(out, *s.detailOf(&goals[i], now))
	}
	return out, nil
}

// AddProgress appends an update to the history, moves the current value and
// runs the normalization sweep (milestones, auto-completion, expiry) before
// saving. Alerts fire for every milestone reached and for completion.
func (s *GoalService) AddProgress(userID, goalID uint, value float64, note string, recordedAt time.Time) (*GoalDetail, error) {
	g, err := s.loadGoal(userID, goalID)
	if err != nil {
		return nil, err
	}
	if g.Status != models.GoalStatusActive {
		return nil, fmt.Errorf("cannot record progress on a %s goal", g.Status)
	}
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	update := models.GoalProgressUpdate{GoalID: g.ID, Value: value, Note: note, RecordedAt: recordedAt}
	g.CurrentValue = value

	wasCompleted := g.Status == models.GoalStatusCompleted
	achieved := s.normalizeGoal(g, time.Now())

	// history row and goal state land together or not at all
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&update).Error; err != nil {
			return err
		}
		return s.saveGoal(tx, g)
	})
	if err != nil {
		return nil, err
	}
	g.Updates = append(g.Updates, update)

	for _, m := range achieved {
		EmitAlert(userID, "milestone", fmt.Sprintf("Milestone reached: %s (%s)", m.Title, g.Title))
	}
	if !wasCompleted && g.Status == models.GoalStatusCompleted {
		EmitAlert(userID, "goal-completed", fmt.Sprintf("Goal completed: %s", g.Title))
	}

	return s.GetGoal(userID, g.ID)
}

// UpdateStatus performs explicit transitions. Reopening a completed or
// expired goal back to active clears the completion timestamp.
func (s *GoalService) UpdateStatus(userID, goalID uint, newStatus string) (*GoalDetail, error) {
	g, err := s.loadGoal(userID, goalID)
	if err != nil {
		return nil, err
	}
	if !statusTransitionAllowed(g.Status, newStatus) {
		return nil, fmt.Errorf("cannot move goal from %s to %s", g.Status, newStatus)
	}

	if newStatus == models.GoalStatusActive && (g.Status == models.GoalStatusCompleted || g.Status == models.GoalStatusExpired) {
		g.CompletedAt = nil
	}
	if newStatus == models.GoalStatusCompleted && g.CompletedAt == nil {
		now := time.Now()
		g.CompletedAt = &now
	}
	g.Status = newStatus
	s.normalizeGoal(g, time.Now())

	if err := s.saveGoal(s.db, g); err != nil {
		return nil, err
	}
	return s.GetGoal(userID, g.ID)
}

type GoalUpdateInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	TargetValue *float64   `json:"target_value"`
	TargetDate  *time.Time `json:"target_date"`
	Unit        *string    `json:"unit"`
}

// UpdateGoal edits the mutable fields; nil fields are left untouched.
// Moving the target date forward is how an expired goal gets a fresh
// deadline before being reopened to active.
func (s *GoalService) UpdateGoal(userID, goalID uint, in GoalUpdateInput) (*GoalDetail, error) {
	g, err := s.loadGoal(userID, goalID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		g.Title = *in.Title
	}
	if in.Description != nil {
		g.Description = *in.Description
	}
	if in.TargetValue != nil {
		g.TargetValue = *in.TargetValue
	}
	if in.Unit != nil {
		g.Unit = *in.Unit
	}
	if in.TargetDate != nil {
		if !in.TargetDate.After(g.StartDate) {
			return nil, fmt.Errorf("target date must be after start date")
		}
		g.TargetDate = *in.TargetDate
	}

	s.normalizeGoal(g, time.Now())
	if err := s.saveGoal(s.db, g); err != nil {
		return nil, err
	}
	return s.GetGoal(userID, g.ID)
}

func statusTransitionAllowed(from, to string) bool {
	switch from {
	case models.GoalStatusDraft:
		return to == models.GoalStatusActive || to == models.GoalStatusAbandoned
	case models.GoalStatusActive:
		return to == models.GoalStatusCompleted || to == models.GoalStatusPaused || to == models.GoalStatusAbandoned
	case models.GoalStatusPaused:
		return to == models.GoalStatusActive || to == models.GoalStatusAbandoned
	case models.GoalStatusCompleted, models.GoalStatusExpired:
		// administrative reopen
		return to == models.GoalStatusActive
	}
	return false
}

// SyncGoal refreshes the current value from the owning domain: weight goals
// read the latest weight entry (reduction goals track kg lost against the
// baseline at the start date), workout goals count completed sessions since
// the start date.
func (s *GoalService) SyncGoal(userID, goalID uint) (*GoalDetail, error) {
	g, err := s.loadGoal(userID, goalID)
	if err != nil {
		return nil, err
	}

	switch g.Category {
	case "weight":
		var latest models.WeightEntry
		if err := s.db.Where("user_id = ?", userID).Order("measured_at DESC").First(&latest).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("no weight entries to sync from")
			}
			return nil, err
		}
		latestKg := metrics.ToKilograms(latest.WeightValue, latest.WeightUnit)

		if g.Type == models.GoalTypeReduction {
			baseline, err := s.baselineWeight(userID, g.StartDate, latestKg)
			if err != nil {
				return nil, err
			}
			g.CurrentValue = baseline - latestKg // kg lost so far
		} else {
			g.CurrentValue = latestKg
		}

	case "workout":
		var count int64
		if err := s.db.Model(&models.Workout{}).
			Where("user_id = ? AND status = ? AND created_at >= ?", userID, models.WorkoutStatusCompleted, g.StartDate).
			Count(&count).Error; err != nil {
			return nil, err
		}
		g.CurrentValue = float64(count)

	default:
		return nil, fmt.Errorf("goal category %q cannot be synced", g.Category)
	}

	s.normalizeGoal(g, time.Now())
	if err := s.saveGoal(s.db, g); err != nil {
		return nil, err
	}
	return s.GetGoal(userID, g.ID)
}

func (s *GoalService) baselineWeight(userID uint, startDate time.Time, fallbackKg float64) (float64, error) {
	// prefer the last reading before the goal started, else the first after
	var entry models.WeightEntry
	err := s.db.Where("user_id = ? AND measured_at <= ?", userID, startDate).
		Order("measured_at DESC").First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = s.db.Where("user_id = ? AND measured_at > ?", userID, startDate).
			Order("measured_at ASC").First(&entry).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fallbackKg, nil
	}
	if err != nil {
		return 0, err
	}
	return metrics.ToKilograms(entry.WeightValue, entry.WeightUnit), nil
}

func (s *GoalService) DeleteGoal(userID, goalID uint) error {
	g, err := s.loadGoal(userID, goalID)
	if err != nil {
		return err
	}
	if err := s.db.Where("goal_id = ?", g.ID).Delete(&models.GoalMilestone{}).Error; err != nil {
		return err
	}
	if err := s.db.Where("goal_id = ?", g.ID).Delete(&models.GoalProgressUpdate{}).Error; err != nil {
		return err
	}
	return s.db.Delete(g).Error
}

// Recommendations evaluates the advisory rules for a goal. They are
// independent; several can fire at once.
func (s *GoalService) Recommendations(g *models.Goal, now time.Time) []string {
	goalPct := metrics.ProgressPercentage(g.Type, g.CurrentValue, g.TargetValue)
	timePct := metrics.TimeProgressPercentage(g.StartDate, g.TargetDate, now)
	daysRemaining := int(math.Ceil(g.TargetDate.Sub(now).Hours() / 24))

	var lastUpdate *time.Time
	if n := len(g.Updates); n > 0 {
		lastUpdate = &g.Updates[n-1].RecordedAt
	}
	return metrics.Recommendations(goalPct, timePct, daysRemaining, lastUpdate, now)
}

// normalizeGoal is the explicit pre-save step run by every write path:
//   - milestones at or below the new current value are marked achieved,
//     stamped once, and the list stays sorted ascending by target value;
//   - an active goal whose progress reached 100% flips to completed, with
//     the completion timestamp stamped exactly once;
//   - an active goal whose target date has passed with progress below 100%
//     flips to expired.
//
// Returns the milestones newly achieved by this pass.
func (s *GoalService) normalizeGoal(g *models.Goal, now time.Time) []models.GoalMilestone {
	sortMilestones(g.Milestones)

	var achieved []models.GoalMilestone
	for i := range g.Milestones {
		m := &g.Milestones[i]
		if m.Achieved {
			continue
		}
		if milestoneReached(g.Type, g.CurrentValue, m.TargetValue) {
			m.Achieved = true
			at := now
			m.AchievedAt = &at
			achieved = append(achieved, *m)
		}
	}

	pct := metrics.ProgressPercentage(g.Type, g.CurrentValue, g.TargetValue)

	if g.Status == models.GoalStatusActive && pct >= 100 {
		g.Status = models.GoalStatusCompleted
		if g.CompletedAt == nil { // idempotent: never overwrite the stamp
			at := now
			g.CompletedAt = &at
		}
	}

	if g.Status == models.GoalStatusActive && now.After(g.TargetDate) && pct < 100 {
		g.Status = models.GoalStatusExpired
	}

	return achieved
}

// Reduction goals store deltas, so milestone comparison uses magnitudes
// there; everywhere else the literal targetValue ≤ currentValue rule applies.
func milestoneReached(goalType string, current, milestoneTarget float64) bool {
	if goalType == models.GoalTypeReduction {
		return math.Abs(current) >= math.Abs(milestoneTarget)
	}
	return milestoneTarget <= current
}

func sortMilestones(ms []models.GoalMilestone) {
	sort.SliceStable(ms, func(i, j int) bool {
		return math.Abs(ms[i].TargetValue) < math.Abs(ms[j].TargetValue)
	})
}

func (s *GoalService) loadGoal(userID, goalID uint) (*models.Goal, error) {
	var g models.Goal
	err := s.db.
		Preload("Milestones", func(db *gorm.DB) *gorm.DB { return db.Order("target_value ASC") }).
		Preload("Updates", func(db *gorm.DB) *gorm.DB { return db.Order("recorded_at ASC") }).
		Where("id = ? AND user_id = ?", goalID, userID).
		First(&g).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *GoalService) saveGoal(tx *gorm.DB, g *models.Goal) error {
	for i := range g.Milestones {
		if err := tx.Save(&g.Milestones[i]).Error; err != nil {
			return err
		}
	}
	return tx.Omit("Milestones", "Updates").Save(g).Error
}

func (s *GoalService) detailOf(g *models.Goal, now time.Time) *GoalDetail {
	daysRemaining := int(math.Ceil(g.TargetDate.Sub(now).Hours() / 24))
	if daysRemaining < 0 {
		daysRemaining = 0
	}
	goalPct := metrics.ProgressPercentage(g.Type, g.CurrentValue, g.TargetValue)
	timePct := metrics.TimeProgressPercentage(g.StartDate, g.TargetDate, now)
	return &GoalDetail{
		Goal:            *g,
		ProgressPct:     goalPct,
		TimePct:         timePct,
		HealthStatus:    metrics.HealthStatus(g.Status, goalPct, timePct),
		DaysRemaining:   daysRemaining,
		Recommendations: s.Recommendations(g, now),
	}
}
