package services

import (
	"context"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/IzhanHassan007/fitness-tracker-app-sub001/metrics"
	"github.com/IzhanHassan007/fitness-tracker-app-sub001/models"
)

type AnalyticsService struct{ db *gorm.DB }

func NewAnalyticsService(db *gorm.DB) *AnalyticsService { return &AnalyticsService{db: db} }

// ---------- Weight trend ----------

type WeightPoint struct {
	Date     string  `json:"date"`
	WeightKg float64 `json:"weight_kg"`
}

type WeightTrend struct {
	Range struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"range"`
	Entries      int           `json:"entries"`
	MinKg        float64       `json:"min_kg"`
	MaxKg        float64       `json:"max_kg"`
	AvgKg        float64       `json:"avg_kg"`
	NetChangeKg  float64       `json:"net_change_kg"`
	WeeklyRateKg float64       `json:"weekly_rate_kg"`
	Series       []WeightPoint `json:"series"`
}

func (s *AnalyticsService) WeightTrend(ctx context.Context, userID uint, from, to time.Time) (*WeightTrend, error) {
	var entries []models.WeightEntry
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND measured_at BETWEEN ? AND ?", userID, dayStartOf(from), dayEndOf(to)).
		Order("measured_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	out := &WeightTrend{}
	out.Range.From = from.Format("2006-01-02")
	out.Range.To = to.Format("2006-01-02")
	out.Entries = len(entries)
	if len(entries) == 0 {
		return out, nil
	}

	var sum float64
	out.MinKg = math.MaxFloat64
	for _, e := range entries {
		kg := metrics.ToKilograms(e.WeightValue, e.WeightUnit)
		sum += kg
		if kg < out.MinKg {
			out.MinKg = kg
		}
		if kg > out.MaxKg {
			out.MaxKg = kg
		}
		out.Series = append(out.Series, WeightPoint{
			Date:     e.MeasuredAt.Format("2006-01-02"),
			WeightKg: round2(kg),
		})
	}
	out.MinKg = round2(out.MinKg)
	out.MaxKg = round2(out.MaxKg)
	out.AvgKg = round2(sum / float64(len(entries)))

	first := entries[0]
	last := entries[len(entries)-1]
	firstKg := metrics.ToKilograms(first.WeightValue, first.WeightUnit)
	lastKg := metrics.ToKilograms(last.WeightValue, last.WeightUnit)
	out.NetChangeKg = round2(lastKg - firstKg)

	days := int(last.MeasuredAt.Sub(first.MeasuredAt).Hours() / 24)
	p := metrics.Progress(lastKg, firstKg, days, nil, nil, nil, nil)
	out.WeeklyRateKg = round2(p.WeeklyRateKg)

	return out, nil
}

// ---------- Workout stats ----------

type WorkoutTypeStats struct {
	Count    int     `json:"count"`
	Minutes  int     `json:"minutes"`
	Calories int     `json:"calories"`
	VolumeKg float64 `json:"volume_kg"`
}

type WorkoutStats struct {
	Range struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"range"`
	Completed     int                         `json:"completed"`
	Skipped       int                         `json:"skipped"`
	TotalMinutes  int                         `json:"total_minutes"`
	TotalCalories int                         `json:"total_calories"`
	TotalVolumeKg float64                     `json:"total_volume_kg"`
	ByType        map[string]WorkoutTypeStats `json:"by_type"`
}

func (s *AnalyticsService) WorkoutStats(ctx context.Context, userID uint, from, to time.Time) (*WorkoutStats, error) {
	var workouts []models.Workout
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND created_at BETWEEN ? AND ?", userID, dayStartOf(from), dayEndOf(to)).
		Find(&workouts).Error; err != nil {
		return nil, err
	}

	out := &WorkoutStats{ByType: map[string]WorkoutTypeStats{}}
	out.Range.From = from.Format("2006-01-02")
	out.Range.To = to.Format("2006-01-02")

	for _, w := range workouts {
		switch w.Status {
		case models.WorkoutStatusSkipped:
			out.Skipped++
			continue
		case models.WorkoutStatusCompleted:
			out.Completed++
		default:
			continue
		}

		ts := out.ByType[w.Type]
		ts.Count++
		if w.ActualDurationMin != nil {
			ts.Minutes += *w.ActualDurationMin
			out.TotalMinutes += *w.ActualDurationMin
		}
		if w.CaloriesBurned != nil {
			ts.Calories += *w.CaloriesBurned
			out.TotalCalories += *w.CaloriesBurned
		}
		ts.VolumeKg += w.TotalVolume
		out.TotalVolumeKg += w.TotalVolume
		out.ByType[w.Type] = ts
	}
	out.TotalVolumeKg = round2(out.TotalVolumeKg)

	return out, nil
}

// ---------- Nutrition summary ----------

type NutrAvg struct {
	AvgConsumed float64 `json:"avg_consumed"`
	AvgGoal     float64 `json:"avg_goal,omitempty"`
	AvgPercent  float64 `json:"avg_percent,omitempty"`
	Unit        string  `json:"unit,omitempty"`
}

type NutritionSummary struct {
	Range struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"range"`
	DaysCounted int                `json:"days_counted"`
	Macros      map[string]NutrAvg `json:"macros"`
	Micros      map[string]NutrAvg `json:"micros"`
	WaterMlAvg  float64            `json:"water_ml_avg"`
}

// NutritionSummary averages the day-by-day meal sums across the range,
// against each day's stored goals. Days without any meals still count in
// the denominator so the averages reflect the whole range.
func (s *AnalyticsService) NutritionSummary(ctx context.Context, userID uint, from, to time.Time) (*NutritionSummary, error) {
	start := dayStartOf(from)
	end := dayEndOf(to)

	var meals []models.Meal
	if err := s.db.WithContext(ctx).Preload("Items").
		Where("user_id = ? AND ate_at BETWEEN ? AND ?", userID, start, end).
		Find(&meals).Error; err != nil {
		return nil, err
	}

	var days []models.DailyNutrition
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, start, end).
		Find(&days).Error; err != nil {
		return nil, err
	}
	goalIdx := map[string]models.DailyNutrition{}
	for _, d := range days {
		goalIdx[d.Date.Format("2006-01-02")] = d
	}

	perDay := map[string]metrics.NutrientTotals{}
	for _, m := range meals {
		key := m.AteAt.Format("2006-01-02")
		perDay[key] = perDay[key].Add(metrics.SumFoodItems(m.Items))
	}

	nDays := 0
	for d := start; !d.After(to); d = d.AddDate(0, 0, 1) {
		nDays++
	}

	type acc struct{ sum, gsum, psum float64 }
	m := map[string]*acc{
		"calories": {}, "protein": {}, "carbs": {}, "fat": {},
		"sodium": {}, "sugar": {},
	}
	var waterSum float64

	for d := start; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		totals := perDay[key]  // zero value if no meals that day
		goals := goalIdx[key]  // zero value if no goals row
		waterSum += goals.WaterMl

		type pair struct {
			k    string
			c, g float64
		}
		for _, p := range []pair{
			{"calories", totals.Calories, goals.CalorieGoal},
			{"protein", totals.Protein, goals.ProteinGoal},
			{"carbs", totals.Carbs, goals.CarbsGoal},
			{"fat", totals.Fat, goals.FatGoal},
			{"sodium", totals.Sodium, goals.SodiumGoal},
			{"sugar", totals.Sugar, goals.SugarGoal},
		} {
			m[p.k].sum += p.c
			m[p.k].gsum += p.g
			if p.g > 0 {
				m[p.k].psum += p.c / p.g * 100
			}
		}
	}

	out := &NutritionSummary{DaysCounted: nDays}
	out.Range.From = from.Format("2006-01-02")
	out.Range.To = to.Format("2006-01-02")
	out.WaterMlAvg = avgOver(waterSum, nDays)

	out.Macros = map[string]NutrAvg{
		"calories": {AvgConsumed: avgOver(m["calories"].sum, nDays), AvgGoal: avgOver(m["calories"].gsum, nDays), AvgPercent: avgOver(m["calories"].psum, nDays), Unit: "kcal"},
		"protein":  {AvgConsumed: avgOver(m["protein"].sum, nDays), AvgGoal: avgOver(m["protein"].gsum, nDays), AvgPercent: avgOver(m["protein"].psum, nDays), Unit: "g"},
		"carbs":    {AvgConsumed: avgOver(m["carbs"].sum, nDays), AvgGoal: avgOver(m["carbs"].gsum, nDays), AvgPercent: avgOver(m["carbs"].psum, nDays), Unit: "g"},
		"fat":      {AvgConsumed: avgOver(m["fat"].sum, nDays), AvgGoal: avgOver(m["fat"].gsum, nDays), AvgPercent: avgOver(m["fat"].psum, nDays), Unit: "g"},
	}
	out.Micros = map[string]NutrAvg{
		"sodium": {AvgConsumed: avgOver(m["sodium"].sum, nDays), AvgGoal: avgOver(m["sodium"].gsum, nDays), AvgPercent: avgOver(m["sodium"].psum, nDays), Unit: "mg"},
		"sugar":  {AvgConsumed: avgOver(m["sugar"].sum, nDays), AvgGoal: avgOver(m["sugar"].gsum, nDays), AvgPercent: avgOver(m["sugar"].psum, nDays), Unit: "g"},
	}

	return out, nil
}

// ---------- internals ----------

func avgOver(sum float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return round2(sum / float64(n))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func dayStartOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEndOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
