package metrics

import "math"

// BMI returns weightKg / heightM², rounded to one decimal. A missing height
// (height may simply not be on file) makes the result unavailable rather
// than an error, so ok is false and the caller omits the field.
func BMI(weightKg, heightM float64) (float64, bool) {
	if heightM <= 0 || weightKg <= 0 {
		return 0, false
	}
	bmi := weightKg / (heightM * heightM)
	return math.Round(bmi*10) / 10, true
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "underweight"
	case bmi < 25.0:
		return "normal"
	case bmi < 30.0:
		return "overweight"
	default:
		return "obese"
	}
}

// LeanMass and FatMass are unavailable when body-fat % was not measured.
func LeanMass(weightKg float64, bodyFatPct *float64) (float64, bool) {
	if bodyFatPct == nil {
		return 0, false
	}
	return weightKg * (1 - *bodyFatPct/100), true
}

func FatMass(weightKg float64, bodyFatPct *float64) (float64, bool) {
	if bodyFatPct == nil {
		return 0, false
	}
	return weightKg * *bodyFatPct / 100, true
}

// Dead-zone thresholds used to suppress measurement noise when labelling a
// change between two entries.
const (
	weightTrendDeadZone  = 0.1 // kg, also used for muscle mass
	bodyFatTrendDeadZone = 0.5 // percentage points
)

type BodyProgress struct {
	WeightChangeKg float64 `json:"weight_change_kg"`
	WeeklyRateKg   float64 `json:"weekly_rate_kg"`
	WeightTrend    string  `json:"weight_trend"`
	BodyFatTrend   string  `json:"body_fat_trend,omitempty"`
	MuscleTrend    string  `json:"muscle_trend,omitempty"`
}

// Progress compares a current measurement against a previous one. Both
// weights must already be in kg. daysBetween ≤ 0 yields a zero weekly rate
// instead of a division blowup.
func Progress(currentKg, previousKg float64, daysBetween int,
	currentFat, previousFat, currentMuscle, previousMuscle *float64) BodyProgress {

	change := currentKg - previousKg

	var weekly float64
	if daysBetween > 0 {
		weekly = change / float64(daysBetween) * 7
	}

	p := BodyProgress{
		WeightChangeKg: change,
		WeeklyRateKg:   weekly,
		WeightTrend:    trend(change, weightTrendDeadZone),
	}
	if currentFat != nil && previousFat != nil {
		p.BodyFatTrend = trend(*currentFat-*previousFat, bodyFatTrendDeadZone)
	}
	if currentMuscle != nil && previousMuscle != nil {
		p.MuscleTrend = trend(*currentMuscle-*previousMuscle, weightTrendDeadZone)
	}
	return p
}

func trend(delta, deadZone float64) string {
	switch {
	case delta > deadZone:
		return "increased"
	case delta < -deadZone:
		return "decreased"
	default:
		return "stable"
	}
}
