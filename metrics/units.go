package metrics

// Conversion factors shared by all derivation code. All arithmetic in this
// package runs on kg/cm/ml; values are converted on the way in and only
// rounded where a caller asks for a display value.
const (
	KgPerLb  = 0.453592
	LbsPerKg = 2.20462

	CmPerInch = 2.54
	CmPerFoot = 30.48

	MlPerLiter   = 1000.0
	MlPerCup     = 236.588
	MlPerFluidOz = 29.5735
)

func LbsToKg(lbs float64) float64 { return lbs * KgPerLb }

func KgToLbs(kg float64) float64 { return kg * LbsPerKg }

// ToKilograms normalizes a stored weight. Unknown unit tags are a caller
// contract violation (request validation rejects them upstream); the value
// is passed through unchanged so derivation never fails.
func ToKilograms(value float64, unit string) float64 {
	switch unit {
	case "lb", "lbs":
		return LbsToKg(value)
	default: // "kg" or already normalized
		return value
	}
}

func InchesToCm(in float64) float64 { return in * CmPerInch }

func CmToInches(cm float64) float64 { return cm / CmPerInch }

// FeetInchesToCm converts a height entered as feet+inches.
func FeetInchesToCm(feet, inches float64) float64 {
	return feet*CmPerFoot + inches*CmPerInch
}

// ToMilliliters normalizes a logged fluid volume.
func ToMilliliters(value float64, unit string) float64 {
	switch unit {
	case "l", "liter", "liters":
		return value * MlPerLiter
	case "cup", "cups":
		return value * MlPerCup
	case "fl-oz", "fl_oz":
		return value * MlPerFluidOz
	default: // "ml"
		return value
	}
}
