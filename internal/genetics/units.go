package genetics

import "math"

// ImperialToCm converts a feet/inches height to centimeters, rounded
// half-away-from-zero to one decimal place. Callers are expected to have
// validated feet >= 0 and 0 <= inches < 12 already.
func ImperialToCm(feet, inches float64) float64 {
	totalInches := feet*12 + inches
	return math.Round(totalInches*2.54*10) / 10
}
