package common

import "math"

// Round1 rounds an hour quantity to one fractional digit.
// All scheduled-hour columns carry decimal(5,1) precision.
func Round1(hours float64) float64 {
	return math.Round(hours*10) / 10
}
