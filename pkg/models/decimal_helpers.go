package models

import "github.com/shopspring/decimal"

var (
	scoreFloor   = decimal.Zero
	scoreCeiling = decimal.NewFromInt(100)
)

// NewDecimal converts a float64 score into decimal
func NewDecimal(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// ToFloat64 safely converts decimal to float64
func ToFloat64(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// ClampScore bounds a score into [0, 100]. Applied after every adjustment
// step so intermediate over/undershoot never leaks into a result.
func ClampScore(d decimal.Decimal) decimal.Decimal {
	if d.LessThan(scoreFloor) {
		return scoreFloor
	}
	if d.GreaterThan(scoreCeiling) {
		return scoreCeiling
	}
	return d
}
