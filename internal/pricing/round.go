package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	moneyPlaces  = 2
	weightPlaces = 3
)

// Round rounds v half away from zero to the given number of decimal places.
// NaN and infinities are returned unchanged.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// RoundMoney rounds to cents.
func RoundMoney(v float64) float64 { return Round(v, moneyPlaces) }

// RoundWeight rounds to grams.
func RoundWeight(v float64) float64 { return Round(v, weightPlaces) }

// NonNegative maps negative and non-finite values to zero.
func NonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
