package billing

import "github.com/shopspring/decimal"

const zeroAmount = "0.00"

// FormatAmount renders v with exactly two decimals, rounding half away from
// zero on v's shortest decimal representation (1.005 → "1.01").
func FormatAmount(v float64) string {
	if !isFinite(v) {
		return nonFiniteAmount(v)
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// nonFiniteAmount is the display fallback for NaN and ±Inf. The underlying
// value is left as is.
func nonFiniteAmount(float64) string {
	return zeroAmount
}
