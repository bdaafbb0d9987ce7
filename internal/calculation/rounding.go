package calculation

import "github.com/shopspring/decimal"

// roundCents rounds half away from zero to whole cents
func roundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// roundDownCents truncates to whole cents so clamped amounts never overshoot a cap
func roundDownCents(d decimal.Decimal) decimal.Decimal {
	return d.Truncate(2)
}
