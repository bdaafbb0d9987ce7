package calculation

import (
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

// InsuranceCalculator computes per-period employment insurance (EI) premiums
// against annual maximum insurable earnings.
type InsuranceCalculator struct {
	Rules domain.InsuranceRules
}

// NewInsuranceCalculator creates an insurance calculator from a year's rules
func NewInsuranceCalculator(rules *domain.JurisdictionRules) *InsuranceCalculator {
	return &InsuranceCalculator{Rules: rules.Insurance}
}

// InsurableEarnings is the part of period earnings still under the annual maximum
func (ic *InsuranceCalculator) InsurableEarnings(periodEarnings, ytdEarnings decimal.Decimal) decimal.Decimal {
	remaining := ic.Rules.AnnualMaxInsurable.Sub(ytdEarnings)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	insurable := decimal.Min(periodEarnings, remaining)
	if insurable.IsNegative() {
		return decimal.Zero
	}
	return insurable
}

// Premium returns this period's premium in cents. The year-to-date premium
// never exceeds insurable maximum * rate.
func (ic *InsuranceCalculator) Premium(periodEarnings, ytdEarnings, ytdPremiumPaid decimal.Decimal) decimal.Decimal {
	premium := roundCents(ic.InsurableEarnings(periodEarnings, ytdEarnings).Mul(ic.Rules.Rate))

	remaining := ic.Rules.MaxAnnualPremium().Sub(ytdPremiumPaid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	if premium.GreaterThan(remaining) {
		premium = roundDownCents(remaining)
	}
	return premium
}
