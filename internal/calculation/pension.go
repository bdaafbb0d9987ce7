package calculation

import (
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

// PensionCalculator computes per-period pension (CPP) contributions against an
// annual basic exemption and an annual maximum contribution.
type PensionCalculator struct {
	Rules             domain.PensionRules
	PayPeriodsPerYear int
	Method            domain.ExemptionMethod
}

// NewPensionCalculator creates a pension calculator from a year's rules
func NewPensionCalculator(rules *domain.JurisdictionRules) *PensionCalculator {
	return &PensionCalculator{
		Rules:             rules.Pension,
		PayPeriodsPerYear: rules.PayPeriodsPerYear,
		Method:            rules.Policy.WithDefaults().ExemptionMethod,
	}
}

// PeriodExemption is the share of the annual exemption available this period.
// ytdEarnings is only consulted by the annual-cumulative method.
func (pc *PensionCalculator) PeriodExemption(ytdEarnings decimal.Decimal) decimal.Decimal {
	switch pc.Method {
	case domain.ExemptionAnnualCumulative:
		remaining := pc.Rules.AnnualExemption.Sub(ytdEarnings)
		if remaining.IsNegative() {
			return decimal.Zero
		}
		return remaining
	default:
		if pc.PayPeriodsPerYear <= 0 {
			return decimal.Zero
		}
		return pc.Rules.AnnualExemption.Div(decimal.NewFromInt(int64(pc.PayPeriodsPerYear)))
	}
}

// PensionableEarnings is period earnings less this period's exemption, floored at zero
func (pc *PensionCalculator) PensionableEarnings(periodEarnings, ytdEarnings decimal.Decimal) decimal.Decimal {
	pensionable := periodEarnings.Sub(pc.PeriodExemption(ytdEarnings))
	if pensionable.IsNegative() {
		return decimal.Zero
	}
	return pensionable
}

// Contribution returns this period's contribution in cents, clamped so the
// year-to-date total never exceeds the annual maximum.
//
// ytdEarnings are prior pensionable-basis earnings this year (before exemption);
// ytdContributed is the contribution already withheld this year.
func (pc *PensionCalculator) Contribution(periodEarnings, ytdEarnings, ytdContributed decimal.Decimal) decimal.Decimal {
	contribution := roundCents(pc.PensionableEarnings(periodEarnings, ytdEarnings).Mul(pc.Rules.Rate))

	remaining := pc.Rules.MaxAnnualContribution().Sub(ytdContributed)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	if contribution.GreaterThan(remaining) {
		contribution = roundDownCents(remaining)
	}
	return contribution
}
