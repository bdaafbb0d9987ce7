package calculation

import (
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Brackets are annual. Each bracket taxes the slice of income between the
//    previous ceiling and its own ceiling; income above a bounded final
//    bracket is taxed at the final rate.
//
// 2. The personal amount is a non-refundable credit applied once per year at
//    the lowest bracket rate. Tax after the credit never goes below zero.
//
// 3. Per-period withholding is annual tax divided by pay periods per year.

// CalculateBracketTax returns the cumulative progressive tax on an annual income.
// Income at or below zero owes nothing.
func CalculateBracketTax(annualIncome decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	if annualIncome.LessThanOrEqual(decimal.Zero) || len(brackets) == 0 {
		return decimal.Zero
	}

	totalTax := decimal.Zero
	lower := decimal.Zero
	for i, bracket := range brackets {
		if annualIncome.LessThanOrEqual(lower) {
			break
		}
		last := i == len(brackets)-1
		top := annualIncome
		if !bracket.Unbounded() && !last {
			top = decimal.Min(annualIncome, *bracket.UpperBound)
		}
		totalTax = totalTax.Add(top.Sub(lower).Mul(bracket.Rate))
		if bracket.Unbounded() {
			break
		}
		lower = *bracket.UpperBound
	}

	return totalTax
}

// PeriodTaxAllocator attributes annual bracket tax to a single pay period
type PeriodTaxAllocator struct {
	Brackets          []domain.TaxBracket
	PersonalAmount    decimal.Decimal
	PayPeriodsPerYear int
}

// NewPeriodTaxAllocator creates an allocator for one bracket table
func NewPeriodTaxAllocator(rules domain.IncomeTaxRules, payPeriodsPerYear int) *PeriodTaxAllocator {
	return &PeriodTaxAllocator{
		Brackets:          rules.Brackets,
		PersonalAmount:    rules.PersonalAmount,
		PayPeriodsPerYear: payPeriodsPerYear,
	}
}

// PersonalCredit is the personal amount valued at the lowest bracket rate
func (pta *PeriodTaxAllocator) PersonalCredit() decimal.Decimal {
	if len(pta.Brackets) == 0 {
		return decimal.Zero
	}
	return pta.PersonalAmount.Mul(pta.Brackets[0].Rate)
}

// AnnualTax is bracket tax on an annual income less the personal credit, floored at zero
func (pta *PeriodTaxAllocator) AnnualTax(annualIncome decimal.Decimal) decimal.Decimal {
	tax := CalculateBracketTax(annualIncome, pta.Brackets).Sub(pta.PersonalCredit())
	if tax.IsNegative() {
		return decimal.Zero
	}
	return tax
}

// PeriodTax returns the tax attributable to one period given annual taxable
// income before and after it. The result is never negative.
func (pta *PeriodTaxAllocator) PeriodTax(priorAnnualTaxable, currentAnnualTaxable decimal.Decimal) decimal.Decimal {
	if pta.PayPeriodsPerYear <= 0 {
		return decimal.Zero
	}
	delta := pta.AnnualTax(currentAnnualTaxable).Sub(pta.AnnualTax(priorAnnualTaxable))
	if delta.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return delta.Div(decimal.NewFromInt(int64(pta.PayPeriodsPerYear)))
}

// CumulativeTaxOwed is the tax owed for the first periodsElapsed periods of the
// year when ytdTaxable has been earned so far. Year-to-date income is annualized
// at its average per-period rate, taxed, and the annual tax is prorated back.
func (pta *PeriodTaxAllocator) CumulativeTaxOwed(ytdTaxable decimal.Decimal, periodsElapsed int) decimal.Decimal {
	if periodsElapsed <= 0 || pta.PayPeriodsPerYear <= 0 {
		return decimal.Zero
	}
	k := decimal.NewFromInt(int64(periodsElapsed))
	annualized := ytdTaxable.Mul(decimal.NewFromInt(int64(pta.PayPeriodsPerYear))).Div(k)
	return pta.PeriodTax(decimal.Zero, annualized).Mul(k)
}
