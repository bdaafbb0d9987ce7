package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectedPeriod is one settled pay period inside a year projection
type ProjectedPeriod struct {
	PeriodLabel string           `json:"period_label"`
	PayDate     time.Time        `json:"pay_date"`
	Result      SettlementResult `json:"result"`
}

// ProjectionTotals sums the projected periods of a year
type ProjectionTotals struct {
	GrossPay            decimal.Decimal `json:"gross_pay"`
	PensionContribution decimal.Decimal `json:"pension_contribution"`
	InsurancePremium    decimal.Decimal `json:"insurance_premium"`
	FederalTax          decimal.Decimal `json:"federal_tax"`
	RegionalTax         decimal.Decimal `json:"regional_tax"`
	TotalDeductions     decimal.Decimal `json:"total_deductions"`
	NetPay              decimal.Decimal `json:"net_pay"`
}

// Add accumulates one settled period into the totals
func (t *ProjectionTotals) Add(r SettlementResult) {
	t.GrossPay = t.GrossPay.Add(r.GrossPay)
	t.PensionContribution = t.PensionContribution.Add(r.PensionContribution)
	t.InsurancePremium = t.InsurancePremium.Add(r.InsurancePremium)
	t.FederalTax = t.FederalTax.Add(r.FederalTax)
	t.RegionalTax = t.RegionalTax.Add(r.RegionalTax)
	t.TotalDeductions = t.TotalDeductions.Add(r.TotalDeductions)
	t.NetPay = t.NetPay.Add(r.NetPay)
}

// YearProjection is the remainder of a calendar year settled with the same
// pay every period, starting from a year-to-date snapshot.
type YearProjection struct {
	Year     int               `json:"year"`
	Periods  []ProjectedPeriod `json:"periods"`
	Totals   ProjectionTotals  `json:"totals"`
	FinalYtd EmployeeYtd       `json:"final_ytd"`
}
