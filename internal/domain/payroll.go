package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PayPeriodInput holds the pay components submitted for one pay period
type PayPeriodInput struct {
	HoursWorked decimal.Decimal `yaml:"hours_worked" json:"hours_worked"`
	HourlyWage  decimal.Decimal `yaml:"hourly_wage" json:"hourly_wage"`
	Tips        decimal.Decimal `yaml:"tips" json:"tips"`
	Commission  decimal.Decimal `yaml:"commission" json:"commission"`
	PeriodLabel string          `yaml:"period_label" json:"period_label"`
	PayDate     time.Time       `yaml:"pay_date" json:"pay_date"`
}

// Validate rejects out-of-range fields before any calculation runs
func (in PayPeriodInput) Validate() error {
	if in.HoursWorked.IsNegative() {
		return fmt.Errorf("%w: hours worked cannot be negative", ErrInvalidInput)
	}
	if in.HourlyWage.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: hourly wage must be positive", ErrInvalidInput)
	}
	if in.Tips.IsNegative() {
		return fmt.Errorf("%w: tips cannot be negative", ErrInvalidInput)
	}
	if in.Commission.IsNegative() {
		return fmt.Errorf("%w: commission cannot be negative", ErrInvalidInput)
	}
	if strings.TrimSpace(in.PeriodLabel) == "" {
		return fmt.Errorf("%w: pay period label is required", ErrInvalidInput)
	}
	if in.PayDate.IsZero() {
		return fmt.Errorf("%w: pay date is required", ErrInvalidInput)
	}
	return nil
}

// BasePay is hours worked times the hourly wage
func (in PayPeriodInput) BasePay() decimal.Decimal {
	return in.HoursWorked.Mul(in.HourlyWage)
}

// GrossPay is base pay plus tips and commission
func (in PayPeriodInput) GrossPay() decimal.Decimal {
	return in.BasePay().Add(in.Tips).Add(in.Commission)
}

// EmployeeYtd is the year-to-date snapshot for one employee and calendar year.
// Snapshots are values: settlement returns a new one rather than mutating.
type EmployeeYtd struct {
	EmployeeID             string          `yaml:"employee_id" json:"employee_id"`
	Year                   int             `yaml:"year" json:"year"`
	PeriodsPaid            int             `yaml:"periods_paid" json:"periods_paid"`
	GrossPaidYtd           decimal.Decimal `yaml:"gross_paid_ytd" json:"gross_paid_ytd"`
	PensionContributedYtd  decimal.Decimal `yaml:"pension_contributed_ytd" json:"pension_contributed_ytd"`
	InsurancePaidYtd       decimal.Decimal `yaml:"insurance_paid_ytd" json:"insurance_paid_ytd"`
	TaxableIncomeYtd       decimal.Decimal `yaml:"taxable_income_ytd" json:"taxable_income_ytd"`
	PensionableEarningsYtd decimal.Decimal `yaml:"pensionable_earnings_ytd" json:"pensionable_earnings_ytd"`
	InsurableEarningsYtd   decimal.Decimal `yaml:"insurable_earnings_ytd" json:"insurable_earnings_ytd"`
	FederalTaxYtd          decimal.Decimal `yaml:"federal_tax_ytd" json:"federal_tax_ytd"`
	RegionalTaxYtd         decimal.Decimal `yaml:"regional_tax_ytd" json:"regional_tax_ytd"`
}

// NewEmployeeYtd returns the zero snapshot a new employee-year starts from
func NewEmployeeYtd(employeeID string, year int) EmployeeYtd {
	return EmployeeYtd{EmployeeID: employeeID, Year: year}
}

// Validate checks that no YTD total is negative and that a snapshot carrying
// totals also records how many periods produced them.
func (y EmployeeYtd) Validate() error {
	if y.PeriodsPaid < 0 {
		return fmt.Errorf("%w: periods paid cannot be negative", ErrInvalidInput)
	}
	fields := []decimal.Decimal{
		y.GrossPaidYtd, y.PensionContributedYtd, y.InsurancePaidYtd, y.TaxableIncomeYtd,
		y.PensionableEarningsYtd, y.InsurableEarningsYtd, y.FederalTaxYtd, y.RegionalTaxYtd,
	}
	empty := true
	for _, f := range fields {
		if f.IsNegative() {
			return fmt.Errorf("%w: year-to-date totals cannot be negative", ErrInvalidInput)
		}
		if !f.IsZero() {
			empty = false
		}
	}
	if y.PeriodsPaid == 0 && !empty {
		return fmt.Errorf("%w: year-to-date totals require periods paid to be at least 1", ErrInvalidInput)
	}
	return nil
}

// SettlementResult is the full deduction breakdown for one pay period
type SettlementResult struct {
	BasePay             decimal.Decimal `json:"base_pay"`
	GrossPay            decimal.Decimal `json:"gross_pay"`
	PensionContribution decimal.Decimal `json:"pension_contribution"`
	InsurancePremium    decimal.Decimal `json:"insurance_premium"`
	FederalTax          decimal.Decimal `json:"federal_tax"`
	RegionalTax         decimal.Decimal `json:"regional_tax"`
	TotalDeductions     decimal.Decimal `json:"total_deductions"`
	NetPay              decimal.Decimal `json:"net_pay"`
	// NegativeNetPay flags deductions exceeding gross pay. It is a warning, not an error.
	NegativeNetPay bool        `json:"negative_net_pay"`
	UpdatedYtd     EmployeeYtd `json:"updated_ytd"`
}
