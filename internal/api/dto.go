package api

import (
	"time"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	HourlyWage string `json:"hourly_wage"`
	Label      string `json:"label"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// CreateEmployeeRequest is the request to register an employee.
type CreateEmployeeRequest struct {
	Name       string          `json:"name"`
	HourlyWage decimal.Decimal `json:"hourly_wage"`
}

// PayPeriodRequest carries one period's pay components. Amounts may be JSON
// numbers or strings. HourlyWage defaults to the employee's wage.
type PayPeriodRequest struct {
	HoursWorked decimal.Decimal `json:"hours_worked"`
	HourlyWage  decimal.Decimal `json:"hourly_wage"`
	Tips        decimal.Decimal `json:"tips"`
	Commission  decimal.Decimal `json:"commission"`
	PeriodLabel string          `json:"period_label"`
	PayDate     string          `json:"pay_date"`
}

// CalculateRequest settles a period against an explicit snapshot.
type CalculateRequest struct {
	EmployeeName string              `json:"employee_name"`
	Period       PayPeriodRequest    `json:"period"`
	Ytd          *domain.EmployeeYtd `json:"ytd,omitempty"`
}

// CompareRequest projects one period's pay under several policy variants.
type CompareRequest struct {
	Period   PayPeriodRequest `json:"period"`
	Base     string           `json:"base,omitempty"`
	Variants []string         `json:"variants,omitempty"`
}

// YtdDTO represents a year-to-date snapshot in API responses.
type YtdDTO struct {
	EmployeeID             string `json:"employee_id"`
	Year                   int    `json:"year"`
	PeriodsPaid            int    `json:"periods_paid"`
	GrossPaidYtd           string `json:"gross_paid_ytd"`
	PensionContributedYtd  string `json:"pension_contributed_ytd"`
	InsurancePaidYtd       string `json:"insurance_paid_ytd"`
	TaxableIncomeYtd       string `json:"taxable_income_ytd"`
	PensionableEarningsYtd string `json:"pensionable_earnings_ytd"`
	InsurableEarningsYtd   string `json:"insurable_earnings_ytd"`
	FederalTaxYtd          string `json:"federal_tax_ytd"`
	RegionalTaxYtd         string `json:"regional_tax_ytd"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func toEmployeeDTO(e domain.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:         e.ID,
		Name:       e.Name,
		HourlyWage: e.HourlyWage.StringFixed(2),
		Label:      e.Label(),
	}
	if !e.CreatedAt.IsZero() {
		dto.CreatedAt = e.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

func toYtdDTO(y domain.EmployeeYtd) YtdDTO {
	return YtdDTO{
		EmployeeID:             y.EmployeeID,
		Year:                   y.Year,
		PeriodsPaid:            y.PeriodsPaid,
		GrossPaidYtd:           y.GrossPaidYtd.StringFixed(2),
		PensionContributedYtd:  y.PensionContributedYtd.StringFixed(2),
		InsurancePaidYtd:       y.InsurancePaidYtd.StringFixed(2),
		TaxableIncomeYtd:       y.TaxableIncomeYtd.StringFixed(2),
		PensionableEarningsYtd: y.PensionableEarningsYtd.StringFixed(2),
		InsurableEarningsYtd:   y.InsurableEarningsYtd.StringFixed(2),
		FederalTaxYtd:          y.FederalTaxYtd.StringFixed(2),
		RegionalTaxYtd:         y.RegionalTaxYtd.StringFixed(2),
	}
}

func (p PayPeriodRequest) toInput() (domain.PayPeriodInput, error) {
	payDate, err := time.Parse(dateLayout, p.PayDate)
	if err != nil {
		return domain.PayPeriodInput{}, err
	}
	return domain.PayPeriodInput{
		HoursWorked: p.HoursWorked,
		HourlyWage:  p.HourlyWage,
		Tips:        p.Tips,
		Commission:  p.Commission,
		PeriodLabel: p.PeriodLabel,
		PayDate:     payDate,
	}, nil
}
