package calculation

import (
	"time"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func bound(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func federalBrackets2025() []domain.TaxBracket {
	return []domain.TaxBracket{
		{UpperBound: bound("55867"), Rate: dec("0.15")},
		{UpperBound: bound("111733"), Rate: dec("0.205")},
		{Rate: dec("0.26")},
	}
}

func ontarioBrackets2025() []domain.TaxBracket {
	return []domain.TaxBracket{
		{UpperBound: bound("51446"), Rate: dec("0.0505")},
		{UpperBound: bound("102894"), Rate: dec("0.0915")},
		{Rate: dec("0.1116")},
	}
}

// ontarioRules2025 mirrors the built-in 2025 Ontario rules file
func ontarioRules2025() *domain.JurisdictionRules {
	return &domain.JurisdictionRules{
		Year:              2025,
		PayPeriodsPerYear: 26,
		Pension: domain.PensionRules{
			AnnualExemption:      dec("3500"),
			AnnualMaxPensionable: dec("68500"),
			Rate:                 dec("0.0595"),
		},
		Insurance: domain.InsuranceRules{
			AnnualMaxInsurable: dec("63200"),
			Rate:               dec("0.0166"),
		},
		Federal: domain.IncomeTaxRules{
			Name:           "Federal",
			Brackets:       federalBrackets2025(),
			PersonalAmount: dec("16129"),
		},
		Regional: domain.IncomeTaxRules{
			Name:           "Ontario",
			Brackets:       ontarioBrackets2025(),
			PersonalAmount: dec("12747"),
		},
		Policy: domain.DefaultCalculationPolicy(),
	}
}

func payPeriod(hours, wage string, payDate time.Time) domain.PayPeriodInput {
	return domain.PayPeriodInput{
		HoursWorked: dec(hours),
		HourlyWage:  dec(wage),
		PeriodLabel: payDate.Format("2006-01-02"),
		PayDate:     payDate,
	}
}

// recordingLogger keeps warnings for assertions
type recordingLogger struct {
	NopLogger
	warnings []string
}

func (r *recordingLogger) Warnf(format string, args ...any) {
	r.warnings = append(r.warnings, format)
}
