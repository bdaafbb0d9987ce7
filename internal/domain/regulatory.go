package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// JurisdictionRules contains all statutory payroll parameters for one tax year.
// Values are loaded from rules.yaml and treated as immutable once validated.
type JurisdictionRules struct {
	Year              int               `yaml:"year" json:"year"`
	PayPeriodsPerYear int               `yaml:"pay_periods_per_year" json:"pay_periods_per_year"`
	Pension           PensionRules      `yaml:"pension" json:"pension"`
	Insurance         InsuranceRules    `yaml:"insurance" json:"insurance"`
	Federal           IncomeTaxRules    `yaml:"federal" json:"federal"`
	Regional          IncomeTaxRules    `yaml:"regional" json:"regional"`
	Policy            CalculationPolicy `yaml:"policy" json:"policy"`
}

// PensionRules contains the pension (CPP) contribution parameters
type PensionRules struct {
	AnnualExemption      decimal.Decimal `yaml:"annual_exemption" json:"annual_exemption"`
	AnnualMaxPensionable decimal.Decimal `yaml:"annual_max_pensionable" json:"annual_max_pensionable"`
	Rate                 decimal.Decimal `yaml:"rate" json:"rate"`
}

// MaxAnnualContribution is (max pensionable - exemption) * rate, never negative.
func (p PensionRules) MaxAnnualContribution() decimal.Decimal {
	span := p.AnnualMaxPensionable.Sub(p.AnnualExemption)
	if span.IsNegative() {
		return decimal.Zero
	}
	return span.Mul(p.Rate)
}

// InsuranceRules contains the employment insurance (EI) premium parameters
type InsuranceRules struct {
	AnnualMaxInsurable decimal.Decimal `yaml:"annual_max_insurable" json:"annual_max_insurable"`
	Rate               decimal.Decimal `yaml:"rate" json:"rate"`
}

// MaxAnnualPremium is max insurable earnings * rate.
func (i InsuranceRules) MaxAnnualPremium() decimal.Decimal {
	return i.AnnualMaxInsurable.Mul(i.Rate)
}

// IncomeTaxRules contains one bracket table and its personal amount credit
type IncomeTaxRules struct {
	Name           string          `yaml:"name" json:"name"`
	Brackets       []TaxBracket    `yaml:"brackets" json:"brackets"`
	PersonalAmount decimal.Decimal `yaml:"personal_amount" json:"personal_amount"`
}

// TaxBracket represents a marginal rate tier. A nil UpperBound marks the
// open-ended top bracket.
type TaxBracket struct {
	UpperBound *decimal.Decimal `yaml:"upper_bound,omitempty" json:"upper_bound,omitempty"`
	Rate       decimal.Decimal  `yaml:"rate" json:"rate"`
}

// Unbounded reports whether the bracket has no ceiling
func (b TaxBracket) Unbounded() bool {
	return b.UpperBound == nil
}

// ExemptionMethod selects how the annual pension exemption is spread over the year
type ExemptionMethod string

const (
	// ExemptionPerPeriod prorates the annual exemption evenly across pay periods.
	ExemptionPerPeriod ExemptionMethod = "per_period"
	// ExemptionAnnualCumulative consumes the annual exemption from the first earnings of the year.
	ExemptionAnnualCumulative ExemptionMethod = "annual_cumulative"
)

// EarningsBasis selects which pay components count as pensionable or insurable earnings
type EarningsBasis string

const (
	BasisBasePay  EarningsBasis = "base_pay"
	BasisGrossPay EarningsBasis = "gross_pay"
)

// TaxMethod selects how annual bracket tax is spread into per-period withholding
type TaxMethod string

const (
	// TaxCumulative annualizes year-to-date taxable income and withholds the
	// difference between tax owed to date and tax already withheld.
	TaxCumulative TaxMethod = "cumulative"
	// TaxAnnualized annualizes the current period alone.
	TaxAnnualized TaxMethod = "annualized"
)

// CalculationPolicy names the variation points between payroll rule sets
type CalculationPolicy struct {
	ExemptionMethod  ExemptionMethod `yaml:"exemption_method" json:"exemption_method"`
	PensionableBasis EarningsBasis   `yaml:"pensionable_basis" json:"pensionable_basis"`
	InsurableBasis   EarningsBasis   `yaml:"insurable_basis" json:"insurable_basis"`
	TaxMethod        TaxMethod       `yaml:"tax_method" json:"tax_method"`
}

// DefaultCalculationPolicy returns the canonical policy
func DefaultCalculationPolicy() CalculationPolicy {
	return CalculationPolicy{
		ExemptionMethod:  ExemptionPerPeriod,
		PensionableBasis: BasisBasePay,
		InsurableBasis:   BasisBasePay,
		TaxMethod:        TaxCumulative,
	}
}

// WithDefaults fills empty policy fields with the canonical choices
func (p CalculationPolicy) WithDefaults() CalculationPolicy {
	d := DefaultCalculationPolicy()
	if p.ExemptionMethod == "" {
		p.ExemptionMethod = d.ExemptionMethod
	}
	if p.PensionableBasis == "" {
		p.PensionableBasis = d.PensionableBasis
	}
	if p.InsurableBasis == "" {
		p.InsurableBasis = d.InsurableBasis
	}
	if p.TaxMethod == "" {
		p.TaxMethod = d.TaxMethod
	}
	return p
}

// Validate checks the rules invariants: positive pay periods, non-negative
// rates and limits, ascending brackets with only the last one unbounded.
func (r *JurisdictionRules) Validate() error {
	if r.PayPeriodsPerYear <= 0 {
		return fmt.Errorf("%w: pay periods per year must be positive, got %d", ErrInvalidInput, r.PayPeriodsPerYear)
	}
	nonNegative := []struct {
		name  string
		value decimal.Decimal
	}{
		{"pension annual exemption", r.Pension.AnnualExemption},
		{"pension annual max pensionable", r.Pension.AnnualMaxPensionable},
		{"pension rate", r.Pension.Rate},
		{"insurance annual max insurable", r.Insurance.AnnualMaxInsurable},
		{"insurance rate", r.Insurance.Rate},
		{"federal personal amount", r.Federal.PersonalAmount},
		{"regional personal amount", r.Regional.PersonalAmount},
	}
	for _, f := range nonNegative {
		if f.value.IsNegative() {
			return fmt.Errorf("%w: %s cannot be negative", ErrInvalidInput, f.name)
		}
	}
	if err := validateBrackets("federal", r.Federal.Brackets); err != nil {
		return err
	}
	if err := validateBrackets("regional", r.Regional.Brackets); err != nil {
		return err
	}
	if err := r.Policy.Validate(); err != nil {
		return err
	}
	return nil
}

func validateBrackets(table string, brackets []TaxBracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("%w: %s brackets are required", ErrInvalidInput, table)
	}
	prev := decimal.Zero
	for i, b := range brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%w: %s bracket %d rate must be between 0 and 1", ErrInvalidInput, table, i)
		}
		if b.Unbounded() {
			if i != len(brackets)-1 {
				return fmt.Errorf("%w: only the last %s bracket may be unbounded", ErrInvalidInput, table)
			}
			continue
		}
		if b.UpperBound.LessThanOrEqual(prev) {
			return fmt.Errorf("%w: %s bracket %d upper bound must exceed %s", ErrInvalidInput, table, i, prev.String())
		}
		prev = *b.UpperBound
	}
	return nil
}

// Validate rejects unknown policy names. Empty fields are allowed and resolve to defaults.
func (p CalculationPolicy) Validate() error {
	switch p.ExemptionMethod {
	case "", ExemptionPerPeriod, ExemptionAnnualCumulative:
	default:
		return fmt.Errorf("%w: unknown exemption method %q", ErrInvalidInput, p.ExemptionMethod)
	}
	for _, b := range []EarningsBasis{p.PensionableBasis, p.InsurableBasis} {
		switch b {
		case "", BasisBasePay, BasisGrossPay:
		default:
			return fmt.Errorf("%w: unknown earnings basis %q", ErrInvalidInput, b)
		}
	}
	switch p.TaxMethod {
	case "", TaxCumulative, TaxAnnualized:
	default:
		return fmt.Errorf("%w: unknown tax method %q", ErrInvalidInput, p.TaxMethod)
	}
	return nil
}
