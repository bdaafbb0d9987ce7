package calculation

import (
	"fmt"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

// SettlementEngine settles one pay period at a time. It holds no payroll
// state; year-to-date snapshots go in and new snapshots come out.
type SettlementEngine struct {
	logger Logger
}

// NewSettlementEngine creates a settlement engine with a no-op logger
func NewSettlementEngine() *SettlementEngine {
	return &SettlementEngine{logger: NopLogger{}}
}

// SetLogger sets the engine logger; nil restores the no-op logger
func (se *SettlementEngine) SetLogger(l Logger) {
	if l == nil {
		se.logger = NopLogger{}
		return
	}
	se.logger = l
}

// Settle computes deductions and net pay for one pay period and returns the
// updated year-to-date snapshot. Contributions are computed before income tax
// because taxable income depends on them. On error no snapshot is produced.
func (se *SettlementEngine) Settle(input domain.PayPeriodInput, ytd domain.EmployeeYtd, rules *domain.JurisdictionRules) (*domain.SettlementResult, error) {
	if rules == nil {
		return nil, fmt.Errorf("%w: jurisdiction rules are required", domain.ErrInvalidInput)
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("rules for %d: %w", rules.Year, err)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := ytd.Validate(); err != nil {
		return nil, err
	}
	payYear := input.PayDate.Year()
	if ytd.Year != 0 && ytd.Year != payYear {
		return nil, fmt.Errorf("%w: year-to-date snapshot is for %d but pay date is in %d", domain.ErrInvalidInput, ytd.Year, payYear)
	}

	policy := rules.Policy.WithDefaults()
	pensionCalc := NewPensionCalculator(rules)
	insuranceCalc := NewInsuranceCalculator(rules)
	federal := NewPeriodTaxAllocator(rules.Federal, rules.PayPeriodsPerYear)
	regional := NewPeriodTaxAllocator(rules.Regional, rules.PayPeriodsPerYear)

	basePay := roundCents(input.BasePay())
	grossPay := basePay.Add(input.Tips).Add(input.Commission)

	pensionBasis := earningsFor(policy.PensionableBasis, basePay, grossPay)
	pension := pensionCalc.Contribution(pensionBasis, ytd.PensionableEarningsYtd, ytd.PensionContributedYtd)

	insurableBasis := earningsFor(policy.InsurableBasis, basePay, grossPay)
	insurable := insuranceCalc.InsurableEarnings(insurableBasis, ytd.GrossPaidYtd)
	insurance := insuranceCalc.Premium(insurableBasis, ytd.GrossPaidYtd, ytd.InsurancePaidYtd)

	periodTaxable := grossPay.Sub(pension).Sub(insurance)

	var federalTax, regionalTax decimal.Decimal
	switch policy.TaxMethod {
	case domain.TaxAnnualized:
		annualized := periodTaxable.Mul(decimal.NewFromInt(int64(rules.PayPeriodsPerYear)))
		federalTax = roundCents(federal.PeriodTax(decimal.Zero, annualized))
		regionalTax = roundCents(regional.PeriodTax(decimal.Zero, annualized))
	default:
		periodsElapsed := ytd.PeriodsPaid + 1
		taxableToDate := ytd.TaxableIncomeYtd.Add(periodTaxable)
		federalTax = withholdingDue(federal.CumulativeTaxOwed(taxableToDate, periodsElapsed), ytd.FederalTaxYtd)
		regionalTax = withholdingDue(regional.CumulativeTaxOwed(taxableToDate, periodsElapsed), ytd.RegionalTaxYtd)
	}

	totalDeductions := pension.Add(insurance).Add(federalTax).Add(regionalTax)
	netPay := grossPay.Sub(totalDeductions)

	se.logger.Debugf("settle %s: base=%s gross=%s pension=%s insurance=%s taxable=%s federal=%s regional=%s",
		input.PeriodLabel, basePay.StringFixed(2), grossPay.StringFixed(2), pension.StringFixed(2),
		insurance.StringFixed(2), periodTaxable.StringFixed(2), federalTax.StringFixed(2), regionalTax.StringFixed(2))

	updated := ytd
	if updated.Year == 0 {
		updated.Year = payYear
	}
	updated.PeriodsPaid++
	updated.GrossPaidYtd = ytd.GrossPaidYtd.Add(grossPay)
	updated.PensionContributedYtd = ytd.PensionContributedYtd.Add(pension)
	updated.InsurancePaidYtd = ytd.InsurancePaidYtd.Add(insurance)
	updated.TaxableIncomeYtd = ytd.TaxableIncomeYtd.Add(periodTaxable)
	updated.PensionableEarningsYtd = ytd.PensionableEarningsYtd.Add(pensionBasis)
	updated.InsurableEarningsYtd = ytd.InsurableEarningsYtd.Add(insurable)
	updated.FederalTaxYtd = ytd.FederalTaxYtd.Add(federalTax)
	updated.RegionalTaxYtd = ytd.RegionalTaxYtd.Add(regionalTax)

	result := &domain.SettlementResult{
		BasePay:             basePay,
		GrossPay:            grossPay,
		PensionContribution: pension,
		InsurancePremium:    insurance,
		FederalTax:          federalTax,
		RegionalTax:         regionalTax,
		TotalDeductions:     totalDeductions,
		NetPay:              netPay,
		NegativeNetPay:      netPay.IsNegative(),
		UpdatedYtd:          updated,
	}
	if result.NegativeNetPay {
		se.logger.Warnf("negative net pay for %s: gross %s, deductions %s", input.PeriodLabel, grossPay.StringFixed(2), totalDeductions.StringFixed(2))
	}
	return result, nil
}

func earningsFor(basis domain.EarningsBasis, basePay, grossPay decimal.Decimal) decimal.Decimal {
	if basis == domain.BasisGrossPay {
		return grossPay
	}
	return basePay
}

// withholdingDue is tax owed to date less tax already withheld, never negative
func withholdingDue(owedToDate, withheldYtd decimal.Decimal) decimal.Decimal {
	due := roundCents(owedToDate).Sub(withheldYtd)
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}
