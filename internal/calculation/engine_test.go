package calculation

import (
	"testing"
	"time"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var firstPayDate = time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)

func TestSettle_FirstPeriodOfYear(t *testing.T) {
	for _, method := range []domain.TaxMethod{domain.TaxCumulative, domain.TaxAnnualized} {
		t.Run(string(method), func(t *testing.T) {
			rules := ontarioRules2025()
			rules.Policy.TaxMethod = method
			engine := NewSettlementEngine()

			result, err := engine.Settle(payPeriod("80", "20", firstPayDate), domain.NewEmployeeYtd("emp-1", 2025), rules)
			require.NoError(t, err)

			// taxable = 1600 - 87.19 - 26.56 = 1486.25, annualized 38642.50
			assert.Equal(t, "1600.00", result.BasePay.StringFixed(2))
			assert.Equal(t, "1600.00", result.GrossPay.StringFixed(2))
			assert.Equal(t, "87.19", result.PensionContribution.StringFixed(2))
			assert.Equal(t, "26.56", result.InsurancePremium.StringFixed(2))
			assert.Equal(t, "129.89", result.FederalTax.StringFixed(2))
			assert.Equal(t, "50.30", result.RegionalTax.StringFixed(2))
			assert.Equal(t, "293.94", result.TotalDeductions.StringFixed(2))
			assert.Equal(t, "1306.06", result.NetPay.StringFixed(2))
			assert.False(t, result.NegativeNetPay)

			ytd := result.UpdatedYtd
			assert.Equal(t, "emp-1", ytd.EmployeeID)
			assert.Equal(t, 2025, ytd.Year)
			assert.Equal(t, 1, ytd.PeriodsPaid)
			assert.Equal(t, "1600.00", ytd.GrossPaidYtd.StringFixed(2))
			assert.Equal(t, "87.19", ytd.PensionContributedYtd.StringFixed(2))
			assert.Equal(t, "26.56", ytd.InsurancePaidYtd.StringFixed(2))
			assert.Equal(t, "1486.25", ytd.TaxableIncomeYtd.StringFixed(2))
			assert.Equal(t, "129.89", ytd.FederalTaxYtd.StringFixed(2))
			assert.Equal(t, "50.30", ytd.RegionalTaxYtd.StringFixed(2))
		})
	}
}

func TestSettle_TipsAndCommissionAreTaxedButNotPensionable(t *testing.T) {
	engine := NewSettlementEngine()
	input := payPeriod("80", "20", firstPayDate)
	input.Tips = dec("150")
	input.Commission = dec("50")

	result, err := engine.Settle(input, domain.EmployeeYtd{}, ontarioRules2025())
	require.NoError(t, err)

	assert.Equal(t, "1600.00", result.BasePay.StringFixed(2))
	assert.Equal(t, "1800.00", result.GrossPay.StringFixed(2))
	assert.Equal(t, "87.19", result.PensionContribution.StringFixed(2))
	assert.Equal(t, "26.56", result.InsurancePremium.StringFixed(2))
	assert.Equal(t, "1686.25", result.UpdatedYtd.TaxableIncomeYtd.StringFixed(2))
}

func TestSettle_GrossPayBasisPolicy(t *testing.T) {
	rules := ontarioRules2025()
	rules.Policy.PensionableBasis = domain.BasisGrossPay
	rules.Policy.InsurableBasis = domain.BasisGrossPay
	input := payPeriod("80", "20", firstPayDate)
	input.Tips = dec("200")

	result, err := NewSettlementEngine().Settle(input, domain.EmployeeYtd{}, rules)
	require.NoError(t, err)

	// (1800 - 3500/26) * 0.0595 and 1800 * 0.0166
	assert.Equal(t, "99.09", result.PensionContribution.StringFixed(2))
	assert.Equal(t, "29.88", result.InsurancePremium.StringFixed(2))
}

func TestSettle_RejectsInvalidInputBeforeCalculating(t *testing.T) {
	engine := NewSettlementEngine()
	ytd := domain.NewEmployeeYtd("emp-1", 2025)

	tests := []struct {
		name   string
		mutate func(in *domain.PayPeriodInput)
	}{
		{"negative hours", func(in *domain.PayPeriodInput) { in.HoursWorked = dec("-1") }},
		{"zero wage", func(in *domain.PayPeriodInput) { in.HourlyWage = decimal.Zero }},
		{"negative tips", func(in *domain.PayPeriodInput) { in.Tips = dec("-0.01") }},
		{"negative commission", func(in *domain.PayPeriodInput) { in.Commission = dec("-5") }},
		{"blank period label", func(in *domain.PayPeriodInput) { in.PeriodLabel = "   " }},
		{"missing pay date", func(in *domain.PayPeriodInput) { in.PayDate = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := payPeriod("80", "20", firstPayDate)
			tt.mutate(&input)

			result, err := engine.Settle(input, ytd, ontarioRules2025())
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Nil(t, result)
		})
	}
}

func TestSettle_RejectsInvalidRules(t *testing.T) {
	engine := NewSettlementEngine()
	input := payPeriod("80", "20", firstPayDate)

	_, err := engine.Settle(input, domain.EmployeeYtd{}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	rules := ontarioRules2025()
	rules.PayPeriodsPerYear = 0
	_, err = engine.Settle(input, domain.EmployeeYtd{}, rules)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	rules = ontarioRules2025()
	rules.Insurance.Rate = dec("-0.01")
	_, err = engine.Settle(input, domain.EmployeeYtd{}, rules)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettle_RejectsSnapshotFromAnotherYear(t *testing.T) {
	_, err := NewSettlementEngine().Settle(payPeriod("80", "20", firstPayDate), domain.NewEmployeeYtd("emp-1", 2024), ontarioRules2025())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettle_InsuranceStopsAtInsurableMaximum(t *testing.T) {
	ytd := domain.NewEmployeeYtd("emp-1", 2025)
	ytd.GrossPaidYtd = dec("63200")
	ytd.InsurancePaidYtd = dec("1049.12")
	ytd.PeriodsPaid = 20

	engine := NewSettlementEngine()
	for i := 0; i < 3; i++ {
		result, err := engine.Settle(payPeriod("80", "40", firstPayDate.AddDate(0, 0, 14*(21+i))), ytd, ontarioRules2025())
		require.NoError(t, err)
		assert.True(t, result.InsurancePremium.IsZero())
		ytd = result.UpdatedYtd
	}
}

func TestSettle_DoesNotMutateCallerSnapshot(t *testing.T) {
	ytd := domain.NewEmployeeYtd("emp-1", 2025)
	ytd.GrossPaidYtd = dec("1600")
	ytd.PeriodsPaid = 1
	before := ytd

	result, err := NewSettlementEngine().Settle(payPeriod("80", "20", firstPayDate), ytd, ontarioRules2025())
	require.NoError(t, err)

	assert.Equal(t, before, ytd)
	assert.Equal(t, "3200.00", result.UpdatedYtd.GrossPaidYtd.StringFixed(2))
}

func TestSettle_RejectsTotalsWithoutPeriodsPaid(t *testing.T) {
	engine := NewSettlementEngine()
	rules := ontarioRules2025()

	ytd := domain.NewEmployeeYtd("emp-1", 2025)
	for i := 0; i < 12; i++ {
		result, err := engine.Settle(payPeriod("80", "20", firstPayDate.AddDate(0, 0, 14*i)), ytd, rules)
		require.NoError(t, err)
		ytd = result.UpdatedYtd
	}
	require.Equal(t, 12, ytd.PeriodsPaid)
	next := payPeriod("80", "20", firstPayDate.AddDate(0, 0, 14*12))

	result, err := engine.Settle(next, ytd, rules)
	require.NoError(t, err)
	assert.InDelta(t, 1306.06, result.NetPay.InexactFloat64(), 0.05)

	unnumbered := ytd
	unnumbered.PeriodsPaid = 0
	_, err = engine.Settle(next, unnumbered, rules)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettle_FullYearInvariants(t *testing.T) {
	rules := ontarioRules2025()
	engine := NewSettlementEngine()

	tests := []struct {
		name  string
		hours string
		wage  string
	}{
		{"part time", "40", "17.20"},
		{"regular", "80", "20"},
		{"high earner", "80", "75"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ytd := domain.NewEmployeeYtd("emp-1", 2025)
			for period := 0; period < 26; period++ {
				input := payPeriod(tt.hours, tt.wage, firstPayDate.AddDate(0, 0, 14*period))
				if period%4 == 0 {
					input.Tips = dec("85.40")
				}

				result, err := engine.Settle(input, ytd, rules)
				require.NoError(t, err)

				assert.True(t, result.NetPay.Add(result.TotalDeductions).Equal(result.GrossPay), "net + deductions != gross")
				assert.True(t, result.TotalDeductions.Equal(result.PensionContribution.Add(result.InsurancePremium).Add(result.FederalTax).Add(result.RegionalTax)))
				for _, d := range []decimal.Decimal{result.PensionContribution, result.InsurancePremium, result.FederalTax, result.RegionalTax} {
					assert.False(t, d.IsNegative())
				}

				next := result.UpdatedYtd
				assert.True(t, next.GrossPaidYtd.GreaterThanOrEqual(ytd.GrossPaidYtd))
				assert.True(t, next.PensionContributedYtd.GreaterThanOrEqual(ytd.PensionContributedYtd))
				assert.True(t, next.InsurancePaidYtd.GreaterThanOrEqual(ytd.InsurancePaidYtd))
				assert.True(t, next.TaxableIncomeYtd.GreaterThanOrEqual(ytd.TaxableIncomeYtd))
				ytd = next
			}

			assert.True(t, ytd.PensionContributedYtd.LessThanOrEqual(rules.Pension.MaxAnnualContribution()))
			assert.True(t, ytd.InsurancePaidYtd.LessThanOrEqual(rules.Insurance.MaxAnnualPremium()))
			assert.Equal(t, 26, ytd.PeriodsPaid)
		})
	}
}

func TestSettle_HighEarnerReachesBothMaximums(t *testing.T) {
	engine := NewSettlementEngine()
	ytd := domain.NewEmployeeYtd("emp-1", 2025)
	for period := 0; period < 26; period++ {
		result, err := engine.Settle(payPeriod("80", "75", firstPayDate.AddDate(0, 0, 14*period)), ytd, ontarioRules2025())
		require.NoError(t, err)
		ytd = result.UpdatedYtd
	}
	assert.Equal(t, "3867.50", ytd.PensionContributedYtd.StringFixed(2))
	assert.Equal(t, "1049.12", ytd.InsurancePaidYtd.StringFixed(2))
}

// TestSettle_CumulativeWithholdingMatchesAnnualTax checks that equal periods
// withhold the annual bracket tax over the year.
func TestSettle_CumulativeWithholdingMatchesAnnualTax(t *testing.T) {
	rules := ontarioRules2025()
	engine := NewSettlementEngine()
	ytd := domain.NewEmployeeYtd("emp-1", 2025)
	for period := 0; period < 26; period++ {
		result, err := engine.Settle(payPeriod("80", "20", firstPayDate.AddDate(0, 0, 14*period)), ytd, rules)
		require.NoError(t, err)
		ytd = result.UpdatedYtd
	}

	// annual taxable 38642.50
	federal := NewPeriodTaxAllocator(rules.Federal, 26).AnnualTax(dec("38642.5"))
	regional := NewPeriodTaxAllocator(rules.Regional, 26).AnnualTax(dec("38642.5"))

	fedDiff, _ := ytd.FederalTaxYtd.Sub(federal).Abs().Float64()
	regDiff, _ := ytd.RegionalTaxYtd.Sub(regional).Abs().Float64()
	assert.LessOrEqual(t, fedDiff, 0.01)
	assert.LessOrEqual(t, regDiff, 0.01)
}

func TestSettle_BonusPeriodWithholdsMore(t *testing.T) {
	engine := NewSettlementEngine()
	rules := ontarioRules2025()
	ytd := domain.NewEmployeeYtd("emp-1", 2025)

	regular, err := engine.Settle(payPeriod("80", "30", firstPayDate), ytd, rules)
	require.NoError(t, err)

	bonus := payPeriod("80", "30", firstPayDate.AddDate(0, 0, 14))
	bonus.Commission = dec("5000")
	withBonus, err := engine.Settle(bonus, regular.UpdatedYtd, rules)
	require.NoError(t, err)

	assert.True(t, withBonus.FederalTax.GreaterThan(regular.FederalTax))
	assert.True(t, withBonus.RegionalTax.GreaterThan(regular.RegionalTax))

	// a lighter period afterwards never produces a refund
	light, err := engine.Settle(payPeriod("5", "30", firstPayDate.AddDate(0, 0, 28)), withBonus.UpdatedYtd, rules)
	require.NoError(t, err)
	assert.False(t, light.FederalTax.IsNegative())
	assert.False(t, light.RegionalTax.IsNegative())
}

func TestSettle_NegativeNetPayIsFlaggedNotClamped(t *testing.T) {
	rules := ontarioRules2025()
	rules.Pension = domain.PensionRules{AnnualExemption: decimal.Zero, AnnualMaxPensionable: dec("1000000"), Rate: dec("0.7")}
	rules.Insurance = domain.InsuranceRules{AnnualMaxInsurable: dec("1000000"), Rate: dec("0.5")}

	logger := &recordingLogger{}
	engine := NewSettlementEngine()
	engine.SetLogger(logger)

	result, err := engine.Settle(payPeriod("10", "20", firstPayDate), domain.EmployeeYtd{}, rules)
	require.NoError(t, err)

	assert.True(t, result.NegativeNetPay)
	assert.Equal(t, "-40.00", result.NetPay.StringFixed(2))
	assert.True(t, result.NetPay.Add(result.TotalDeductions).Equal(result.GrossPay))
	assert.Len(t, logger.warnings, 1)
}

func TestSettle_ZeroHoursPeriod(t *testing.T) {
	result, err := NewSettlementEngine().Settle(payPeriod("0", "20", firstPayDate), domain.EmployeeYtd{}, ontarioRules2025())
	require.NoError(t, err)
	assert.True(t, result.GrossPay.IsZero())
	assert.True(t, result.TotalDeductions.IsZero())
	assert.Equal(t, 1, result.UpdatedYtd.PeriodsPaid)
}
