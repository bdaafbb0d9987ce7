package output

import (
	"fmt"

	"github.com/rgehrsitz/paygo/internal/domain"
)

// PolicyNotes lists the calculation choices in effect, for detailed outputs
func PolicyNotes(rules *domain.JurisdictionRules) []string {
	p := rules.Policy.WithDefaults()
	notes := []string{
		fmt.Sprintf("%d pay periods per year (%d rules)", rules.PayPeriodsPerYear, rules.Year),
		fmt.Sprintf("CPP: %s of pay, annual maximum %s", basisText(p.PensionableBasis), FormatCurrency(rules.Pension.MaxAnnualContribution().Round(2))),
		fmt.Sprintf("EI: %s of pay, annual maximum %s", basisText(p.InsurableBasis), FormatCurrency(rules.Insurance.MaxAnnualPremium().Round(2))),
	}
	switch p.ExemptionMethod {
	case domain.ExemptionAnnualCumulative:
		notes = append(notes, "CPP basic exemption applied from the first earnings of the year")
	default:
		notes = append(notes, "CPP basic exemption prorated per pay period")
	}
	switch p.TaxMethod {
	case domain.TaxAnnualized:
		notes = append(notes, "Income tax withheld on this period's pay annualized")
	default:
		notes = append(notes, "Income tax withheld on year-to-date income, averaged over periods paid")
	}
	return notes
}

func basisText(b domain.EarningsBasis) string {
	if b == domain.BasisGrossPay {
		return "gross"
	}
	return "base"
}
