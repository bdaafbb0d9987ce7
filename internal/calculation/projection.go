package calculation

import (
	"fmt"

	"github.com/rgehrsitz/paygo/internal/domain"
)

// ProjectYear settles every remaining pay period of the template's pay-date
// year, repeating the template's pay each period. Pay dates advance by an
// even share of the year and stop at December 31. Periods are labelled by
// their ordinal in the year ("P01", "P02", ...).
func (se *SettlementEngine) ProjectYear(template domain.PayPeriodInput, ytd domain.EmployeeYtd, rules *domain.JurisdictionRules) (*domain.YearProjection, error) {
	if rules == nil {
		return nil, fmt.Errorf("%w: jurisdiction rules are required", domain.ErrInvalidInput)
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("rules for %d: %w", rules.Year, err)
	}
	if template.PeriodLabel == "" {
		template.PeriodLabel = "projection"
	}
	if err := template.Validate(); err != nil {
		return nil, err
	}

	year := template.PayDate.Year()
	stepDays := 365 / rules.PayPeriodsPerYear
	if stepDays < 1 {
		stepDays = 1
	}

	projection := &domain.YearProjection{Year: year, FinalYtd: ytd}
	current := ytd
	payDate := template.PayDate
	for n := ytd.PeriodsPaid + 1; n <= rules.PayPeriodsPerYear && payDate.Year() == year; n++ {
		input := template
		input.PeriodLabel = fmt.Sprintf("P%02d", n)
		input.PayDate = payDate

		result, err := se.Settle(input, current, rules)
		if err != nil {
			return nil, fmt.Errorf("projecting %s: %w", input.PeriodLabel, err)
		}
		projection.Periods = append(projection.Periods, domain.ProjectedPeriod{
			PeriodLabel: input.PeriodLabel,
			PayDate:     payDate,
			Result:      *result,
		})
		projection.Totals.Add(*result)
		current = result.UpdatedYtd
		payDate = payDate.AddDate(0, 0, stepDays)
	}
	projection.FinalYtd = current

	se.logger.Debugf("projected %d periods for %d: gross=%s net=%s", len(projection.Periods), year,
		projection.Totals.GrossPay.StringFixed(2), projection.Totals.NetPay.StringFixed(2))
	return projection, nil
}
