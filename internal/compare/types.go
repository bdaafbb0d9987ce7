package compare

import (
	"fmt"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one policy variant's projected year with the metrics
// used to compare it against the base variant
type ComparisonResult struct {
	VariantName string                   `json:"variantName"`
	Description string                   `json:"description"`
	Policy      domain.CalculationPolicy `json:"policy"`
	Projection  *domain.YearProjection   `json:"-"`

	// Key Metrics
	Periods             int             `json:"periods"`
	GrossPay            decimal.Decimal `json:"grossPay"`
	PensionContribution decimal.Decimal `json:"pensionContribution"`
	InsurancePremium    decimal.Decimal `json:"insurancePremium"`
	IncomeTax           decimal.Decimal `json:"incomeTax"`
	TotalDeductions     decimal.Decimal `json:"totalDeductions"`
	NetPay              decimal.Decimal `json:"netPay"`
	FirstPeriodNetPay   decimal.Decimal `json:"firstPeriodNetPay"`

	// Comparison to Base
	NetDiffFromBase         decimal.Decimal `json:"netDiffFromBase"`
	NetPctFromBase          decimal.Decimal `json:"netPctFromBase"`
	FirstPeriodDiffFromBase decimal.Decimal `json:"firstPeriodDiffFromBase"`
	TaxDiffFromBase         decimal.Decimal `json:"taxDiffFromBase"`
}

// ComparisonSet is a base variant and its alternatives over the same pay
type ComparisonSet struct {
	BaseVariantName    string             `json:"baseVariantName"`
	Year               int                `json:"year"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
}

// MetricsCalculator extracts key metrics from year projections
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for one projected variant
func (mc *MetricsCalculator) CalculateMetrics(variant Variant, policy domain.CalculationPolicy, projection *domain.YearProjection) ComparisonResult {
	totals := projection.Totals
	result := ComparisonResult{
		VariantName:         variant.Name,
		Description:         variant.Description,
		Policy:              policy,
		Projection:          projection,
		Periods:             len(projection.Periods),
		GrossPay:            totals.GrossPay,
		PensionContribution: totals.PensionContribution,
		InsurancePremium:    totals.InsurancePremium,
		IncomeTax:           totals.FederalTax.Add(totals.RegionalTax),
		TotalDeductions:     totals.TotalDeductions,
		NetPay:              totals.NetPay,
	}
	if len(projection.Periods) > 0 {
		result.FirstPeriodNetPay = projection.Periods[0].Result.NetPay
	}
	return result
}

// CalculateComparison fills in the differences between a variant and the base
func (mc *MetricsCalculator) CalculateComparison(variant, base ComparisonResult) ComparisonResult {
	variant.NetDiffFromBase = variant.NetPay.Sub(base.NetPay)
	if !base.NetPay.IsZero() {
		variant.NetPctFromBase = variant.NetDiffFromBase.
			Div(base.NetPay).
			Mul(decimal.NewFromInt(100))
	}
	variant.FirstPeriodDiffFromBase = variant.FirstPeriodNetPay.Sub(base.FirstPeriodNetPay)
	variant.TaxDiffFromBase = variant.IncomeTax.Sub(base.IncomeTax)
	return variant
}

// GenerateRecommendations summarizes which variants pay the most over the
// year and in the first period
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	bestNet := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		if compSet.AlternativeResults[i].NetPay.GreaterThan(bestNet.NetPay) {
			bestNet = &compSet.AlternativeResults[i]
		}
	}
	if bestNet != compSet.BaseResult {
		recommendations = append(recommendations,
			fmt.Sprintf("Highest Net Pay: %s pays $%s more than %s over %d periods",
				bestNet.VariantName, bestNet.NetDiffFromBase.StringFixed(2), compSet.BaseVariantName, bestNet.Periods))
	}

	bestFirst := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		if compSet.AlternativeResults[i].FirstPeriodNetPay.GreaterThan(bestFirst.FirstPeriodNetPay) {
			bestFirst = &compSet.AlternativeResults[i]
		}
	}
	if bestFirst != compSet.BaseResult {
		recommendations = append(recommendations,
			fmt.Sprintf("Largest First Cheque: %s pays $%s more in the first period",
				bestFirst.VariantName, bestFirst.FirstPeriodDiffFromBase.StringFixed(2)))
	}

	lowestTax := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		if compSet.AlternativeResults[i].IncomeTax.LessThan(lowestTax.IncomeTax) {
			lowestTax = &compSet.AlternativeResults[i]
		}
	}
	if lowestTax != compSet.BaseResult {
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Withholding: %s withholds $%s less income tax",
				lowestTax.VariantName, lowestTax.TaxDiffFromBase.Neg().StringFixed(2)))
	}

	return recommendations
}
