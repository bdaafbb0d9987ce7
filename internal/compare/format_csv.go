package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Policy",
		"Type",
		"Periods",
		"Gross Pay",
		"CPP",
		"EI",
		"Income Tax",
		"Total Deductions",
		"Net Pay",
		"First Period Net",
		"Net Diff from Base",
		"Net % Change",
		"First Period Diff",
		"Tax Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, variantType string) []string {
	return []string{
		result.VariantName,
		variantType,
		strconv.Itoa(result.Periods),
		result.GrossPay.StringFixed(2),
		result.PensionContribution.StringFixed(2),
		result.InsurancePremium.StringFixed(2),
		result.IncomeTax.StringFixed(2),
		result.TotalDeductions.StringFixed(2),
		result.NetPay.StringFixed(2),
		result.FirstPeriodNetPay.StringFixed(2),
		result.NetDiffFromBase.StringFixed(2),
		result.NetPctFromBase.StringFixed(2),
		result.FirstPeriodDiffFromBase.StringFixed(2),
		result.TaxDiffFromBase.StringFixed(2),
	}
}
