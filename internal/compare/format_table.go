package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing policy variants
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("PAYROLL POLICY COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 88) + "\n")
	sb.WriteString(fmt.Sprintf("Base Policy: %s\n", compSet.BaseVariantName))
	if compSet.BaseResult != nil {
		sb.WriteString(fmt.Sprintf("Year: %d (%d periods projected)\n", compSet.Year, compSet.BaseResult.Periods))
	}
	sb.WriteString("\n")

	nameWidth := 22
	numWidth := 12

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, "Policy",
		numWidth, "Gross",
		numWidth, "CPP",
		numWidth, "EI",
		numWidth, "Income Tax",
		numWidth, "Net Pay"))
	sb.WriteString(strings.Repeat("-", 88) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 88) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 88) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 88) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s: %s\n", alt.VariantName, alt.Description))
			sb.WriteString(fmt.Sprintf("  Net Pay:          %s$%s (%s%%)\n",
				tf.deltaSymbol(alt.NetDiffFromBase),
				alt.NetDiffFromBase.Abs().StringFixed(2),
				alt.NetPctFromBase.StringFixed(2)))
			sb.WriteString(fmt.Sprintf("  First Period:     %s$%s\n",
				tf.deltaSymbol(alt.FirstPeriodDiffFromBase),
				alt.FirstPeriodDiffFromBase.Abs().StringFixed(2)))
			if !alt.TaxDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Income Tax:       %s$%s\n",
					tf.deltaSymbol(alt.TaxDiffFromBase),
					alt.TaxDiffFromBase.Abs().StringFixed(2)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 88) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("- %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single variant row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.VariantName
	if isBase {
		name += " (base)"
	}
	return fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, tf.formatDecimal(result.GrossPay),
		numWidth, tf.formatDecimal(result.PensionContribution),
		numWidth, tf.formatDecimal(result.InsurancePremium),
		numWidth, tf.formatDecimal(result.IncomeTax),
		numWidth, tf.formatDecimal(result.NetPay))
}

// formatDecimal formats whole dollars, switching to thousands above 100K
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(100000)) {
		return "$" + d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return "$" + d.StringFixed(2)
}

// deltaSymbol returns a + for increases, a - for decreases
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a single-line summary of net pay differences
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseVariantName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		netChange := "="
		if !alt.NetDiffFromBase.IsZero() {
			netChange = fmt.Sprintf("%s$%s", tf.deltaSymbol(alt.NetDiffFromBase), alt.NetDiffFromBase.Abs().StringFixed(2))
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.VariantName, netChange))
	}

	return sb.String()
}
