package compare

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSet() *ComparisonSet {
	return &ComparisonSet{
		BaseVariantName: "configured",
		Year:            2025,
		BaseResult: &ComparisonResult{
			VariantName:         "configured",
			Periods:             26,
			GrossPay:            decimal.RequireFromString("41600"),
			PensionContribution: decimal.RequireFromString("2266.94"),
			InsurancePremium:    decimal.RequireFromString("690.56"),
			IncomeTax:           decimal.RequireFromString("4685.14"),
			TotalDeductions:     decimal.RequireFromString("7642.64"),
			NetPay:              decimal.RequireFromString("33957.36"),
			FirstPeriodNetPay:   decimal.RequireFromString("1306.06"),
		},
		AlternativeResults: []ComparisonResult{
			{
				VariantName:             "annual-exemption",
				Description:             "CPP basic exemption consumed from the start of the year",
				Periods:                 26,
				GrossPay:                decimal.RequireFromString("41600"),
				NetPay:                  decimal.RequireFromString("33957.40"),
				FirstPeriodNetPay:       decimal.RequireFromString("1376.01"),
				NetDiffFromBase:         decimal.RequireFromString("0.04"),
				FirstPeriodDiffFromBase: decimal.RequireFromString("69.95"),
				TaxDiffFromBase:         decimal.RequireFromString("-0.02"),
			},
		},
		Recommendations: []string{
			"Largest First Cheque: annual-exemption pays $69.95 more in the first period",
		},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	out := (&TableFormatter{}).Format(sampleSet())

	assert.Contains(t, out, "PAYROLL POLICY COMPARISON")
	assert.Contains(t, out, "Base Policy: configured")
	assert.Contains(t, out, "Year: 2025 (26 periods projected)")
	assert.Contains(t, out, "configured (base)")
	assert.Contains(t, out, "$2266.94")
	assert.Contains(t, out, "$33957.36")
	assert.Contains(t, out, "COMPARISON TO BASE")
	assert.Contains(t, out, "First Period:     +$69.95")
	assert.Contains(t, out, "Income Tax:       -$0.02")
	assert.Contains(t, out, "RECOMMENDATIONS")
	assert.Contains(t, out, "- Largest First Cheque")
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	out := (&TableFormatter{}).FormatCompact(sampleSet())
	assert.Equal(t, "Base: configured | annual-exemption: +$0.04", out)
}

func TestTableFormatter_Helpers(t *testing.T) {
	tf := &TableFormatter{}
	assert.Equal(t, "$125.0K", tf.formatDecimal(decimal.NewFromInt(125000)))
	assert.Equal(t, "$99.50", tf.formatDecimal(decimal.RequireFromString("99.5")))
	assert.Equal(t, "a-very-long-variant...", tf.truncate("a-very-long-variant-name-here", 22))
	assert.Equal(t, " ", tf.deltaSymbol(decimal.Zero))
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(sampleSet())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Policy", records[0][0])
	assert.Len(t, records[0], 14)
	assert.Equal(t, []string{"configured", "base", "26", "41600.00"}, records[1][:4])
	assert.Equal(t, "alternative", records[2][1])
	assert.Equal(t, "69.95", records[2][12])
}

func TestJSONFormatter_Format(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		out, err := (&JSONFormatter{Pretty: pretty}).Format(sampleSet())
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, "configured", decoded["baseVariantName"])
		alts, ok := decoded["alternativeResults"].([]any)
		require.True(t, ok)
		assert.Len(t, alts, 1)
		assert.Equal(t, pretty, strings.Contains(out, "\n  "))
	}
}

func TestRender(t *testing.T) {
	for _, format := range []string{"", "table", "compact", "csv", "json"} {
		out, err := Render(sampleSet(), format)
		require.NoError(t, err, format)
		assert.NotEmpty(t, out, format)
	}

	_, err := Render(sampleSet(), "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported comparison format")
}
