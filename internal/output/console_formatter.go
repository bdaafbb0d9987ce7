package output

import (
	"bytes"
	"fmt"
	"strings"
)

// ConsoleFormatter renders a fixed-width text pay stub
type ConsoleFormatter struct {
	// Verbose appends the calculation notes.
	Verbose bool
}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(stub *PayStub) ([]byte, error) {
	var buf bytes.Buffer
	rule := strings.Repeat("=", 48)

	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, strings.ToUpper(stub.CompanyName))
	fmt.Fprintln(&buf, "PAY STUB")
	fmt.Fprintln(&buf, rule)
	fmt.Fprintf(&buf, "Employee:   %s\n", stub.EmployeeName)
	fmt.Fprintf(&buf, "Pay Period: %s\n", stub.PeriodLabel)
	fmt.Fprintf(&buf, "Pay Date:   %s\n", formatDate(stub.PayDate))
	fmt.Fprintf(&buf, "Hours:      %s @ %s/hr\n", stub.HoursWorked.StringFixed(2), FormatCurrency(stub.HourlyWage))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "EARNINGS")
	for _, l := range stub.earningsLines() {
		fmt.Fprintf(&buf, "  %-24s %14s\n", l.Label, FormatCurrency(l.Amount))
	}
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "DEDUCTIONS")
	for _, l := range stub.deductionLines() {
		fmt.Fprintf(&buf, "  %-24s %14s\n", l.Label, FormatCurrency(l.Amount))
	}
	fmt.Fprintln(&buf, strings.Repeat("-", 48))
	fmt.Fprintf(&buf, "  %-24s %14s\n", "NET PAY", FormatCurrency(stub.Result.NetPay))
	if stub.Result.NegativeNetPay {
		fmt.Fprintln(&buf, "  WARNING: deductions exceed gross pay")
	}

	ytd := stub.Result.UpdatedYtd
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "YEAR TO DATE (%d, %d periods)\n", ytd.Year, ytd.PeriodsPaid)
	fmt.Fprintf(&buf, "  %-24s %14s\n", "Gross Pay", FormatCurrency(ytd.GrossPaidYtd))
	fmt.Fprintf(&buf, "  %-24s %14s\n", "CPP Contributions", FormatCurrency(ytd.PensionContributedYtd))
	fmt.Fprintf(&buf, "  %-24s %14s\n", "EI Premiums", FormatCurrency(ytd.InsurancePaidYtd))
	fmt.Fprintf(&buf, "  %-24s %14s\n", "Income Tax", FormatCurrency(ytd.FederalTaxYtd.Add(ytd.RegionalTaxYtd)))

	if c.Verbose && len(stub.Notes) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "NOTES:")
		for _, n := range stub.Notes {
			fmt.Fprintf(&buf, "• %s\n", n)
		}
	}
	return buf.Bytes(), nil
}
