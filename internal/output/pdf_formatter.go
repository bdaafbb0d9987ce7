package output

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// PDFFormatter renders a one-page A4 payslip
type PDFFormatter struct{}

func (p PDFFormatter) Name() string      { return "pdf" }
func (p PDFFormatter) Extension() string { return "pdf" }

func (p PDFFormatter) Format(stub *PayStub) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Pay Stub %s %s", stub.EmployeeName, stub.PeriodLabel), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, stub.CompanyName)
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Payslip")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s", stub.EmployeeName))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Pay Period: %s", stub.PeriodLabel))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Pay Date: %s", formatDate(stub.PayDate)))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Hours: %s @ %s/hr", stub.HoursWorked.StringFixed(2), FormatCurrency(stub.HourlyWage)))
	pdf.Ln(10)

	section := func(title string, lines []stubLine) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, title)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, l := range lines {
			pdf.CellFormat(80, 7, l.Label, "", 0, "L", false, 0, "")
			pdf.CellFormat(40, 7, FormatCurrency(l.Amount), "", 1, "R", false, 0, "")
		}
		pdf.Ln(3)
	}
	section("Earnings", stub.earningsLines())
	section("Deductions", stub.deductionLines())

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(80, 8, "Net Pay", "T", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, FormatCurrency(stub.Result.NetPay), "T", 1, "R", false, 0, "")
	if stub.Result.NegativeNetPay {
		pdf.SetTextColor(176, 0, 32)
		pdf.Cell(0, 8, "Deductions exceed gross pay for this period.")
		pdf.Ln(8)
		pdf.SetTextColor(0, 0, 0)
	}

	ytd := stub.Result.UpdatedYtd
	pdf.Ln(4)
	section(fmt.Sprintf("Year to Date (%d)", ytd.Year), []stubLine{
		{"Gross Pay", ytd.GrossPaidYtd},
		{"CPP Contributions", ytd.PensionContributedYtd},
		{"EI Premiums", ytd.InsurancePaidYtd},
		{"Income Tax", ytd.FederalTaxYtd.Add(ytd.RegionalTaxYtd)},
	})

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
