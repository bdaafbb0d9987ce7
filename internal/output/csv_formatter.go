package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// CSVFormatter renders one header row and one data row, suitable for
// appending periods into a spreadsheet.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string      { return "csv" }
func (c CSVFormatter) Extension() string { return "csv" }

var csvHeader = []string{
	"Company", "EmployeeID", "Employee", "Period", "PayDate", "Hours", "HourlyWage",
	"BasePay", "Tips", "Commission", "GrossPay", "CPP", "EI", "FederalTax", "RegionalTax",
	"TotalDeductions", "NetPay", "PeriodsPaidYTD", "GrossYTD",
}

func (c CSVFormatter) Format(stub *PayStub) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	r := stub.Result
	row := []string{
		stub.CompanyName,
		stub.EmployeeID,
		stub.EmployeeName,
		stub.PeriodLabel,
		formatDate(stub.PayDate),
		stub.HoursWorked.StringFixed(2),
		stub.HourlyWage.StringFixed(2),
		r.BasePay.StringFixed(2),
		stub.Tips.StringFixed(2),
		stub.Commission.StringFixed(2),
		r.GrossPay.StringFixed(2),
		r.PensionContribution.StringFixed(2),
		r.InsurancePremium.StringFixed(2),
		r.FederalTax.StringFixed(2),
		r.RegionalTax.StringFixed(2),
		r.TotalDeductions.StringFixed(2),
		r.NetPay.StringFixed(2),
		strconv.Itoa(r.UpdatedYtd.PeriodsPaid),
		r.UpdatedYtd.GrossPaidYtd.StringFixed(2),
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
