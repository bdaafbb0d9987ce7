package output

import (
	"encoding/json"
)

// JSONFormatter renders the stub as indented JSON with amounts fixed to cents
type JSONFormatter struct{}

func (j JSONFormatter) Name() string      { return "json" }
func (j JSONFormatter) Extension() string { return "json" }

type jsonStub struct {
	Company        string            `json:"company"`
	EmployeeID     string            `json:"employee_id"`
	EmployeeName   string            `json:"employee_name"`
	PeriodLabel    string            `json:"period_label"`
	PayDate        string            `json:"pay_date"`
	HoursWorked    string            `json:"hours_worked"`
	HourlyWage     string            `json:"hourly_wage"`
	Earnings       map[string]string `json:"earnings"`
	Deductions     map[string]string `json:"deductions"`
	NetPay         string            `json:"net_pay"`
	NegativeNetPay bool              `json:"negative_net_pay"`
	YearToDate     jsonYtd           `json:"year_to_date"`
	Notes          []string          `json:"notes,omitempty"`
}

type jsonYtd struct {
	Year               int    `json:"year"`
	PeriodsPaid        int    `json:"periods_paid"`
	GrossPaid          string `json:"gross_paid"`
	PensionContributed string `json:"cpp_contributed"`
	InsurancePaid      string `json:"ei_paid"`
	TaxableIncome      string `json:"taxable_income"`
	FederalTax         string `json:"federal_tax"`
	RegionalTax        string `json:"regional_tax"`
}

func (j JSONFormatter) Format(stub *PayStub) ([]byte, error) {
	r := stub.Result
	ytd := r.UpdatedYtd
	out := jsonStub{
		Company:      stub.CompanyName,
		EmployeeID:   stub.EmployeeID,
		EmployeeName: stub.EmployeeName,
		PeriodLabel:  stub.PeriodLabel,
		PayDate:      formatDate(stub.PayDate),
		HoursWorked:  stub.HoursWorked.StringFixed(2),
		HourlyWage:   stub.HourlyWage.StringFixed(2),
		Earnings: map[string]string{
			"base_pay":   r.BasePay.StringFixed(2),
			"tips":       stub.Tips.StringFixed(2),
			"commission": stub.Commission.StringFixed(2),
			"gross_pay":  r.GrossPay.StringFixed(2),
		},
		Deductions: map[string]string{
			"cpp":          r.PensionContribution.StringFixed(2),
			"ei":           r.InsurancePremium.StringFixed(2),
			"federal_tax":  r.FederalTax.StringFixed(2),
			"regional_tax": r.RegionalTax.StringFixed(2),
			"total":        r.TotalDeductions.StringFixed(2),
		},
		NetPay:         r.NetPay.StringFixed(2),
		NegativeNetPay: r.NegativeNetPay,
		YearToDate: jsonYtd{
			Year:               ytd.Year,
			PeriodsPaid:        ytd.PeriodsPaid,
			GrossPaid:          ytd.GrossPaidYtd.StringFixed(2),
			PensionContributed: ytd.PensionContributedYtd.StringFixed(2),
			InsurancePaid:      ytd.InsurancePaidYtd.StringFixed(2),
			TaxableIncome:      ytd.TaxableIncomeYtd.StringFixed(2),
			FederalTax:         ytd.FederalTaxYtd.StringFixed(2),
			RegionalTax:        ytd.RegionalTaxYtd.StringFixed(2),
		},
		Notes: stub.Notes,
	}
	return json.MarshalIndent(out, "", "  ")
}
