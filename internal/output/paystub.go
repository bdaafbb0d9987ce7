package output

import (
	"time"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

// PayStub is everything printed on an employee's pay stub for one period
type PayStub struct {
	CompanyName   string
	EmployeeID    string
	EmployeeName  string
	PeriodLabel   string
	PayDate       time.Time
	HoursWorked   decimal.Decimal
	HourlyWage    decimal.Decimal
	Tips          decimal.Decimal
	Commission    decimal.Decimal
	FederalLabel  string
	RegionalLabel string
	Result        domain.SettlementResult
	Notes         []string
}

// NewPayStub assembles a stub from a settled period
func NewPayStub(company string, emp domain.Employee, in domain.PayPeriodInput, rules *domain.JurisdictionRules, res domain.SettlementResult) PayStub {
	stub := PayStub{
		CompanyName:   company,
		EmployeeID:    emp.ID,
		EmployeeName:  emp.Name,
		PeriodLabel:   in.PeriodLabel,
		PayDate:       in.PayDate,
		HoursWorked:   in.HoursWorked,
		HourlyWage:    in.HourlyWage,
		Tips:          in.Tips,
		Commission:    in.Commission,
		FederalLabel:  "Federal Tax",
		RegionalLabel: "Provincial Tax",
		Result:        res,
	}
	if rules != nil {
		if rules.Federal.Name != "" {
			stub.FederalLabel = rules.Federal.Name + " Tax"
		}
		if rules.Regional.Name != "" {
			stub.RegionalLabel = rules.Regional.Name + " Tax"
		}
		stub.Notes = PolicyNotes(rules)
	}
	if res.NegativeNetPay {
		stub.Notes = append(stub.Notes, "Deductions exceed gross pay for this period")
	}
	return stub
}

// stubLine is one labelled amount, in the order every formatter prints them
type stubLine struct {
	Label  string
	Amount decimal.Decimal
}

func (s PayStub) earningsLines() []stubLine {
	return []stubLine{
		{"Base Pay", s.Result.BasePay},
		{"Tips", s.Tips},
		{"Commission", s.Commission},
		{"Gross Pay", s.Result.GrossPay},
	}
}

func (s PayStub) deductionLines() []stubLine {
	return []stubLine{
		{"CPP Contribution", s.Result.PensionContribution},
		{"EI Premium", s.Result.InsurancePremium},
		{s.FederalLabel, s.Result.FederalTax},
		{s.RegionalLabel, s.Result.RegionalTax},
		{"Total Deductions", s.Result.TotalDeductions},
	}
}

// FormatCurrency formats a decimal as currency
func FormatCurrency(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-$" + amount.Neg().StringFixed(2)
	}
	return "$" + amount.StringFixed(2)
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
