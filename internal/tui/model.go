package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/rgehrsitz/paygo/internal/output"
)

// PayrollService is the part of payroll.Service the TUI drives
type PayrollService interface {
	CompanyName() string
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	AddEmployee(ctx context.Context, name string, hourlyWage decimal.Decimal) (domain.Employee, error)
	RunPayroll(ctx context.Context, employeeID string, in domain.PayPeriodInput) (*output.PayStub, error)
}

// Pay period form fields
const (
	fieldHours = iota
	fieldTips
	fieldCommission
	fieldWage
	fieldLabel
	fieldPayDate
)

// Add employee form fields
const (
	fieldName = iota
	fieldHourlyWage
)

// Model represents the entire application state
type Model struct {
	svc       PayrollService
	outputDir string
	now       func() time.Time

	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	employees []domain.Employee
	selected  int

	employeeForm form
	periodForm   form
	formErr      string

	stub   *output.PayStub
	status string

	// Error state
	err error

	// Loading state
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model
func NewModel(svc PayrollService) Model {
	return Model{
		svc:          svc,
		outputDir:    ".",
		now:          time.Now,
		currentScene: SceneEmployees,
		employeeForm: newForm(
			newField("Name", "Jane Doe", 64),
			newField("Hourly wage", "20.00", 10),
		),
		periodForm: newForm(
			newField("Hours worked", "80", 8),
			newField("Tips", "0.00", 10),
			newField("Commission", "0.00", 10),
			newField("Hourly wage", "", 10),
			newField("Period", "2025-01", 32),
			newField("Pay date", "YYYY-MM-DD", 10),
		),
		width:   80,
		height:  24,
		loading: true,
	}
}

// SetOutputDir sets where saved pay stubs are written
func (m *Model) SetOutputDir(dir string) {
	m.outputDir = dir
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadEmployeesCmd(m.svc)
}

// SelectedEmployee returns the highlighted employee, if any
func (m Model) SelectedEmployee() (domain.Employee, bool) {
	if m.selected >= 0 && m.selected < len(m.employees) {
		return m.employees[m.selected], true
	}
	return domain.Employee{}, false
}

func loadEmployeesCmd(svc PayrollService) tea.Cmd {
	return func() tea.Msg {
		emps, err := svc.ListEmployees(context.Background())
		return EmployeesLoadedMsg{Employees: emps, Err: err}
	}
}

func addEmployeeCmd(svc PayrollService, name string, wage decimal.Decimal) tea.Cmd {
	return func() tea.Msg {
		emp, err := svc.AddEmployee(context.Background(), name, wage)
		return EmployeeAddedMsg{Employee: emp, Err: err}
	}
}

func runPayrollCmd(svc PayrollService, employeeID string, in domain.PayPeriodInput) tea.Cmd {
	return func() tea.Msg {
		stub, err := svc.RunPayroll(context.Background(), employeeID, in)
		return PayrollCompleteMsg{Stub: stub, Err: err}
	}
}

func saveStubCmd(stub *output.PayStub, dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := output.WriteFormatted(output.PDFFormatter{}, stub, dir)
		return StubSavedMsg{Path: path, Err: err}
	}
}

// parseAmount reads an optional money field; blank means zero
func parseAmount(label, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s must be a number", label)
	}
	return d, nil
}

// periodInput builds a pay period from the form. Validation of ranges is
// left to the service so the TUI reports the same messages as the API.
func (m Model) periodInput() (domain.PayPeriodInput, error) {
	f := m.periodForm
	var in domain.PayPeriodInput
	var err error
	if f.value(fieldHours) == "" {
		return in, fmt.Errorf("hours worked is required")
	}
	if in.HoursWorked, err = parseAmount("hours worked", f.value(fieldHours)); err != nil {
		return in, err
	}
	if in.Tips, err = parseAmount("tips", f.value(fieldTips)); err != nil {
		return in, err
	}
	if in.Commission, err = parseAmount("commission", f.value(fieldCommission)); err != nil {
		return in, err
	}
	if in.HourlyWage, err = parseAmount("hourly wage", f.value(fieldWage)); err != nil {
		return in, err
	}
	in.PeriodLabel = f.value(fieldLabel)

	in.PayDate = m.now()
	if s := f.value(fieldPayDate); s != "" {
		if in.PayDate, err = time.Parse("2006-01-02", s); err != nil {
			return in, fmt.Errorf("pay date must be YYYY-MM-DD")
		}
	}
	return in, nil
}

// startPayPeriod prepares the pay period form for the selected employee
func (m *Model) startPayPeriod() {
	emp, ok := m.SelectedEmployee()
	if !ok {
		return
	}
	m.periodForm.reset()
	m.periodForm.setPlaceholder(fieldWage, emp.HourlyWage.StringFixed(2))
	m.periodForm.setValue(fieldPayDate, m.now().Format("2006-01-02"))
	m.formErr = ""
	m.navigate(ScenePayPeriod)
}

func (m *Model) navigate(s Scene) {
	if s == m.currentScene {
		return
	}
	m.previousScene = m.currentScene
	m.currentScene = s
}
