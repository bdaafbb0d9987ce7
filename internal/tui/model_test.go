package tui

import (
	"errors"
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/paygo/internal/config"
	"github.com/rgehrsitz/paygo/internal/payroll"
	"github.com/rgehrsitz/paygo/internal/store"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	rules, err := config.DefaultRulesProvider()
	require.NoError(t, err)
	svc := payroll.NewService(rules, store.NewMemory(), nil, "SugaWax Zone")
	m := NewModel(svc)
	m.now = func() time.Time { return time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC) }
	m.SetOutputDir(t.TempDir())
	m, _ = send(m, m.Init()())
	return m
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	nm, cmd := m.Update(msg)
	return nm.(Model), cmd
}

// exec runs a command and feeds its message back, as the tea runtime would
func exec(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	return send(m, cmd())
}

func typeText(m Model, s string) Model {
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func press(m Model, k tea.KeyType) (Model, tea.Cmd) {
	return send(m, tea.KeyMsg{Type: k})
}

func addEmployee(t *testing.T, m Model, name, wage string) Model {
	t.Helper()
	m = typeText(m, "a")
	require.Equal(t, SceneAddEmployee, m.currentScene)
	m = typeText(m, name)
	m, _ = press(m, tea.KeyEnter)
	m = typeText(m, wage)
	m, cmd := press(m, tea.KeyEnter)
	m, cmd = exec(t, m, cmd)
	m, _ = exec(t, m, cmd)
	return m
}

func TestModel_StartsLoadedWithNoEmployees(t *testing.T) {
	m := newTestModel(t)
	assert.False(t, m.loading)
	assert.Equal(t, SceneEmployees, m.currentScene)
	assert.Contains(t, m.View(), "No employees yet")
	assert.Contains(t, m.View(), "SugaWax Zone Payroll")
}

func TestModel_AddEmployee(t *testing.T) {
	m := newTestModel(t)
	m = addEmployee(t, m, "Jane Doe", "20")

	assert.Equal(t, SceneEmployees, m.currentScene)
	require.Len(t, m.employees, 1)
	assert.Equal(t, "Jane Doe", m.employees[0].Name)
	assert.Equal(t, "Added Jane Doe ($20.00)", m.status)
	assert.Contains(t, m.View(), "Jane Doe ($20.00)")
}

func TestModel_AddEmployeeRejectsBadWage(t *testing.T) {
	m := newTestModel(t)
	m = typeText(m, "a")
	m = typeText(m, "quinn")
	assert.Equal(t, SceneAddEmployee, m.currentScene, "typing q in a form must not quit")
	assert.Equal(t, "quinn", m.employeeForm.value(fieldName))

	m, _ = press(m, tea.KeyEnter)
	m = typeText(m, "lots")
	m, _ = press(m, tea.KeyEnter)
	assert.Equal(t, "hourly wage must be a number", m.formErr)

	m, _ = press(m, tea.KeyEsc)
	assert.Equal(t, SceneEmployees, m.currentScene)
	assert.Empty(t, m.formErr)
}

func TestModel_RunPayrollAndSaveStub(t *testing.T) {
	m := newTestModel(t)
	m = addEmployee(t, m, "Jane Doe", "20")

	m, _ = press(m, tea.KeyEnter)
	require.Equal(t, ScenePayPeriod, m.currentScene)
	assert.Equal(t, "2025-01-15", m.periodForm.value(fieldPayDate))

	m = typeText(m, "80")
	m, _ = press(m, tea.KeyEnter) // tips
	m, _ = press(m, tea.KeyEnter) // commission
	m, _ = press(m, tea.KeyEnter) // wage
	m, _ = press(m, tea.KeyEnter) // label
	m = typeText(m, "2025-01")
	m, _ = press(m, tea.KeyEnter) // pay date
	m, cmd := press(m, tea.KeyEnter)
	m, _ = exec(t, m, cmd)

	require.Equal(t, SceneStub, m.currentScene)
	require.NotNil(t, m.stub)
	assert.Equal(t, "1306.06", m.stub.Result.NetPay.StringFixed(2))
	assert.Contains(t, m.View(), "$1306.06")

	m, cmd = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	m, _ = exec(t, m, cmd)
	require.Contains(t, m.status, "Saved ")
	_, err := os.Stat(m.status[len("Saved "):])
	assert.NoError(t, err)

	m = typeText(m, "n")
	assert.Equal(t, ScenePayPeriod, m.currentScene)
	assert.Empty(t, m.periodForm.value(fieldHours))
}

func TestModel_PayPeriodValidation(t *testing.T) {
	m := newTestModel(t)
	m = addEmployee(t, m, "Jane Doe", "20")
	m, _ = press(m, tea.KeyEnter)

	// hours left blank
	for i := 0; i < 5; i++ {
		m, _ = press(m, tea.KeyEnter)
	}
	m, _ = press(m, tea.KeyEnter)
	assert.Equal(t, "hours worked is required", m.formErr)

	// negative tips are rejected by the service and shown inline
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	for m.periodForm.focus > 0 {
		m, _ = send(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	}
	m = typeText(m, "80")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "-5")
	for !m.periodForm.onLastField() {
		m, _ = press(m, tea.KeyTab)
	}
	m.periodForm.setValue(fieldLabel, "2025-01")
	m, cmd := press(m, tea.KeyEnter)
	m, _ = exec(t, m, cmd)
	assert.Equal(t, ScenePayPeriod, m.currentScene)
	assert.Contains(t, m.formErr, "tips cannot be negative")
}

func TestModel_ErrorDismissedByAnyKey(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(m, ErrorMsg{Err: errors.New("disk full")})
	assert.Contains(t, m.View(), "Error: disk full")
	m = typeText(m, "x")
	assert.Nil(t, m.err)
}

func TestModel_QuitAndHelp(t *testing.T) {
	m := newTestModel(t)
	m = typeText(m, "?")
	assert.Equal(t, SceneHelp, m.currentScene)
	assert.Contains(t, m.View(), "KEYBOARD SHORTCUTS")
	m, _ = press(m, tea.KeyEsc)
	assert.Equal(t, SceneEmployees, m.currentScene)

	_, cmd := send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestModel_SelectionBounds(t *testing.T) {
	m := newTestModel(t)
	m = addEmployee(t, m, "Al", "18")
	m = addEmployee(t, m, "Bea", "21")
	require.Len(t, m.employees, 2)

	m, _ = press(m, tea.KeyUp)
	assert.Equal(t, 0, m.selected)
	m, _ = press(m, tea.KeyDown)
	m, _ = press(m, tea.KeyDown)
	assert.Equal(t, 1, m.selected)
	emp, ok := m.SelectedEmployee()
	require.True(t, ok)
	assert.Equal(t, "Bea", emp.Name)
}
