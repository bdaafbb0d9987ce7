package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/paygo/internal/domain"
)

var (
	upKey     = key.NewBinding(key.WithKeys("up", "k"))
	downKey   = key.NewBinding(key.WithKeys("down", "j"))
	selectKey = key.NewBinding(key.WithKeys("enter"))
	addKey    = key.NewBinding(key.WithKeys("a"))
	reloadKey = key.NewBinding(key.WithKeys("r"))
	againKey  = key.NewBinding(key.WithKeys("n"))
	saveKey   = key.NewBinding(key.WithKeys("p"))
	backKey   = key.NewBinding(key.WithKeys("esc"))
	helpKey   = key.NewBinding(key.WithKeys("?"))
	quitKey   = key.NewBinding(key.WithKeys("q"))
	forceQuit = key.NewBinding(key.WithKeys("ctrl+c"))
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case NavigateMsg:
		m.navigate(msg.Scene)
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case EmployeesLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.employees = msg.Employees
		if m.selected >= len(m.employees) {
			m.selected = 0
		}
		return m, nil

	case EmployeeAddedMsg:
		m.loading = false
		if msg.Err != nil {
			m.formErr = msg.Err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("Added %s", msg.Employee.Label())
		m.employeeForm.reset()
		m.navigate(SceneEmployees)
		m.loading = true
		m.loadingMessage = "Loading employees..."
		return m, loadEmployeesCmd(m.svc)

	case PayrollCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			if errors.Is(msg.Err, domain.ErrInvalidInput) {
				m.formErr = msg.Err.Error()
			} else {
				m.err = msg.Err
			}
			return m, nil
		}
		m.stub = msg.Stub
		m.status = ""
		m.navigate(SceneStub)
		return m, nil

	case StubSavedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.status = "Saved " + msg.Path
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, forceQuit) {
		return m, tea.Quit
	}
	// Any key dismisses an error
	if m.err != nil {
		m.err = nil
		return m, nil
	}
	if m.loading {
		return m, nil
	}

	editing := m.currentScene == SceneAddEmployee || m.currentScene == ScenePayPeriod
	switch {
	case key.Matches(msg, backKey):
		if m.currentScene != SceneEmployees {
			m.formErr = ""
			m.navigate(SceneEmployees)
		}
		return m, nil
	case !editing && key.Matches(msg, quitKey):
		return m, tea.Quit
	case !editing && key.Matches(msg, helpKey):
		m.navigate(SceneHelp)
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.currentScene {
	case SceneEmployees:
		return m.updateEmployees(msg)
	case SceneAddEmployee:
		return m.updateAddEmployee(msg)
	case ScenePayPeriod:
		return m.updatePayPeriod(msg)
	case SceneStub:
		return m.updateStub(msg)
	}
	return m, nil
}

func (m Model) updateEmployees(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, upKey):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(km, downKey):
		if m.selected < len(m.employees)-1 {
			m.selected++
		}
	case key.Matches(km, selectKey):
		m.startPayPeriod()
	case key.Matches(km, addKey):
		m.employeeForm.reset()
		m.formErr = ""
		m.navigate(SceneAddEmployee)
	case key.Matches(km, reloadKey):
		m.loading = true
		m.loadingMessage = "Loading employees..."
		return m, loadEmployeesCmd(m.svc)
	}
	return m, nil
}

func (m Model) updateAddEmployee(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, selectKey) {
		if !m.employeeForm.onLastField() {
			m.employeeForm.next()
			return m, nil
		}
		wage, err := parseAmount("hourly wage", m.employeeForm.value(fieldHourlyWage))
		if err != nil {
			m.formErr = err.Error()
			return m, nil
		}
		m.formErr = ""
		m.loading = true
		m.loadingMessage = "Saving employee..."
		return m, addEmployeeCmd(m.svc, m.employeeForm.value(fieldName), wage)
	}
	cmd := m.employeeForm.update(msg)
	return m, cmd
}

func (m Model) updatePayPeriod(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, selectKey) {
		if !m.periodForm.onLastField() {
			m.periodForm.next()
			return m, nil
		}
		emp, ok := m.SelectedEmployee()
		if !ok {
			m.navigate(SceneEmployees)
			return m, nil
		}
		in, err := m.periodInput()
		if err != nil {
			m.formErr = err.Error()
			return m, nil
		}
		m.formErr = ""
		m.loading = true
		m.loadingMessage = "Running payroll..."
		return m, runPayrollCmd(m.svc, emp.ID, in)
	}
	cmd := m.periodForm.update(msg)
	return m, cmd
}

func (m Model) updateStub(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || m.stub == nil {
		return m, nil
	}
	switch {
	case key.Matches(km, againKey):
		m.startPayPeriod()
	case key.Matches(km, saveKey):
		return m, saveStubCmd(m.stub, m.outputDir)
	}
	return m, nil
}
