package tui

import (
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/rgehrsitz/paygo/internal/output"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneEmployees Scene = iota
	SceneAddEmployee
	ScenePayPeriod
	SceneStub
	SceneHelp
)

func (s Scene) String() string {
	switch s {
	case SceneEmployees:
		return "Employees"
	case SceneAddEmployee:
		return "Add Employee"
	case ScenePayPeriod:
		return "Pay Period"
	case SceneStub:
		return "Pay Stub"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// EmployeesLoadedMsg carries the employee list from the store
type EmployeesLoadedMsg struct {
	Employees []domain.Employee
	Err       error
}

// EmployeeAddedMsg signals the add-employee form was saved
type EmployeeAddedMsg struct {
	Employee domain.Employee
	Err      error
}

// PayrollCompleteMsg signals a pay period has been settled and stored
type PayrollCompleteMsg struct {
	Stub *output.PayStub
	Err  error
}

// StubSavedMsg reports where a pay stub file was written
type StubSavedMsg struct {
	Path string
	Err  error
}
