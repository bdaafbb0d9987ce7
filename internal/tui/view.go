package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/paygo/internal/output"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderLoading()
	}

	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentScene {
	case SceneEmployees:
		content = m.renderEmployees()
	case SceneAddEmployee:
		content = m.renderAddEmployee()
	case ScenePayPeriod:
		content = m.renderPayPeriod()
	case SceneStub:
		content = m.renderStub()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render(fmt.Sprintf("%s Payroll", m.svc.CompanyName()))

	crumb := m.currentScene.String()
	if emp, ok := m.SelectedEmployee(); ok && (m.currentScene == ScenePayPeriod || m.currentScene == SceneStub) {
		crumb = fmt.Sprintf("%s / %s", crumb, emp.Name)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(crumb))
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	var shortcuts []string
	switch m.currentScene {
	case SceneEmployees:
		shortcuts = []string{
			formatShortcut("↑/↓", "select"),
			formatShortcut("enter", "pay period"),
			formatShortcut("a", "add"),
			formatShortcut("r", "reload"),
			formatShortcut("?", "help"),
			formatShortcut("q", "quit"),
		}
	case SceneAddEmployee, ScenePayPeriod:
		shortcuts = []string{
			formatShortcut("tab", "next field"),
			formatShortcut("enter", "submit"),
			formatShortcut("esc", "cancel"),
		}
	case SceneStub:
		shortcuts = []string{
			formatShortcut("n", "next period"),
			formatShortcut("p", "save pdf"),
			formatShortcut("esc", "employees"),
			formatShortcut("q", "quit"),
		}
	default:
		shortcuts = []string{formatShortcut("esc", "back"), formatShortcut("q", "quit")}
	}

	statusText := strings.Join(shortcuts, " • ")
	if m.status != "" {
		statusText = InfoStyle.Render(m.status) + "  " + statusText
	}
	return StatusBarStyle.Width(m.width).Render(statusText)
}

func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}
	return BorderStyle.Render("⠋ " + message)
}

func (m Model) renderError() string {
	return ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error()))
}

func (m Model) renderEmployees() string {
	if len(m.employees) == 0 {
		return BorderStyle.Render("No employees yet.\n\nPress a to add one.")
	}
	var b strings.Builder
	for i, emp := range m.employees {
		if i == m.selected {
			b.WriteString(SelectedItemStyle.Render("▸ " + emp.Label()))
		} else {
			b.WriteString(UnselectedItemStyle.Render("  " + emp.Label()))
		}
		b.WriteString("\n")
	}
	return BorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderAddEmployee() string {
	return BorderStyle.Render(m.employeeForm.view() + m.renderFormError())
}

func (m Model) renderPayPeriod() string {
	return BorderStyle.Render(m.periodForm.view() + m.renderFormError())
}

func (m Model) renderFormError() string {
	if m.formErr == "" {
		return ""
	}
	return "\n" + ErrorStyle.Render(m.formErr)
}

func (m Model) renderStub() string {
	if m.stub == nil {
		return BorderStyle.Render("No pay stub")
	}
	data, err := output.ConsoleFormatter{Verbose: true}.Format(m.stub)
	if err != nil {
		return ErrorStyle.Render(err.Error())
	}
	body := strings.TrimRight(string(data), "\n")
	if m.stub.Result.NegativeNetPay {
		body += "\n\n" + ErrorStyle.Render("Net pay is negative for this period")
	}
	return BorderStyle.Render(body)
}

func (m Model) renderHelp() string {
	helpText := `KEYBOARD SHORTCUTS:
  ↑/↓ j/k  Move through the employee list
  enter    Start a pay period for the selected employee
  a        Add an employee
  r        Reload employees
  tab      Next form field (shift+tab goes back)
  n        Pay the same employee again from the stub screen
  p        Save the pay stub as PDF
  ?        Show this help
  esc      Back to employees
  q/Ctrl+C Quit

PAY PERIOD FORM:
  Tips and commission may be left blank.
  Leave hourly wage blank to use the employee's wage.`
	return BorderStyle.Render(helpText)
}
