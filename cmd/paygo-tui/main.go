package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/paygo/internal/config"
	"github.com/rgehrsitz/paygo/internal/payroll"
	"github.com/rgehrsitz/paygo/internal/store"
	"github.com/rgehrsitz/paygo/internal/tui"
)

func main() {
	// Optional config file path; defaults apply when paygo.yaml is absent
	configPath := "paygo.yaml"
	explicit := len(os.Args) > 1
	if explicit {
		configPath = os.Args[1]
	}

	cfg, err := config.LoadAppConfig(configPath, !explicit)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	rules, err := cfg.LoadRulesProvider()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	st, err := store.Open(cfg.Store)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	model := tui.NewModel(payroll.NewService(rules, st, nil, cfg.CompanyName))

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	st.Close()
	if err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
