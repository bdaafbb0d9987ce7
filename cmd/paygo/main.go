package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/paygo/internal/calculation"
	"github.com/rgehrsitz/paygo/internal/config"
	"github.com/rgehrsitz/paygo/internal/payroll"
	"github.com/rgehrsitz/paygo/internal/store"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "paygo %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "paygo",
		Short: "Year-to-date aware payroll calculator",
		Long: `Payroll deductions for hourly employees: CPP, EI, federal and provincial
income tax, settled one pay period at a time against each employee's
year-to-date totals.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "paygo.yaml", "Path to app config file (optional)")
	root.PersistentFlags().String("rules", "", "Path to jurisdiction rules file (default: built-in rules)")
	root.PersistentFlags().String("store", "", "Store driver override (sqlite, yaml, memory)")
	root.PersistentFlags().String("db", "", "Store path override")
	root.PersistentFlags().Bool("debug", false, "Enable debug output for detailed calculations")

	root.AddCommand(employeeCmd())
	root.AddCommand(runCmd())
	root.AddCommand(calcCmd())
	root.AddCommand(ytdCmd())
	root.AddCommand(projectCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(solveCmd())
	root.AddCommand(rulesCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())
	return root
}

// app bundles what most commands need
type app struct {
	cfg     config.AppConfig
	rules   *config.StaticRulesProvider
	store   store.Store
	payroll *payroll.Service
}

func (a *app) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

// loadAppConfig reads --config and applies the command-line overrides
func loadAppConfig(cmd *cobra.Command) (config.AppConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	explicit := cmd.Flags().Changed("config")
	cfg, err := config.LoadAppConfig(path, !explicit)
	if err != nil {
		return cfg, err
	}
	if v, _ := cmd.Flags().GetString("rules"); v != "" {
		cfg.RulesFile = v
	}
	if v, _ := cmd.Flags().GetString("store"); v != "" {
		cfg.Store.Driver = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.Store.Path = v
	}
	return cfg, cfg.Validate()
}

// openApp loads config and rules, opens the store and builds the payroll service
func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadAppConfig(cmd)
	if err != nil {
		return nil, err
	}
	return openAppWithConfig(cmd, cfg)
}

func openAppWithConfig(cmd *cobra.Command, cfg config.AppConfig) (*app, error) {
	rules, err := cfg.LoadRulesProvider()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(cfg.Store)
	if err != nil {
		return nil, err
	}
	svc := payroll.NewService(rules, st, calculation.NewSettlementEngine(), cfg.CompanyName)
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		svc.SetLogger(simpleCLILogger{})
	}
	return &app{cfg: cfg, rules: rules, store: st, payroll: svc}, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
