package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/rgehrsitz/paygo/internal/config"
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/rgehrsitz/paygo/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// addPeriodFlags registers the pay component flags shared by run and calc
func addPeriodFlags(cmd *cobra.Command) {
	cmd.Flags().String("hours", "", "Hours worked (required)")
	cmd.Flags().String("wage", "", "Hourly wage")
	cmd.Flags().String("tips", "0", "Tips")
	cmd.Flags().String("commission", "0", "Commission")
	cmd.Flags().String("period", "", "Pay period label, e.g. 2025-01 (required)")
	cmd.Flags().String("date", "", "Pay date YYYY-MM-DD (default: today)")
	cmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv, html, pdf)")
	cmd.Flags().String("out", "", "Write the pay stub into this directory instead of stdout")
	cmd.Flags().BoolP("verbose", "v", false, "Include calculation notes in console output")
	_ = cmd.MarkFlagRequired("hours")
	_ = cmd.MarkFlagRequired("period")
}

func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	s, _ := cmd.Flags().GetString(name)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", name, s, err)
	}
	return d, nil
}

// periodFromFlags also rejects an unknown --format before anything is settled
func periodFromFlags(cmd *cobra.Command) (domain.PayPeriodInput, error) {
	var in domain.PayPeriodInput
	var err error
	if format, _ := cmd.Flags().GetString("format"); output.GetFormatterByName(format) == nil {
		_, err := output.Render(&output.PayStub{}, format)
		return in, err
	}
	if in.HoursWorked, err = decimalFlag(cmd, "hours"); err != nil {
		return in, err
	}
	if in.HourlyWage, err = decimalFlag(cmd, "wage"); err != nil {
		return in, err
	}
	if in.Tips, err = decimalFlag(cmd, "tips"); err != nil {
		return in, err
	}
	if in.Commission, err = decimalFlag(cmd, "commission"); err != nil {
		return in, err
	}
	in.PeriodLabel, _ = cmd.Flags().GetString("period")

	in.PayDate = time.Now()
	if s, _ := cmd.Flags().GetString("date"); s != "" {
		if in.PayDate, err = time.Parse("2006-01-02", s); err != nil {
			return in, fmt.Errorf("invalid --date %q (use YYYY-MM-DD)", s)
		}
	}
	return in, nil
}

// writeStub prints the stub or saves it under --out
func writeStub(cmd *cobra.Command, stub *output.PayStub) error {
	format, _ := cmd.Flags().GetString("format")
	verbose, _ := cmd.Flags().GetBool("verbose")
	outDir, _ := cmd.Flags().GetString("out")

	f := output.GetFormatterByName(format)
	if f == nil {
		_, err := output.Render(stub, format)
		return err
	}
	if _, ok := f.(output.ConsoleFormatter); ok {
		f = output.ConsoleFormatter{Verbose: verbose}
	}

	if outDir != "" {
		path, err := output.WriteFormatted(f, stub, outDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Pay stub written to %s\n", path)
		return nil
	}
	data, err := f.Format(stub)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [employee-id]",
		Short: "Run payroll for one employee and pay period",
		Long: `Settle one pay period for a registered employee and record the new
year-to-date totals. The hourly wage defaults to the employee's wage.

Examples:
  paygo run 6f1c... --hours 80 --period 2025-01 --date 2025-01-15
  paygo run 6f1c... --hours 80 --tips 120 --period 2025-02 --date 2025-01-29 -f pdf --out stubs/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := periodFromFlags(cmd)
			if err != nil {
				return err
			}
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			stub, err := a.payroll.RunPayroll(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			if stub.Result.NegativeNetPay {
				fmt.Fprintln(cmd.ErrOrStderr(), "Warning: deductions exceed gross pay for this period")
			}
			return writeStub(cmd, stub)
		},
	}
	addPeriodFlags(cmd)
	return cmd
}

func calcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate deductions for a pay period without recording it",
		Long: `Settle a single pay period against an optional year-to-date snapshot
read from YAML. Nothing is stored.

Examples:
  paygo calc --hours 80 --wage 20 --period 2025-01 --date 2025-01-15
  paygo calc --hours 80 --wage 20 --period 2025-07 --date 2025-07-02 --ytd ytd.yaml -f json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := periodFromFlags(cmd)
			if err != nil {
				return err
			}
			ytd := domain.NewEmployeeYtd("", in.PayDate.Year())
			if path, _ := cmd.Flags().GetString("ytd"); path != "" {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read file %s: %w", path, err)
				}
				if err := yaml.Unmarshal(data, &ytd); err != nil {
					return fmt.Errorf("failed to parse YAML: %w", err)
				}
			}
			cfg, err := loadAppConfig(cmd)
			if err != nil {
				return err
			}
			// calc never touches the store
			cfg.Store.Driver = config.StoreMemory
			a, err := openAppWithConfig(cmd, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			name, _ := cmd.Flags().GetString("name")
			stub, err := a.payroll.Calculate(name, in, ytd)
			if err != nil {
				return err
			}
			return writeStub(cmd, stub)
		},
	}
	addPeriodFlags(cmd)
	cmd.Flags().String("ytd", "", "YAML file with the year-to-date snapshot")
	cmd.Flags().String("name", "", "Employee name printed on the stub")
	_ = cmd.MarkFlagRequired("wage")
	return cmd
}

func ytdCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ytd [employee-id]",
		Short: "Show an employee's year-to-date totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, _ := cmd.Flags().GetInt("year")
			if year == 0 {
				year = time.Now().Year()
			}
			asYAML, _ := cmd.Flags().GetBool("yaml")

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			emp, err := a.payroll.GetEmployee(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			ytd, err := a.payroll.Ytd(cmd.Context(), emp.ID, year)
			if err != nil {
				return err
			}
			if asYAML {
				return yaml.NewEncoder(cmd.OutOrStdout()).Encode(ytd)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d year to date\n", emp.Label(), year)
			rows := []struct {
				label string
				value string
			}{
				{"Periods paid", strconv.Itoa(ytd.PeriodsPaid)},
				{"Gross pay", output.FormatCurrency(ytd.GrossPaidYtd)},
				{"Taxable income", output.FormatCurrency(ytd.TaxableIncomeYtd)},
				{"CPP contributions", output.FormatCurrency(ytd.PensionContributedYtd)},
				{"EI premiums", output.FormatCurrency(ytd.InsurancePaidYtd)},
				{"Federal tax", output.FormatCurrency(ytd.FederalTaxYtd)},
				{"Provincial tax", output.FormatCurrency(ytd.RegionalTaxYtd)},
			}
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%s\t\n", r.label, r.value)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Int("year", 0, "Calendar year (default: current year)")
	cmd.Flags().Bool("yaml", false, "Print the snapshot as YAML (usable with calc --ytd)")
	return cmd
}
