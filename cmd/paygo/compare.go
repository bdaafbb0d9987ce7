package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/rgehrsitz/paygo/internal/breakeven"
	"github.com/rgehrsitz/paygo/internal/compare"
	"github.com/rgehrsitz/paygo/internal/config"
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/rgehrsitz/paygo/internal/output"
	"github.com/spf13/cobra"
)

// addProjectionFlags registers the pay flags shared by project, compare and solve
func addProjectionFlags(cmd *cobra.Command, hoursRequired bool) {
	cmd.Flags().String("employee", "", "Start from this employee's stored year-to-date totals")
	cmd.Flags().String("hours", "", "Hours worked each period (required)")
	cmd.Flags().String("wage", "", "Hourly wage (default: the employee's wage)")
	cmd.Flags().String("tips", "0", "Tips each period")
	cmd.Flags().String("commission", "0", "Commission each period")
	cmd.Flags().String("date", "", "First projected pay date YYYY-MM-DD (default: today)")
	if hoursRequired {
		_ = cmd.MarkFlagRequired("hours")
	}
}

// projectionInput reads the projection flags and opens the app. Without
// --employee the store is never touched.
func projectionInput(cmd *cobra.Command) (*app, string, domain.PayPeriodInput, error) {
	var in domain.PayPeriodInput
	var err error
	if in.HoursWorked, err = decimalFlag(cmd, "hours"); err != nil {
		return nil, "", in, err
	}
	if in.HourlyWage, err = decimalFlag(cmd, "wage"); err != nil {
		return nil, "", in, err
	}
	if in.Tips, err = decimalFlag(cmd, "tips"); err != nil {
		return nil, "", in, err
	}
	if in.Commission, err = decimalFlag(cmd, "commission"); err != nil {
		return nil, "", in, err
	}
	in.PayDate = time.Now()
	if s, _ := cmd.Flags().GetString("date"); s != "" {
		if in.PayDate, err = time.Parse("2006-01-02", s); err != nil {
			return nil, "", in, fmt.Errorf("invalid --date %q (use YYYY-MM-DD)", s)
		}
	}

	employeeID, _ := cmd.Flags().GetString("employee")
	cfg, err := loadAppConfig(cmd)
	if err != nil {
		return nil, "", in, err
	}
	if employeeID == "" {
		cfg.Store.Driver = config.StoreMemory
	}
	a, err := openAppWithConfig(cmd, cfg)
	if err != nil {
		return nil, "", in, err
	}
	return a, employeeID, in, nil
}

func projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project the rest of the year with the same pay every period",
		Long: `Settle every remaining pay period of the year without recording anything,
either from an empty year or from a registered employee's totals.

Examples:
  paygo project --hours 80 --wage 20 --date 2025-01-10
  paygo project --employee 6f1c... --hours 80 --date 2025-07-04 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, employeeID, in, err := projectionInput(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			projection, err := a.payroll.ProjectYear(cmd.Context(), employeeID, in)
			if err != nil {
				return err
			}
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(projection)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintf(w, "Period\tPay Date\tGross\tCPP\tEI\tFederal\tProvincial\tNet\t\n")
			for _, p := range projection.Periods {
				r := p.Result
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n", p.PeriodLabel, p.PayDate.Format("2006-01-02"),
					output.FormatCurrency(r.GrossPay), output.FormatCurrency(r.PensionContribution),
					output.FormatCurrency(r.InsurancePremium), output.FormatCurrency(r.FederalTax),
					output.FormatCurrency(r.RegionalTax), output.FormatCurrency(r.NetPay))
			}
			t := projection.Totals
			fmt.Fprintf(w, "Total\t\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
				output.FormatCurrency(t.GrossPay), output.FormatCurrency(t.PensionContribution),
				output.FormatCurrency(t.InsurancePremium), output.FormatCurrency(t.FederalTax),
				output.FormatCurrency(t.RegionalTax), output.FormatCurrency(t.NetPay))
			return w.Flush()
		},
	}
	addProjectionFlags(cmd, true)
	cmd.Flags().Bool("json", false, "Print the projection as JSON")
	return cmd
}

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare calculation policies over the rest of the year",
		Long: `Project the same pay under several calculation policies and show how CPP,
EI, income tax and net pay differ from the base policy.

Available variants: configured, canonical, annual-exemption, gross-basis, annualized-tax

Examples:
  paygo compare --hours 80 --wage 20 --tips 150 --date 2025-01-10
  paygo compare --hours 80 --wage 20 --base canonical --variants gross-basis,annual-exemption -f csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			if _, err := compare.Render(&compare.ComparisonSet{}, format); err != nil {
				return err
			}
			a, employeeID, in, err := projectionInput(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			base, _ := cmd.Flags().GetString("base")
			variants, _ := cmd.Flags().GetStringSlice("variants")
			set, err := a.payroll.ComparePolicies(cmd.Context(), employeeID, in, compare.CompareOptions{
				BaseVariant: base,
				Variants:    variants,
			})
			if err != nil {
				return err
			}
			out, err := compare.Render(set, format)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	addProjectionFlags(cmd, true)
	cmd.Flags().String("base", compare.VariantConfigured, "Base policy variant")
	cmd.Flags().StringSlice("variants", nil, "Variants to compare (default: all others)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	return cmd
}

func solveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Find the hours or hourly wage that yields a target net pay",
		Long: `Gross up a pay period: search for the smallest hours (or hourly wage) whose
net pay after CPP, EI and income tax reaches --net. Nothing is recorded.

Examples:
  paygo solve --net 1500 --wage 20 --date 2025-01-15
  paygo solve --net 1500 --for wage --hours 80 --employee 6f1c...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			forFlag, _ := cmd.Flags().GetString("for")
			target := breakeven.SolveTarget(forFlag)
			if target != breakeven.SolveHours && target != breakeven.SolveWage {
				return fmt.Errorf("invalid --for %q (use hours or wage)", target)
			}
			net, err := decimalFlag(cmd, "net")
			if err != nil {
				return err
			}
			a, employeeID, in, err := projectionInput(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			in.PeriodLabel = "solve"

			result, err := a.payroll.SolveForNet(cmd.Context(), employeeID, in, target, net)
			if err != nil {
				return err
			}
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).Format(result))
			return err
		},
	}
	addProjectionFlags(cmd, false)
	cmd.Flags().String("net", "", "Target net pay (required)")
	cmd.Flags().String("for", string(breakeven.SolveHours), "Value to solve for (hours, wage)")
	cmd.Flags().Bool("json", false, "Print the result as JSON")
	_ = cmd.MarkFlagRequired("net")
	return cmd
}
