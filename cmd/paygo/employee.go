package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func employeeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Manage the employee registry",
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Register an employee",
		Long: `Register an employee with a name and hourly wage. The employee starts
with no year-to-date history.

Examples:
  paygo employee add --name "Jane Doe" --wage 20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			wageStr, _ := cmd.Flags().GetString("wage")
			wage, err := decimal.NewFromString(wageStr)
			if err != nil {
				return fmt.Errorf("invalid --wage %q: %w", wageStr, err)
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			emp, err := a.payroll.AddEmployee(cmd.Context(), name, wage)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s with id %s\n", emp.Label(), emp.ID)
			return nil
		},
	}
	add.Flags().String("name", "", "Employee name (required)")
	add.Flags().String("wage", "", "Hourly wage (required)")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("wage")

	list := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			emps, err := a.payroll.ListEmployees(cmd.Context())
			if err != nil {
				return err
			}
			if len(emps) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No employees registered")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEMPLOYEE\tADDED")
			for _, e := range emps {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, e.Label(), e.CreatedAt.Format("2006-01-02"))
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}
