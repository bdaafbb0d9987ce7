package main

import (
	"fmt"

	"github.com/rgehrsitz/paygo/internal/config"
	"github.com/rgehrsitz/paygo/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and validate jurisdiction rules",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the rules applied to a year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadAppConfig(cmd)
			if err != nil {
				return err
			}
			provider, err := cfg.LoadRulesProvider()
			if err != nil {
				return err
			}
			year, _ := cmd.Flags().GetInt("year")
			if year == 0 {
				year = provider.DefaultYear()
			}
			rules, err := provider.RulesFor(year)
			if err != nil {
				return err
			}
			if rules.Year != year {
				fmt.Fprintf(cmd.ErrOrStderr(), "No rules for %d, falling back to %d\n", year, rules.Year)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# configured years: %v\n", provider.Years())
			for _, n := range output.PolicyNotes(rules) {
				fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", n)
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(rules)
		},
	}
	show.Flags().Int("year", 0, "Tax year (default: the rules file's default year)")

	validate := &cobra.Command{
		Use:   "validate [rules-file]",
		Short: "Validate a rules file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rf, err := config.NewRulesParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rules file %s is valid (%d years, default %d)\n", args[0], len(rf.Years), rf.DefaultYear)
			return nil
		},
	}

	cmd.AddCommand(show, validate)
	return cmd
}
