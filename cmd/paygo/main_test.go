package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs a fresh root command and returns what it wrote to stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func storeArgs(t *testing.T) []string {
	t.Helper()
	return []string{"--store", "yaml", "--db", filepath.Join(t.TempDir(), "payroll.yaml")}
}

func addEmployee(t *testing.T, store []string, name, wage string) string {
	t.Helper()
	out, err := execute(t, append([]string{"employee", "add", "--name", name, "--wage", wage}, store...)...)
	require.NoError(t, err)
	fields := strings.Fields(out)
	require.NotEmpty(t, fields)
	return fields[len(fields)-1]
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "paygo", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"employee", "run", "calc", "ytd", "project", "compare", "solve", "rules", "serve", "version"} {
		found := false
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "command %q not registered", name)
	}
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	_, err := execute(t, "invalid-command")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "paygo dev")
}

func TestEmployeeRunAndYtd(t *testing.T) {
	store := storeArgs(t)
	id := addEmployee(t, store, "Jane Doe", "20")

	out, err := execute(t, append([]string{"employee", "list"}, store...)...)
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "Jane Doe ($20.00)")

	out, err = execute(t, append([]string{"run", id, "--hours", "80", "--period", "2025-01", "--date", "2025-01-15"}, store...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "$1306.06")
	assert.Contains(t, out, "$87.19")

	_, err = execute(t, append([]string{"run", id, "--hours", "80", "--period", "2025-02", "--date", "2025-01-29"}, store...)...)
	require.NoError(t, err)

	out, err = execute(t, append([]string{"ytd", id, "--year", "2025"}, store...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "$3200.00")
	assert.Contains(t, out, "$174.38")

	out, err = execute(t, append([]string{"ytd", id, "--year", "2025", "--yaml"}, store...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "periods_paid: 2")
}

func TestRun_WritesPDF(t *testing.T) {
	store := storeArgs(t)
	id := addEmployee(t, store, "Jane Doe", "20")
	dir := t.TempDir()

	out, err := execute(t, append([]string{"run", id, "--hours", "80", "--period", "2025-01", "--date", "2025-01-15", "-f", "pdf", "--out", dir}, store...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Pay stub written to")

	data, err := os.ReadFile(filepath.Join(dir, "paystub_jane_doe_2025-01.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestRun_Errors(t *testing.T) {
	store := storeArgs(t)
	id := addEmployee(t, store, "Jane Doe", "20")

	_, err := execute(t, append([]string{"run", "missing", "--hours", "80", "--period", "p", "--date", "2025-01-15"}, store...)...)
	assert.ErrorContains(t, err, "employee not found")

	_, err = execute(t, append([]string{"run", id, "--hours", "-3", "--period", "p", "--date", "2025-01-15"}, store...)...)
	assert.ErrorContains(t, err, "hours")

	_, err = execute(t, append([]string{"run", id, "--hours", "80", "--period", "p", "--date", "Jan 15"}, store...)...)
	assert.ErrorContains(t, err, "YYYY-MM-DD")

	_, err = execute(t, append([]string{"run", id, "--hours", "80", "--period", "p", "--date", "2025-01-15", "-f", "docx"}, store...)...)
	assert.ErrorContains(t, err, "Try one of")
}

func TestEmployeeAdd_Invalid(t *testing.T) {
	store := storeArgs(t)
	_, err := execute(t, append([]string{"employee", "add", "--name", "X", "--wage", "abc"}, store...)...)
	assert.Error(t, err)
	_, err = execute(t, append([]string{"employee", "add", "--name", "X", "--wage", "0"}, store...)...)
	assert.ErrorContains(t, err, "hourly wage must be positive")
}

func TestCalc(t *testing.T) {
	out, err := execute(t, "calc", "--hours", "80", "--wage", "20", "--period", "2025-01", "--date", "2025-01-15", "-f", "json", "--name", "Walk-in")
	require.NoError(t, err)
	assert.Contains(t, out, `"net_pay": "1306.06"`)
	assert.Contains(t, out, `"employee_name": "Walk-in"`)
}

func TestCalc_WithYtdFile(t *testing.T) {
	ytdPath := filepath.Join(t.TempDir(), "ytd.yaml")
	// Pension already at the annual maximum
	require.NoError(t, os.WriteFile(ytdPath, []byte(`year: 2025
periods_paid: 20
gross_paid_ytd: 70000
pension_contributed_ytd: 3867.50
insurance_paid_ytd: 1049.12
taxable_income_ytd: 65083.38
pensionable_earnings_ytd: 70000
insurable_earnings_ytd: 63200
federal_tax_ytd: 7000
regional_tax_ytd: 2900
`), 0644))

	out, err := execute(t, "calc", "--hours", "80", "--wage", "20", "--period", "2025-21", "--date", "2025-10-15", "--ytd", ytdPath, "-f", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	cols := strings.Split(lines[1], ",")
	assert.Equal(t, "0.00", cols[11], "CPP")
	assert.Equal(t, "0.00", cols[12], "EI")
}

func TestRules(t *testing.T) {
	out, err := execute(t, "rules", "show", "--year", "2025")
	require.NoError(t, err)
	assert.Contains(t, out, "pay_periods_per_year: 26")
	assert.Contains(t, out, "configured years: [2025]")

	out, err = execute(t, "rules", "validate", filepath.Join("..", "..", "internal", "config", "rules", "default_rules.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("default_year: 2025\nyears: []\n"), 0644))
	_, err = execute(t, "rules", "validate", bad)
	assert.Error(t, err)
}

func TestConfigFlag_MissingExplicitFileFails(t *testing.T) {
	_, err := execute(t, "employee", "list", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestProject(t *testing.T) {
	out, err := execute(t, "project", "--hours", "80", "--wage", "20", "--date", "2025-01-10")
	require.NoError(t, err)
	assert.Contains(t, out, "P01")
	assert.Contains(t, out, "P26")
	assert.Contains(t, out, "$41600.00")
	assert.Contains(t, out, "$2266.94")

	store := storeArgs(t)
	id := addEmployee(t, store, "Jane Doe", "20")
	_, err = execute(t, append([]string{"run", id, "--hours", "80", "--period", "2025-01", "--date", "2025-01-10"}, store...)...)
	require.NoError(t, err)

	out, err = execute(t, append([]string{"project", "--employee", id, "--hours", "80", "--date", "2025-01-24", "--json"}, store...)...)
	require.NoError(t, err)
	assert.Contains(t, out, `"periods_paid": 26`)
	assert.NotContains(t, out, `"period_label": "P01"`)
}

func TestCompare(t *testing.T) {
	out, err := execute(t, "compare", "--hours", "80", "--wage", "20", "--tips", "150", "--date", "2025-01-10")
	require.NoError(t, err)
	assert.Contains(t, out, "PAYROLL POLICY COMPARISON")
	assert.Contains(t, out, "configured (base)")
	assert.Contains(t, out, "gross-basis")

	out, err = execute(t, "compare", "--hours", "80", "--wage", "20", "--date", "2025-01-10",
		"--base", "canonical", "--variants", "annual-exemption,annualized-tax", "-f", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "canonical,base,26,"))

	_, err = execute(t, "compare", "--hours", "80", "--wage", "20", "-f", "xml")
	assert.ErrorContains(t, err, "unsupported comparison format")

	_, err = execute(t, "compare", "--hours", "80", "--wage", "20", "--date", "2025-01-10", "--variants", "bonus")
	assert.ErrorContains(t, err, "unknown policy variant")
}

func TestSolve(t *testing.T) {
	out, err := execute(t, "solve", "--net", "1306.06", "--wage", "20", "--date", "2025-01-15")
	require.NoError(t, err)
	assert.Contains(t, out, "Hours Needed:     80.00")

	out, err = execute(t, "solve", "--net", "1306.06", "--for", "wage", "--hours", "80", "--date", "2025-01-15")
	require.NoError(t, err)
	assert.Contains(t, out, "Wage Needed:      $20.00/hr")

	_, err = execute(t, "solve", "--net", "1000", "--for", "tips", "--wage", "20")
	assert.ErrorContains(t, err, "invalid --for")
}
