package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Formatter renders a pay stub to bytes.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(stub *PayStub) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
	// Extension is the file extension used when the output is saved.
	Extension() string
}

// WriteFormatted runs a formatter and writes the output into dir, named after
// the employee and period.
func WriteFormatted(f Formatter, stub *PayStub, dir string) (string, error) {
	data, err := f.Format(stub)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("paystub_%s_%s.%s", fileSafe(stub.EmployeeName), fileSafe(stub.PeriodLabel), f.Extension())
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

func fileSafe(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return '_'
		}
	}, s)
}

// builtInFormatters stores available formatters
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	JSONFormatter{},
	CSVFormatter{},
	HTMLFormatter{},
	PDFFormatter{},
}

// GetFormatterByName fetches a registered formatter, resolving aliases
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"text":        "console",
	"table":       "console",
	"json-pretty": "json",
	"spreadsheet": "csv",
	"html-report": "html",
	"payslip":     "pdf",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Render formats stub with the named formatter. Unknown names produce an
// error that lists the valid choices.
func Render(stub *PayStub, format string) ([]byte, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, fmt.Errorf("unsupported pay stub format %q. Try one of: %s (aliases: %s)",
			format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	return f.Format(stub)
}
