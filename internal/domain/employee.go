package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Employee is a payroll record. YTD totals are kept separately per calendar year.
type Employee struct {
	ID         string          `yaml:"id" json:"id"`
	Name       string          `yaml:"name" json:"name"`
	HourlyWage decimal.Decimal `yaml:"hourly_wage" json:"hourly_wage"`
	CreatedAt  time.Time       `yaml:"created_at" json:"created_at"`
}

// Validate checks the fields required to pay an employee
func (e *Employee) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: employee name is required", ErrInvalidInput)
	}
	if e.HourlyWage.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: hourly wage must be positive", ErrInvalidInput)
	}
	return nil
}

// Label renders the employee the way pickers list them, e.g. "Jane Doe ($20.00)".
func (e *Employee) Label() string {
	return fmt.Sprintf("%s ($%s)", e.Name, e.HourlyWage.StringFixed(2))
}
