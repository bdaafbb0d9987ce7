// Package store defines persistence for employees and year-to-date snapshots.
//
// The settlement engine never touches a store. Callers read a snapshot,
// settle, and write the updated snapshot back; payroll.Service serializes
// that sequence per employee-year.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/paygo/internal/config"
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/rgehrsitz/paygo/internal/store/sqlite"
	"github.com/rgehrsitz/paygo/internal/store/yamlstore"
	"github.com/shopspring/decimal"
)

// YtdStore persists year-to-date snapshots keyed by employee id and year.
// Get returns a zero snapshot, not an error, when nothing is stored.
type YtdStore interface {
	GetYtd(ctx context.Context, employeeID string, year int) (domain.EmployeeYtd, error)
	PutYtd(ctx context.Context, ytd domain.EmployeeYtd) error
}

// EmployeeStore persists the employee registry
type EmployeeStore interface {
	AddEmployee(ctx context.Context, emp domain.Employee) error
	GetEmployee(ctx context.Context, id string) (domain.Employee, error)
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
}

// Store combines both stores with a Close for file and database backends
type Store interface {
	YtdStore
	EmployeeStore
	Close() error
}

// NewEmployee builds a validated employee record with a fresh id
func NewEmployee(name string, hourlyWage decimal.Decimal) (domain.Employee, error) {
	emp := domain.Employee{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(name),
		HourlyWage: hourlyWage,
		CreatedAt:  time.Now().UTC(),
	}
	if err := emp.Validate(); err != nil {
		return domain.Employee{}, err
	}
	return emp, nil
}

// Open returns the store selected by cfg
func Open(cfg config.StoreConfig) (Store, error) {
	switch strings.ToLower(cfg.Driver) {
	case config.StoreSQLite:
		return sqlite.New(cfg.Path)
	case config.StoreYAML:
		return yamlstore.New(cfg.Path)
	case config.StoreMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
