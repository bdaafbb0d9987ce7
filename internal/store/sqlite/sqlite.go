/*
Package sqlite provides a SQLite-backed store for employees and
year-to-date snapshots.

KEY TABLES:
  employees:    Employee registry (id, name, hourly wage)
  employee_ytd: One row per (employee_id, year); replaced on each settlement

Money columns are stored as TEXT decimal strings so no precision is lost.

USAGE:
  st, err := sqlite.New("./paygo.db")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

Use ":memory:" for an in-memory database.
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

// Store implements employee and YTD persistence using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		hourly_wage TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS employee_ytd (
		employee_id TEXT NOT NULL REFERENCES employees(id),
		year INTEGER NOT NULL,
		periods_paid INTEGER NOT NULL DEFAULT 0,
		gross_paid TEXT NOT NULL,
		pension_contributed TEXT NOT NULL,
		insurance_paid TEXT NOT NULL,
		taxable_income TEXT NOT NULL,
		pensionable_earnings TEXT NOT NULL,
		insurable_earnings TEXT NOT NULL,
		federal_tax TEXT NOT NULL,
		regional_tax TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (employee_id, year)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// AddEmployee inserts a new employee.
func (s *Store) AddEmployee(ctx context.Context, emp domain.Employee) error {
	if err := emp.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO employees (id, name, hourly_wage, created_at) VALUES (?, ?, ?, ?)",
		emp.ID, emp.Name, emp.HourlyWage.String(), emp.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert employee: %w", err)
	}
	return nil
}

// GetEmployee returns the employee or domain.ErrEmployeeNotFound.
func (s *Store) GetEmployee(ctx context.Context, id string) (domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, hourly_wage, created_at FROM employees WHERE id = ?", id)
	emp, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Employee{}, fmt.Errorf("%w: %s", domain.ErrEmployeeNotFound, id)
	}
	return emp, err
}

// ListEmployees returns employees in creation order.
func (s *Store) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, hourly_wage, created_at FROM employees ORDER BY created_at, name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row scanner) (domain.Employee, error) {
	var emp domain.Employee
	var wage, createdAt string
	if err := row.Scan(&emp.ID, &emp.Name, &wage, &createdAt); err != nil {
		return domain.Employee{}, err
	}
	var err error
	if emp.HourlyWage, err = decimal.NewFromString(wage); err != nil {
		return domain.Employee{}, fmt.Errorf("employee %s: bad hourly wage %q: %w", emp.ID, wage, err)
	}
	emp.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return emp, nil
}

// GetYtd returns the stored snapshot, or a zero snapshot when none exists.
func (s *Store) GetYtd(ctx context.Context, employeeID string, year int) (domain.EmployeeYtd, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ytd := domain.NewEmployeeYtd(employeeID, year)
	var cols [8]string
	err := s.db.QueryRowContext(ctx, `
		SELECT periods_paid, gross_paid, pension_contributed, insurance_paid, taxable_income,
		       pensionable_earnings, insurable_earnings, federal_tax, regional_tax
		FROM employee_ytd WHERE employee_id = ? AND year = ?`, employeeID, year,
	).Scan(&ytd.PeriodsPaid, &cols[0], &cols[1], &cols[2], &cols[3], &cols[4], &cols[5], &cols[6], &cols[7])
	if errors.Is(err, sql.ErrNoRows) {
		return ytd, nil
	}
	if err != nil {
		return domain.EmployeeYtd{}, err
	}

	targets := []*decimal.Decimal{
		&ytd.GrossPaidYtd, &ytd.PensionContributedYtd, &ytd.InsurancePaidYtd, &ytd.TaxableIncomeYtd,
		&ytd.PensionableEarningsYtd, &ytd.InsurableEarningsYtd, &ytd.FederalTaxYtd, &ytd.RegionalTaxYtd,
	}
	for i, target := range targets {
		v, err := decimal.NewFromString(cols[i])
		if err != nil {
			return domain.EmployeeYtd{}, fmt.Errorf("ytd %s/%d: bad amount %q: %w", employeeID, year, cols[i], err)
		}
		*target = v
	}
	return ytd, nil
}

// PutYtd inserts or replaces the snapshot for its employee-year.
func (s *Store) PutYtd(ctx context.Context, ytd domain.EmployeeYtd) error {
	if ytd.EmployeeID == "" || ytd.Year == 0 {
		return fmt.Errorf("%w: snapshot needs an employee id and year", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employee_ytd (employee_id, year, periods_paid, gross_paid, pension_contributed,
			insurance_paid, taxable_income, pensionable_earnings, insurable_earnings,
			federal_tax, regional_tax, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(employee_id, year) DO UPDATE SET
			periods_paid = excluded.periods_paid,
			gross_paid = excluded.gross_paid,
			pension_contributed = excluded.pension_contributed,
			insurance_paid = excluded.insurance_paid,
			taxable_income = excluded.taxable_income,
			pensionable_earnings = excluded.pensionable_earnings,
			insurable_earnings = excluded.insurable_earnings,
			federal_tax = excluded.federal_tax,
			regional_tax = excluded.regional_tax,
			updated_at = excluded.updated_at`,
		ytd.EmployeeID, ytd.Year, ytd.PeriodsPaid,
		ytd.GrossPaidYtd.String(), ytd.PensionContributedYtd.String(), ytd.InsurancePaidYtd.String(),
		ytd.TaxableIncomeYtd.String(), ytd.PensionableEarningsYtd.String(), ytd.InsurableEarningsYtd.String(),
		ytd.FederalTaxYtd.String(), ytd.RegionalTaxYtd.String(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save ytd: %w", err)
	}
	return nil
}
