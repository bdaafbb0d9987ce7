// Package payroll runs pay periods end to end: it resolves the year's rules,
// reads the employee's year-to-date snapshot, settles the period and stores
// the updated snapshot.
package payroll

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/paygo/internal/breakeven"
	"github.com/rgehrsitz/paygo/internal/calculation"
	"github.com/rgehrsitz/paygo/internal/compare"
	"github.com/rgehrsitz/paygo/internal/config"
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/rgehrsitz/paygo/internal/output"
	"github.com/rgehrsitz/paygo/internal/store"
	"github.com/shopspring/decimal"
)

// Service is safe for concurrent use. Runs for the same employee and year
// are serialized so no YTD update is lost.
type Service struct {
	rules   config.RulesProvider
	store   store.Store
	engine  *calculation.SettlementEngine
	company string
	logger  calculation.Logger
	locks   *keyedMutex
}

// NewService wires a payroll service. A nil engine gets a default one.
func NewService(rules config.RulesProvider, st store.Store, engine *calculation.SettlementEngine, company string) *Service {
	if engine == nil {
		engine = calculation.NewSettlementEngine()
	}
	return &Service{
		rules:   rules,
		store:   st,
		engine:  engine,
		company: company,
		logger:  calculation.NopLogger{},
		locks:   newKeyedMutex(),
	}
}

// SetLogger sets the logger for the service and its engine
func (s *Service) SetLogger(l calculation.Logger) {
	if l == nil {
		l = calculation.NopLogger{}
	}
	s.logger = l
	s.engine.SetLogger(l)
}

// CompanyName is printed on every pay stub
func (s *Service) CompanyName() string { return s.company }

// AddEmployee registers a new employee with an empty year-to-date history
func (s *Service) AddEmployee(ctx context.Context, name string, hourlyWage decimal.Decimal) (domain.Employee, error) {
	emp, err := store.NewEmployee(name, hourlyWage)
	if err != nil {
		return domain.Employee{}, err
	}
	if err := s.store.AddEmployee(ctx, emp); err != nil {
		return domain.Employee{}, fmt.Errorf("failed to add employee: %w", err)
	}
	s.logger.Infof("added employee %s (%s)", emp.ID, emp.Label())
	return emp, nil
}

// GetEmployee returns one employee
func (s *Service) GetEmployee(ctx context.Context, id string) (domain.Employee, error) {
	return s.store.GetEmployee(ctx, id)
}

// ListEmployees returns all registered employees
func (s *Service) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	return s.store.ListEmployees(ctx)
}

// Ytd returns the employee's snapshot for year
func (s *Service) Ytd(ctx context.Context, employeeID string, year int) (domain.EmployeeYtd, error) {
	if _, err := s.store.GetEmployee(ctx, employeeID); err != nil {
		return domain.EmployeeYtd{}, err
	}
	return s.store.GetYtd(ctx, employeeID, year)
}

// Rules returns the rules that apply to year
func (s *Service) Rules(year int) (*domain.JurisdictionRules, error) {
	return s.rules.RulesFor(year)
}

// RunPayroll settles one pay period for a registered employee and persists
// the new year-to-date snapshot. A zero HourlyWage on the input is taken from
// the employee record.
func (s *Service) RunPayroll(ctx context.Context, employeeID string, in domain.PayPeriodInput) (*output.PayStub, error) {
	emp, err := s.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if in.HourlyWage.IsZero() {
		in.HourlyWage = emp.HourlyWage
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	year := in.PayDate.Year()
	rules, err := s.rules.RulesFor(year)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(fmt.Sprintf("%s/%d", employeeID, year))
	defer unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ytd, err := s.store.GetYtd(ctx, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load year-to-date for %s: %w", employeeID, err)
	}
	res, err := s.engine.Settle(in, ytd, rules)
	if err != nil {
		return nil, err
	}
	if err := s.store.PutYtd(ctx, res.UpdatedYtd); err != nil {
		return nil, fmt.Errorf("failed to save year-to-date for %s: %w", employeeID, err)
	}
	s.logger.Infof("payroll %s for %s: gross %s net %s", in.PeriodLabel, emp.Name, res.GrossPay.StringFixed(2), res.NetPay.StringFixed(2))

	stub := output.NewPayStub(s.company, emp, in, rules, *res)
	return &stub, nil
}

// Calculate settles a period against a caller-supplied snapshot without
// touching the store. The employee name is only used for the stub.
func (s *Service) Calculate(employeeName string, in domain.PayPeriodInput, ytd domain.EmployeeYtd) (*output.PayStub, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	rules, err := s.rules.RulesFor(in.PayDate.Year())
	if err != nil {
		return nil, err
	}
	res, err := s.engine.Settle(in, ytd, rules)
	if err != nil {
		return nil, err
	}
	emp := domain.Employee{ID: ytd.EmployeeID, Name: employeeName, HourlyWage: in.HourlyWage}
	stub := output.NewPayStub(s.company, emp, in, rules, *res)
	return &stub, nil
}

// startingPoint resolves the rules and year-to-date snapshot a projection
// starts from. An empty employeeID starts from an empty year.
func (s *Service) startingPoint(ctx context.Context, employeeID string, in *domain.PayPeriodInput) (*domain.JurisdictionRules, domain.EmployeeYtd, error) {
	year := in.PayDate.Year()
	ytd := domain.NewEmployeeYtd(employeeID, year)
	if employeeID != "" {
		emp, err := s.store.GetEmployee(ctx, employeeID)
		if err != nil {
			return nil, ytd, err
		}
		if in.HourlyWage.IsZero() {
			in.HourlyWage = emp.HourlyWage
		}
		if ytd, err = s.store.GetYtd(ctx, employeeID, year); err != nil {
			return nil, ytd, fmt.Errorf("failed to load year-to-date for %s: %w", employeeID, err)
		}
	}
	if in.PeriodLabel == "" {
		in.PeriodLabel = "projection"
	}
	if err := in.Validate(); err != nil {
		return nil, ytd, err
	}
	rules, err := s.rules.RulesFor(year)
	if err != nil {
		return nil, ytd, err
	}
	return rules, ytd, nil
}

// ProjectYear settles the rest of the year with the same pay every period,
// starting from the employee's stored snapshot. Nothing is stored.
func (s *Service) ProjectYear(ctx context.Context, employeeID string, in domain.PayPeriodInput) (*domain.YearProjection, error) {
	rules, ytd, err := s.startingPoint(ctx, employeeID, &in)
	if err != nil {
		return nil, err
	}
	return s.engine.ProjectYear(in, ytd, rules)
}

// ComparePolicies projects the rest of the year under several calculation
// policies from the employee's stored snapshot. Nothing is stored.
func (s *Service) ComparePolicies(ctx context.Context, employeeID string, in domain.PayPeriodInput, opts compare.CompareOptions) (*compare.ComparisonSet, error) {
	rules, ytd, err := s.startingPoint(ctx, employeeID, &in)
	if err != nil {
		return nil, err
	}
	return compare.NewCompareEngine(s.engine).Compare(ctx, in, ytd, rules, opts)
}

// SolveForNet finds the hours or hourly wage that brings this period's net
// pay to targetNet, from the employee's stored snapshot. Nothing is stored.
func (s *Service) SolveForNet(ctx context.Context, employeeID string, in domain.PayPeriodInput, target breakeven.SolveTarget, targetNet decimal.Decimal) (*breakeven.Result, error) {
	if target == breakeven.SolveWage && in.HourlyWage.IsZero() {
		// placeholder so the template validates; the solver replaces it
		in.HourlyWage = decimal.New(1, -2)
	}
	rules, ytd, err := s.startingPoint(ctx, employeeID, &in)
	if err != nil {
		return nil, err
	}
	return breakeven.NewDefaultSolver(s.engine).Solve(ctx, breakeven.Request{
		Target:       target,
		TargetNetPay: targetNet,
		Template:     in,
		Ytd:          ytd,
		Rules:        rules,
	})
}
