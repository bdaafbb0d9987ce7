package breakeven

import (
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

// SolveTarget is the pay component the solver adjusts
type SolveTarget string

const (
	SolveHours SolveTarget = "hours"
	SolveWage  SolveTarget = "wage"
)

// SolverOptions configures the search
type SolverOptions struct {
	MaxIterations int             // Bisection and bracket-growth steps
	InitialUpper  decimal.Decimal // First upper bound tried for hours or wage
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations: 64,
		InitialUpper:  decimal.NewFromInt(1000),
	}
}

// Request asks for the smallest hours or wage, in hundredths, whose settled
// net pay reaches TargetNetPay
type Request struct {
	Target       SolveTarget               `json:"target"`
	TargetNetPay decimal.Decimal           `json:"target_net_pay"`
	Template     domain.PayPeriodInput     `json:"template"`
	Ytd          domain.EmployeeYtd        `json:"ytd"`
	Rules        *domain.JurisdictionRules `json:"-"`
}

// Validate checks the request before any settlement runs
func (r *Request) Validate() error {
	switch r.Target {
	case SolveHours, SolveWage:
	default:
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "unsupported solve target: " + string(r.Target),
			Cause:     domain.ErrInvalidInput,
		}
	}
	if !r.TargetNetPay.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "target net pay must be positive",
			Cause:     domain.ErrInvalidInput,
		}
	}
	if r.Rules == nil {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "jurisdiction rules are required",
			Cause:     domain.ErrInvalidInput,
		}
	}
	return nil
}

// Result is the solved value and the settlement it produces
type Result struct {
	Request    Request                  `json:"request"`
	Value      decimal.Decimal          `json:"value"`
	Settlement *domain.SettlementResult `json:"settlement"`
	Iterations int                      `json:"iterations"`
}

// BreakEvenError reports a failed solve
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
