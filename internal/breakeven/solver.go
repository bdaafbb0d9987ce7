// Package breakeven grosses up pay: it finds the hours or hourly wage whose
// settled net pay reaches a target, given the year-to-date snapshot.
package breakeven

import (
	"context"

	"github.com/rgehrsitz/paygo/internal/calculation"
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// maxCents bounds the bracket search well below int64 overflow
const maxCents = int64(1) << 52

// Solver searches pay values with the settlement engine
type Solver struct {
	CalcEngine *calculation.SettlementEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.SettlementEngine, options SolverOptions) *Solver {
	if calcEngine == nil {
		calcEngine = calculation.NewSettlementEngine()
	}
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.SettlementEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Solve bisects over whole cents. Net pay rises with hours and wage because
// no combined marginal deduction rate reaches 100%, so the first cent value
// that reaches the target is the answer.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	maxIter := s.Options.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultSolverOptions().MaxIterations
	}
	upper := s.Options.InitialUpper
	if !upper.IsPositive() {
		upper = DefaultSolverOptions().InitialUpper
	}

	iterations := 0
	settle := func(cents int64) (*domain.SettlementResult, error) {
		iterations++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		in := req.Template
		value := decimal.New(cents, -2)
		if req.Target == SolveHours {
			in.HoursWorked = value
		} else {
			in.HourlyWage = value
		}
		res, err := s.CalcEngine.Settle(in, req.Ytd, req.Rules)
		if err != nil {
			return nil, &BreakEvenError{Operation: "settle", Message: "settlement failed at " + value.StringFixed(2), Cause: err}
		}
		return res, nil
	}

	// wage must stay positive; zero hours is a valid period
	lo := int64(0)
	if req.Target == SolveWage {
		lo = 1
	}
	best, err := settle(lo)
	if err != nil {
		return nil, err
	}
	if best.NetPay.GreaterThanOrEqual(req.TargetNetPay) {
		return &Result{Request: req, Value: decimal.New(lo, -2), Settlement: best, Iterations: iterations}, nil
	}

	notReached := &BreakEvenError{
		Operation: "bracket",
		Message:   "target net pay " + req.TargetNetPay.StringFixed(2) + " not reached",
	}
	hi := maxCents
	if upper.LessThan(decimal.New(maxCents, -2)) {
		hi = upper.Mul(hundred).IntPart()
	}
	for {
		res, err := settle(hi)
		if err != nil {
			return nil, err
		}
		if res.NetPay.GreaterThanOrEqual(req.TargetNetPay) {
			best = res
			break
		}
		if hi >= maxCents || iterations >= maxIter {
			return nil, notReached
		}
		lo = hi
		hi = min(hi*2, maxCents)
	}

	for hi-lo > 1 {
		if iterations >= maxIter {
			return nil, &BreakEvenError{Operation: "bisect", Message: "did not converge"}
		}
		mid := lo + (hi-lo)/2
		res, err := settle(mid)
		if err != nil {
			return nil, err
		}
		if res.NetPay.GreaterThanOrEqual(req.TargetNetPay) {
			hi, best = mid, res
		} else {
			lo = mid
		}
	}

	return &Result{Request: req, Value: decimal.New(hi, -2), Settlement: best, Iterations: iterations}, nil
}
