package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Rates are searched in steps of one millionth of a percent
var rateStep = decimal.New(1, -6)

var (
	hundred = decimal.NewFromInt(100)
	cent    = decimal.New(1, -2)
)

// maxSearchUnits keeps cent-denominated search bounds exact in an int64
const maxSearchUnits = int64(1) << 53

// Solver finds the input that makes a loan or plan meet a goal
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Solve runs the search the request's target names
func (s *Solver) Solve(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Apply defaults
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	switch req.Target {
	case SolveRate:
		return s.solveRate(ctx, req)
	case SolvePrincipal:
		return s.solvePrincipal(ctx, req)
	case SolveTerm:
		return s.solveTerm(ctx, req)
	default:
		return s.solveContribution(ctx, req)
	}
}

// firstTrue returns the smallest k in [lo, hi] for which pred holds. pred must
// be monotone (false then true) and hold at hi.
func (s *Solver) firstTrue(ctx context.Context, op string, maxIterations int, lo, hi int64, pred func(int64) (bool, error)) (int64, int, error) {
	iterations := 0
	for lo < hi {
		if iterations >= maxIterations {
			return 0, iterations, &BreakEvenError{
				Operation: op,
				Message:   fmt.Sprintf("search did not converge after %d iterations", maxIterations),
			}
		}
		iterations++

		// Check context cancellation
		select {
		case <-ctx.Done():
			return 0, iterations, ctx.Err()
		default:
		}

		mid := lo + (hi-lo)/2
		ok, err := pred(mid)
		if err != nil {
			return 0, iterations, err
		}
		if ok {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo, iterations, nil
}

func (s *Solver) amortize(op string, terms domain.LoanTerms) (*domain.AmortizationSchedule, error) {
	schedule, err := s.CalcEngine.Amortize(terms)
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "failed to amortize loan", Cause: err}
	}
	return schedule, nil
}

func (s *Solver) project(op string, plan domain.InvestmentPlan) (*domain.GrowthProjection, error) {
	projection, err := s.CalcEngine.Project(plan)
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "failed to project plan", Cause: err}
	}
	return projection, nil
}

func unreachable(op, format string, args ...any) error {
	return &BreakEvenError{Operation: op, Message: fmt.Sprintf(format, args...), Cause: domain.ErrInvalidInput}
}

// solveRate finds the annual rate whose payment is closest to the goal
func (s *Solver) solveRate(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	const op = "solve_rate"
	at := func(k int64) (*domain.AmortizationSchedule, error) {
		terms := req.Loan
		terms.AnnualRatePercent = rateStep.Mul(decimal.NewFromInt(k))
		return s.amortize(op, terms)
	}

	maxUnits := hundred.Div(rateStep).IntPart()
	lowest, err := at(0)
	if err != nil {
		return nil, err
	}
	if lowest.PeriodicPayment.Sub(req.Goal).GreaterThan(req.Tolerance) {
		return nil, unreachable(op, "payment %s is below the interest-free payment %s",
			req.Goal.StringFixed(2), lowest.PeriodicPayment.StringFixed(2))
	}
	highest, err := at(maxUnits)
	if err != nil {
		return nil, err
	}
	if req.Goal.Sub(highest.PeriodicPayment).GreaterThan(req.Tolerance) {
		return nil, unreachable(op, "payment %s is above the payment at a 100%% rate (%s)",
			req.Goal.StringFixed(2), highest.PeriodicPayment.StringFixed(2))
	}

	k, iterations, err := s.firstTrue(ctx, op, req.MaxIterations, 0, maxUnits, func(k int64) (bool, error) {
		schedule, err := at(k)
		if err != nil {
			return false, err
		}
		return schedule.PeriodicPayment.GreaterThanOrEqual(req.Goal), nil
	})
	if err != nil {
		return nil, err
	}

	best, err := at(k)
	if err != nil {
		return nil, err
	}
	if k > 0 {
		below, err := at(k - 1)
		if err != nil {
			return nil, err
		}
		if req.Goal.Sub(below.PeriodicPayment).LessThan(best.PeriodicPayment.Sub(req.Goal)) {
			k, best = k-1, below
		}
	}

	rate := best.Terms.AnnualRatePercent
	result := &SolveResult{
		Request:    req,
		Iterations: iterations,
		SolvedRate: &rate,
		Achieved:   best.PeriodicPayment,
		Schedule:   best,
	}
	if result.Difference().Abs().LessThanOrEqual(req.Tolerance) {
		result.Success = true
		result.ConvergenceInfo = fmt.Sprintf("Converged to target payment within %s", req.Tolerance.String())
	} else {
		result.ConvergenceInfo = "Closest achievable payment; the goal falls between two rate steps"
	}
	return result, nil
}

// solvePrincipal finds the largest principal, to the cent, whose payment does
// not exceed the goal
func (s *Solver) solvePrincipal(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	const op = "solve_principal"
	at := func(cents int64) (*domain.AmortizationSchedule, error) {
		terms := req.Loan
		terms.Principal = decimal.NewFromInt(cents).Mul(cent)
		return s.amortize(op, terms)
	}
	over := func(cents int64) (bool, error) {
		schedule, err := at(cents)
		if err != nil {
			return false, err
		}
		return schedule.PeriodicPayment.GreaterThan(req.Goal), nil
	}

	if req.Loan.TermPeriods <= 0 {
		// let the engine report the invalid term
		if _, err := at(100); err != nil {
			return nil, err
		}
	}

	// A principal of (goal+1) per period always costs more than the goal
	hi := req.Goal.Add(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(int64(req.Loan.TermPeriods))).Div(cent).Ceil().IntPart()
	if hi >= maxSearchUnits {
		return nil, unreachable(op, "payment %s is too large to search", req.Goal.StringFixed(2))
	}
	if tooSmall, err := over(1); err != nil {
		return nil, err
	} else if tooSmall {
		return nil, unreachable(op, "payment %s does not cover a loan of one cent", req.Goal.StringFixed(2))
	}

	k, iterations, err := s.firstTrue(ctx, op, req.MaxIterations, 1, hi, over)
	if err != nil {
		return nil, err
	}

	best, err := at(k - 1)
	if err != nil {
		return nil, err
	}
	principal := best.Terms.Principal
	return &SolveResult{
		Request:         req,
		Success:         true,
		Iterations:      iterations,
		ConvergenceInfo: "Largest principal whose payment does not exceed the goal",
		SolvedPrincipal: &principal,
		Achieved:        best.PeriodicPayment,
		Schedule:        best,
	}, nil
}

// solveTerm finds the fewest periods whose payment does not exceed the goal
func (s *Solver) solveTerm(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	const op = "solve_term"
	at := func(n int64) (*domain.AmortizationSchedule, error) {
		terms := req.Loan
		terms.TermPeriods = int(n)
		return s.amortize(op, terms)
	}
	within := func(n int64) (bool, error) {
		schedule, err := at(n)
		if err != nil {
			return false, err
		}
		return schedule.PeriodicPayment.LessThanOrEqual(req.Goal), nil
	}

	limit := int64(s.periodLimit())
	if ok, err := within(limit); err != nil {
		return nil, err
	} else if !ok {
		return nil, unreachable(op, "payment %s is below the payment over the longest allowed term (%d periods)",
			req.Goal.StringFixed(2), limit)
	}

	n, iterations, err := s.firstTrue(ctx, op, req.MaxIterations, 1, limit, within)
	if err != nil {
		return nil, err
	}

	best, err := at(n)
	if err != nil {
		return nil, err
	}
	term := int(n)
	return &SolveResult{
		Request:         req,
		Success:         true,
		Iterations:      iterations,
		ConvergenceInfo: "Shortest term whose payment does not exceed the goal",
		SolvedTerm:      &term,
		Achieved:        best.PeriodicPayment,
		Schedule:        best,
	}, nil
}

// solveContribution finds the smallest contribution, to the cent, whose
// future value reaches the goal
func (s *Solver) solveContribution(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	const op = "solve_contribution"
	at := func(cents int64) (*domain.GrowthProjection, error) {
		plan := req.Plan
		plan.PeriodicContribution = decimal.NewFromInt(cents).Mul(cent)
		return s.project(op, plan)
	}
	reaches := func(cents int64) (bool, error) {
		projection, err := at(cents)
		if err != nil {
			return false, err
		}
		return projection.FutureValue.GreaterThanOrEqual(req.Goal), nil
	}

	// Contributing the goal itself every period always reaches it
	hi := req.Goal.Div(cent).Ceil().IntPart()
	if hi >= maxSearchUnits {
		return nil, unreachable(op, "future value %s is too large to search", req.Goal.StringFixed(2))
	}
	if ok, err := reaches(hi); err != nil {
		return nil, err
	} else if !ok {
		return nil, unreachable(op, "future value %s cannot be reached", req.Goal.StringFixed(2))
	}

	k, iterations, err := s.firstTrue(ctx, op, req.MaxIterations, 0, hi, reaches)
	if err != nil {
		return nil, err
	}

	best, err := at(k)
	if err != nil {
		return nil, err
	}
	contribution := best.Plan.PeriodicContribution
	info := "Smallest contribution whose future value reaches the goal"
	if k == 0 {
		info = "The initial amount alone reaches the goal"
	}
	return &SolveResult{
		Request:            req,
		Success:            true,
		Iterations:         iterations,
		ConvergenceInfo:    info,
		SolvedContribution: &contribution,
		Achieved:           best.FutureValue,
		Projection:         best,
	}, nil
}

func (s *Solver) periodLimit() int {
	limit := s.CalcEngine.MaxPeriods
	if limit <= 0 || limit > calculation.DefaultMaxPeriods {
		return calculation.DefaultMaxPeriods
	}
	return limit
}
