package breakeven

import (
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

// SolveTarget names the input the solver adjusts
type SolveTarget string

const (
	SolveRate         SolveTarget = "rate"         // annual rate that gives the target payment
	SolvePrincipal    SolveTarget = "principal"    // largest principal the target payment covers
	SolveTerm         SolveTarget = "term"         // fewest periods that bring the payment under the target
	SolveContribution SolveTarget = "contribution" // smallest contribution that reaches the target value
)

// Targets lists the supported solve targets
func Targets() []SolveTarget {
	return []SolveTarget{SolveRate, SolvePrincipal, SolveTerm, SolveContribution}
}

// ParseTarget resolves a target name
func ParseTarget(s string) (SolveTarget, error) {
	for _, t := range Targets() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", domain.NewInputError("target", "unknown solve target %q (valid: rate, principal, term, contribution)", s)
}

// SolveRequest describes one solve. Loan targets start from Loan and aim for a
// periodic payment of Goal; the contribution target starts from Plan and aims
// for a future value of Goal. The field being solved for is ignored.
type SolveRequest struct {
	Target        SolveTarget           `json:"target"`
	Goal          decimal.Decimal       `json:"goal"`
	Loan          domain.LoanTerms      `json:"loan"`
	Plan          domain.InvestmentPlan `json:"plan"`
	MaxIterations int                   `json:"-"`
	Tolerance     decimal.Decimal       `json:"-"`
}

// IsLoanTarget reports whether the target adjusts a loan
func (r SolveRequest) IsLoanTarget() bool {
	return r.Target != SolveContribution
}

// SolveResult is the solved input and the outcome it produces
type SolveResult struct {
	Request         SolveRequest `json:"request"`
	Success         bool         `json:"success"`
	Iterations      int          `json:"iterations"`
	ConvergenceInfo string       `json:"convergence_info"`

	// Solved inputs; only the one matching the target is set
	SolvedRate         *decimal.Decimal `json:"solved_rate,omitempty"`
	SolvedPrincipal    *decimal.Decimal `json:"solved_principal,omitempty"`
	SolvedTerm         *int             `json:"solved_term,omitempty"`
	SolvedContribution *decimal.Decimal `json:"solved_contribution,omitempty"`

	// Achieved is the payment or future value at the solved input
	Achieved   decimal.Decimal             `json:"achieved"`
	Schedule   *domain.AmortizationSchedule `json:"-"`
	Projection *domain.GrowthProjection     `json:"-"`
}

// Difference is the achieved outcome minus the goal
func (r *SolveResult) Difference() decimal.Decimal {
	return r.Achieved.Sub(r.Request.Goal)
}

// AffordabilityResult answers "what can this payment buy" along each loan axis
type AffordabilityResult struct {
	Payment         decimal.Decimal `json:"payment"`
	Results         []SolveResult   `json:"results"`
	Recommendations []string        `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     decimal.Decimal // Convergence tolerance on the payment or value
	MaxIterations int             // Maximum bisection steps
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.New(5, -3), // half a cent
		MaxIterations: 200,
	}
}

// Validate checks the request before any calculation runs
func (r SolveRequest) Validate() error {
	if _, err := ParseTarget(string(r.Target)); err != nil {
		return err
	}
	if !r.Goal.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "goal must be positive, got " + r.Goal.String(),
			Cause:     domain.ErrInvalidInput,
		}
	}
	return nil
}

// BreakEvenError represents errors from break-even solver
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
