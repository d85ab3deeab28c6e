package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

// SolveAffordability solves every loan target for one payment: the largest
// principal at the loan's rate and term, the shortest term for its principal,
// and the rate at which its principal and term cost exactly the payment.
// Targets the payment cannot satisfy are left out.
func (s *Solver) SolveAffordability(ctx context.Context, loan domain.LoanTerms, payment decimal.Decimal) (*AffordabilityResult, error) {
	var results []SolveResult
	var lastErr error

	for _, target := range []SolveTarget{SolvePrincipal, SolveTerm, SolveRate} {
		result, err := s.Solve(ctx, SolveRequest{
			Target:        target,
			Goal:          payment,
			Loan:          loan,
			MaxIterations: s.Options.MaxIterations,
			Tolerance:     s.Options.Tolerance,
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			// An unreachable target is expected; anything else is not
			if !errors.Is(err, domain.ErrInvalidInput) {
				return nil, err
			}
			lastErr = err
			continue
		}
		results = append(results, *result)
	}

	if len(results) == 0 {
		return nil, &BreakEvenError{
			Operation: "solve_affordability",
			Message:   "no target could be solved for payment " + payment.StringFixed(2),
			Cause:     lastErr,
		}
	}

	affordability := &AffordabilityResult{
		Payment: payment,
		Results: results,
	}
	affordability.Recommendations = recommendations(loan, results)
	return affordability, nil
}

func recommendations(loan domain.LoanTerms, results []SolveResult) []string {
	var recs []string
	for _, r := range results {
		switch {
		case r.SolvedPrincipal != nil:
			recs = append(recs, fmt.Sprintf("Largest loan: %s at %s%% over %d periods",
				r.SolvedPrincipal.StringFixed(2), loan.AnnualRatePercent.String(), loan.TermPeriods))
		case r.SolvedTerm != nil:
			line := fmt.Sprintf("Shortest term: %d periods for %s", *r.SolvedTerm, loan.Principal.StringFixed(2))
			if *r.SolvedTerm < loan.TermPeriods {
				line += fmt.Sprintf(", %d periods sooner than planned", loan.TermPeriods-*r.SolvedTerm)
			}
			recs = append(recs, line)
		case r.SolvedRate != nil:
			recs = append(recs, fmt.Sprintf("Break-even rate: %s%%; any lower rate keeps the payment under %s",
				r.SolvedRate.Round(4).String(), r.Request.Goal.StringFixed(2)))
		}
	}
	return recs
}
