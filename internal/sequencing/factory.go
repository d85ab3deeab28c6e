package sequencing

import (
	"github.com/rgehrsitz/fincalc/internal/domain"
)

// StrategyNames lists the strategies CreateStrategy accepts
func StrategyNames() []string {
	return []string{"avalanche", "snowball", "proportional", "custom"}
}

// CreateStrategy creates a sequencing strategy by name. custom uses sequence
// as the payoff order.
func CreateStrategy(name string, sequence []string) (SequencingStrategy, error) {
	switch name {
	case "", "avalanche":
		return NewAvalancheStrategy(), nil
	case "snowball":
		return NewSnowballStrategy(), nil
	case "proportional":
		return NewProportionalStrategy(), nil
	case "custom":
		return NewCustomStrategy(sequence), nil
	default:
		return nil, domain.NewInputError("strategy", "unknown prepayment strategy %q (valid: avalanche, snowball, proportional, custom)", name)
	}
}

// DebtsFromLoans converts loan terms into strategy inputs
func DebtsFromLoans(loans []domain.LoanTerms) []Debt {
	debts := make([]Debt, len(loans))
	for i, l := range loans {
		debts[i] = Debt{Name: l.Label(), Balance: l.Principal, RatePercent: l.AnnualRatePercent}
	}
	return debts
}
