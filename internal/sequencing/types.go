package sequencing

import (
	"github.com/shopspring/decimal"
)

// Debt is a loan as the strategies see it
// Name: loan label used in allocations and custom sequences
// Balance: principal outstanding
// RatePercent: annual interest rate
type Debt struct {
	Name        string
	Balance     decimal.Decimal
	RatePercent decimal.Decimal
}

// PrepaymentAllocation is the part of a lump sum applied to one loan.
// Prepayments recast the loan: the term stays the same and the payment drops.
// BalanceBefore / BalanceAfter: principal before and after the prepayment
// PaymentBefore / PaymentAfter: periodic payment before and after
// InterestSaved: InterestBefore minus InterestAfter over the full term
// PaidOff: the prepayment covers the whole principal
type PrepaymentAllocation struct {
	Loan           string          `json:"loan"`
	Amount         decimal.Decimal `json:"amount"`
	BalanceBefore  decimal.Decimal `json:"balance_before"`
	BalanceAfter   decimal.Decimal `json:"balance_after"`
	PaymentBefore  decimal.Decimal `json:"payment_before"`
	PaymentAfter   decimal.Decimal `json:"payment_after"`
	InterestBefore decimal.Decimal `json:"interest_before"`
	InterestAfter  decimal.Decimal `json:"interest_after"`
	InterestSaved  decimal.Decimal `json:"interest_saved"`
	PaidOff        bool            `json:"paid_off"`

	index int // position of the loan in the strategy input
}

// PrepaymentPlan aggregates the full plan for spending a lump sum
// Requested: the lump sum
// Allocations: per-loan amounts in the order the strategy applied them
// TotalAllocated: sum of Amount across allocations
// Unallocated: part of the request left over once every loan is paid off
// TotalInterestSaved / TotalPaymentReduction: filled in by the Planner
// StrategyUsed: resolved strategy after fallbacks
// Notes: strategy-specific notes or warnings
type PrepaymentPlan struct {
	Requested             decimal.Decimal        `json:"requested"`
	Allocations           []PrepaymentAllocation `json:"allocations"`
	TotalAllocated        decimal.Decimal        `json:"total_allocated"`
	Unallocated           decimal.Decimal        `json:"unallocated"`
	TotalInterestSaved    decimal.Decimal        `json:"total_interest_saved"`
	TotalPaymentReduction decimal.Decimal        `json:"total_payment_reduction"`
	StrategyUsed          string                 `json:"strategy_used"`
	Notes                 []string               `json:"notes,omitempty"`
}

// StrategyContext provides inputs required by sequencing strategies
// Amount: lump sum to spread across the debts
type StrategyContext struct {
	Amount decimal.Decimal
}

// SequencingStrategy decides how a lump sum is split across debts
type SequencingStrategy interface {
	Name() string
	Plan(debts []Debt, ctx StrategyContext) PrepaymentPlan
}

// fillInOrder pays debts off one at a time in the given order until the
// amount runs out
func fillInOrder(plan *PrepaymentPlan, debts []Debt, order []int) {
	remaining := plan.Requested
	for _, i := range order {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		debt := debts[i]
		if debt.Balance.LessThanOrEqual(decimal.Zero) {
			continue
		}

		amount := debt.Balance
		if amount.GreaterThan(remaining) {
			amount = remaining
		}
		plan.add(i, debt, amount)
		remaining = remaining.Sub(amount)
	}
	plan.finish()
}

func (p *PrepaymentPlan) add(i int, debt Debt, amount decimal.Decimal) {
	p.Allocations = append(p.Allocations, PrepaymentAllocation{
		Loan:          debt.Name,
		Amount:        amount,
		BalanceBefore: debt.Balance,
		BalanceAfter:  debt.Balance.Sub(amount),
		PaidOff:       amount.Equal(debt.Balance),
		index:         i,
	})
	p.TotalAllocated = p.TotalAllocated.Add(amount)
}

func (p *PrepaymentPlan) finish() {
	p.Unallocated = p.Requested.Sub(p.TotalAllocated)
	if p.Unallocated.IsPositive() {
		p.Notes = append(p.Notes, "amount exceeds the combined balances; "+p.Unallocated.StringFixed(2)+" left unallocated")
	}
}

func newPlan(name string, ctx StrategyContext) PrepaymentPlan {
	return PrepaymentPlan{Requested: ctx.Amount, StrategyUsed: name, Allocations: []PrepaymentAllocation{}}
}
