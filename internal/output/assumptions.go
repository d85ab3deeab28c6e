package output

// DefaultAssumptions lists the modeling assumptions rendered in detailed outputs
var DefaultAssumptions = []string{
	"Loan payments fall at the end of each period; balances carry 12 decimal places",
	"Flat interest is charged on the original principal for the whole term",
	"Investment contributions are made at the start of each period (annuity-due)",
	"Tax brackets are half-open: income at an upper bound stays in that bracket",
	"Surcharge (cess) applies to total bracket tax; rounding happens only for display",
}
