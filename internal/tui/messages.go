package tui

// Tab identifies one calculator screen
type Tab int

const (
	TabLoan Tab = iota
	TabInvestment
	TabTax
	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabLoan:
		return "Loan"
	case TabInvestment:
		return "Investment"
	case TabTax:
		return "Tax"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// ClipboardMsg reports the outcome of copying the active result
type ClipboardMsg struct {
	Err error
}
