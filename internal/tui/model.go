package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/internal/output"
)

// Loan form fields
const (
	loanPrincipal = iota
	loanRate
	loanTerm
	loanPerYear
	loanMode
)

// Investment form fields
const (
	investInitial = iota
	investContribution
	investRate
	investPeriods
	investPerYear
)

// Tax form fields
const (
	taxIncome = iota
	taxDeductions
	taxSchedule
	taxStandard
	taxSurcharge
)

// Model represents the entire application state
type Model struct {
	activeTab Tab
	forms     [tabCount]*form

	// Terminal dimensions
	width  int
	height int

	engine *calculation.CalculationEngine

	// Latest results; nil while the matching tab has invalid input
	loan       *domain.InterestModeComparison
	projection *domain.GrowthProjection
	tax        *domain.NamedTaxResult
	errs       [tabCount]error

	keys   keyMap
	help   help.Model
	status string

	// copyText places text on the clipboard
	copyText func([]byte) error
}

// NewModel creates a calculator model with example inputs already evaluated
func NewModel(engine *calculation.CalculationEngine) Model {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}

	m := Model{
		engine:   engine,
		width:    100,
		height:   40,
		keys:     defaultKeyMap(),
		help:     help.New(),
		copyText: output.CopyToClipboard,
	}
	m.forms[TabLoan] = newForm(
		fieldDef{"Principal", "250000", "amount borrowed"},
		fieldDef{"Annual rate %", "6.5", "e.g. 6.5"},
		fieldDef{"Term (periods)", "360", "number of payments"},
		fieldDef{"Periods per year", "12", "12 = monthly"},
		fieldDef{"Interest mode", string(domain.InterestReducing), "reducing or flat"},
	)
	m.forms[TabInvestment] = newForm(
		fieldDef{"Initial amount", "10000", "lump sum"},
		fieldDef{"Contribution per period", "500", "paid at period start"},
		fieldDef{"Rate % per period", "0.5", "e.g. 0.5"},
		fieldDef{"Periods", "120", "number of periods"},
		fieldDef{"Periods per year", "12", "for annualized return"},
	)
	m.forms[TabTax] = newForm(
		fieldDef{"Income", "100000", "gross income"},
		fieldDef{"Deductions", "0", "beyond the standard deduction"},
		fieldDef{"Schedule", "us-2025-single", "built-in schedule name"},
		fieldDef{"Standard deduction (y/n)", "y", "y or n"},
		fieldDef{"Surcharge %", "", "blank = schedule default"},
	)

	for tab := Tab(0); tab < tabCount; tab++ {
		m.recompute(tab)
	}
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// copyCmd returns a command that copies text to the clipboard
func copyCmd(copyText func([]byte) error, text string) tea.Cmd {
	return func() tea.Msg {
		return ClipboardMsg{Err: copyText([]byte(text))}
	}
}
