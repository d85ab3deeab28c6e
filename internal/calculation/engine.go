package calculation

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// CalculationEngine evaluates calculations and worksheets with a shared set of
// tax schedules and limits
type CalculationEngine struct {
	Schedules  map[string]domain.TaxSchedule // custom schedules, checked before the built-ins
	MaxPeriods int                           // upper bound on loan terms and investment periods
	Workers    int                           // concurrent worksheet items
	Debug      bool                          // Enable debug output for detailed calculations
	Logger     Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Schedules:  make(map[string]domain.TaxSchedule),
		MaxPeriods: DefaultMaxPeriods,
		Workers:    runtime.GOMAXPROCS(0),
		Logger:     NopLogger{},
	}
}

// SetLogger replaces the engine's logger; nil restores the no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	ce.Logger = l
}

func (ce *CalculationEngine) logger() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

func (ce *CalculationEngine) maxPeriods() int {
	if ce.MaxPeriods <= 0 || ce.MaxPeriods > DefaultMaxPeriods {
		return DefaultMaxPeriods
	}
	return ce.MaxPeriods
}

// AddSchedules validates and registers custom tax schedules. A custom schedule
// with a built-in name shadows the built-in.
func (ce *CalculationEngine) AddSchedules(schedules ...domain.TaxSchedule) error {
	if ce.Schedules == nil {
		ce.Schedules = make(map[string]domain.TaxSchedule)
	}
	for _, s := range schedules {
		if s.Name == "" {
			return domain.NewInputError("name", "tax schedule name is required")
		}
		if err := ValidateSchedule(s); err != nil {
			return fmt.Errorf("tax schedule %q: %w", s.Name, err)
		}
		ce.Schedules[s.Name] = s
		ce.logger().Debugf("registered tax schedule %s with %d brackets", s.Name, len(s.Brackets))
	}
	return nil
}

// Schedule resolves a schedule name against custom schedules, then built-ins
func (ce *CalculationEngine) Schedule(name string) (domain.TaxSchedule, error) {
	if s, ok := ce.Schedules[name]; ok {
		return s, nil
	}
	return LookupSchedule(name)
}

// Amortize builds the schedule for the loan's mode within the engine's period limit
func (ce *CalculationEngine) Amortize(terms domain.LoanTerms) (*domain.AmortizationSchedule, error) {
	schedule, err := amortizeWithMode(terms, ce.maxPeriods())
	if err != nil {
		return nil, err
	}
	if ce.Debug {
		ce.logger().Debugf("%s: %s payment %s over %d periods, total interest %s",
			terms.Label(), schedule.Mode, schedule.PeriodicPayment.StringFixed(2), len(schedule.Rows), schedule.TotalInterest.StringFixed(2))
	}
	return schedule, nil
}

// CompareInterestModes amortizes the loan both ways within the engine's period limit
func (ce *CalculationEngine) CompareInterestModes(terms domain.LoanTerms) (*domain.InterestModeComparison, error) {
	return compareInterestModes(terms, ce.maxPeriods())
}

// Project compounds an investment plan within the engine's period limit
func (ce *CalculationEngine) Project(plan domain.InvestmentPlan) (*domain.GrowthProjection, error) {
	projection, err := projectPlan(plan, ce.maxPeriods())
	if err != nil {
		return nil, err
	}
	if ce.Debug {
		ce.logger().Debugf("%s: future value %s, contributed %s, interest %s",
			planLabel(plan, 0), projection.FutureValue.StringFixed(2), projection.TotalContributed.StringFixed(2), projection.TotalInterest.StringFixed(2))
	}
	return projection, nil
}

// taxRequest is a TaxComputation with its schedule resolved
type taxRequest struct {
	schedule   string
	deductions decimal.Decimal
	brackets   []domain.TaxBracket
	surcharge  decimal.Decimal
}

// resolveTax turns a worksheet tax entry into concrete brackets. local holds
// schedules defined by the worksheet itself.
func (ce *CalculationEngine) resolveTax(c domain.TaxComputation, local map[string]domain.TaxSchedule) (taxRequest, error) {
	req := taxRequest{deductions: c.Deductions}

	switch {
	case c.Schedule != "" && len(c.Brackets) > 0:
		return req, domain.NewInputError("schedule", "give either a schedule name or inline brackets, not both")
	case c.Schedule != "":
		schedule, ok := local[c.Schedule]
		if !ok {
			var err error
			if schedule, err = ce.Schedule(c.Schedule); err != nil {
				return req, err
			}
		}
		req.schedule = schedule.Name
		req.brackets = schedule.Brackets
		req.surcharge = schedule.SurchargeRate
		if c.UseStandardDeduction {
			if c.Deductions.IsNegative() {
				return req, domain.NewInputError("deductions", "cannot be negative, got %s", c.Deductions)
			}
			req.deductions = req.deductions.Add(schedule.StandardDeduction)
		}
	case len(c.Brackets) > 0:
		if c.UseStandardDeduction {
			return req, domain.NewInputError("use_standard_deduction", "inline brackets have no standard deduction")
		}
		req.brackets = c.Brackets
	default:
		return req, domain.NewInputError("brackets", "a schedule name or inline brackets is required")
	}

	if c.SurchargeRate != nil {
		req.surcharge = *c.SurchargeRate
	}
	return req, nil
}

// ComputeTax evaluates one tax entry, resolving named schedules through the engine
func (ce *CalculationEngine) ComputeTax(c domain.TaxComputation) (*domain.NamedTaxResult, error) {
	return ce.computeTax(c, nil)
}

func (ce *CalculationEngine) computeTax(c domain.TaxComputation, local map[string]domain.TaxSchedule) (*domain.NamedTaxResult, error) {
	req, err := ce.resolveTax(c, local)
	if err != nil {
		return nil, err
	}
	result, err := ComputeTax(c.Income, req.deductions, req.brackets, req.surcharge)
	if err != nil {
		return nil, err
	}
	if ce.Debug {
		ce.logger().Debugf("%s: taxable %s, tax %s (surcharge %s)",
			taxLabel(c, 0), result.TaxableIncome.StringFixed(2), result.TotalTax.StringFixed(2), result.Surcharge.StringFixed(2))
	}
	return &domain.NamedTaxResult{Name: c.Name, Schedule: req.schedule, Result: result}, nil
}

// ValidateWorksheet checks every entry of a worksheet in input order and
// returns the first failure, labelled with the entry it came from
func (ce *CalculationEngine) ValidateWorksheet(ws *domain.Worksheet) error {
	_, err := ce.prepareWorksheet(ws)
	return err
}

func (ce *CalculationEngine) prepareWorksheet(ws *domain.Worksheet) (map[string]domain.TaxSchedule, error) {
	if ws == nil {
		return nil, domain.NewInputError("worksheet", "worksheet is required")
	}
	limit := ce.maxPeriods()

	local := make(map[string]domain.TaxSchedule, len(ws.TaxSchedules))
	for _, s := range ws.TaxSchedules {
		if s.Name == "" {
			return nil, domain.NewInputError("name", "tax schedule name is required")
		}
		if err := ValidateSchedule(s); err != nil {
			return nil, fmt.Errorf("tax schedule %q: %w", s.Name, err)
		}
		local[s.Name] = s
	}
	for i, loan := range ws.Loans {
		if err := validateLoanTerms(loan, limit); err != nil {
			return nil, fmt.Errorf("loan %q: %w", loanLabel(loan, i), err)
		}
	}
	for i, plan := range ws.Investments {
		if err := validateInvestmentPlan(plan, limit); err != nil {
			return nil, fmt.Errorf("investment %q: %w", planLabel(plan, i), err)
		}
	}
	for i, c := range ws.Taxes {
		req, err := ce.resolveTax(c, local)
		if err == nil {
			err = validateTaxRequest(c.Income, req)
		}
		if err != nil {
			return nil, fmt.Errorf("tax %q: %w", taxLabel(c, i), err)
		}
	}
	return local, nil
}

func validateTaxRequest(income decimal.Decimal, req taxRequest) error {
	_, err := ComputeTax(income, req.deductions, req.brackets, req.surcharge)
	return err
}

// RunWorksheet evaluates every entry of a worksheet. All entries are validated
// before any is computed; the computations then run concurrently and results
// keep the worksheet's order.
func (ce *CalculationEngine) RunWorksheet(ctx context.Context, ws *domain.Worksheet) (*domain.WorksheetResult, error) {
	local, err := ce.prepareWorksheet(ws)
	if err != nil {
		return nil, err
	}
	limit := ce.maxPeriods()

	result := &domain.WorksheetResult{
		Name:        ws.Name,
		Loans:       make([]domain.LoanResult, len(ws.Loans)),
		Investments: make([]*domain.GrowthProjection, len(ws.Investments)),
		Taxes:       make([]domain.NamedTaxResult, len(ws.Taxes)),
	}

	ce.logger().Infof("running worksheet %q: %d loans, %d investments, %d tax computations",
		ws.Name, len(ws.Loans), len(ws.Investments), len(ws.Taxes))

	g, gctx := errgroup.WithContext(ctx)
	if ce.Workers > 0 {
		g.SetLimit(ce.Workers)
	}

	for i, loan := range ws.Loans {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			schedule, err := amortizeWithMode(loan, limit)
			if err != nil {
				return fmt.Errorf("loan %q: %w", loanLabel(loan, i), err)
			}
			comparison, err := compareInterestModes(loan, limit)
			if err != nil {
				return fmt.Errorf("loan %q: %w", loanLabel(loan, i), err)
			}
			result.Loans[i] = domain.LoanResult{Name: loan.Name, Schedule: schedule, Comparison: comparison}
			return nil
		})
	}
	for i, plan := range ws.Investments {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			projection, err := projectPlan(plan, limit)
			if err != nil {
				return fmt.Errorf("investment %q: %w", planLabel(plan, i), err)
			}
			result.Investments[i] = projection
			return nil
		})
	}
	for i, c := range ws.Taxes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			named, err := ce.computeTax(c, local)
			if err != nil {
				return fmt.Errorf("tax %q: %w", taxLabel(c, i), err)
			}
			result.Taxes[i] = *named
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		ce.logger().Errorf("worksheet %q failed: %v", ws.Name, err)
		return nil, err
	}

	ce.logger().Infof("worksheet %q complete", ws.Name)
	return result, nil
}

func loanLabel(terms domain.LoanTerms, i int) string {
	if terms.Name != "" {
		return terms.Name
	}
	return fmt.Sprintf("#%d", i+1)
}

func planLabel(plan domain.InvestmentPlan, i int) string {
	if plan.Name != "" {
		return plan.Name
	}
	return fmt.Sprintf("#%d", i+1)
}

func taxLabel(c domain.TaxComputation, i int) string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("#%d", i+1)
}
