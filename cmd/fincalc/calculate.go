package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// run evaluates a worksheet and emits it in the selected format
func (a *app) run(ctx context.Context, cmd *cobra.Command, ws *domain.Worksheet) error {
	formatter := output.GetFormatterByName(a.outputFormat())
	if formatter == nil {
		return fmt.Errorf("unknown output format %q (available: %s)",
			a.outputFormat(), strings.Join(output.AvailableFormatterNames(), ", "))
	}

	results, err := a.engine.RunWorksheet(ctx, ws)
	if err != nil {
		return err
	}
	a.logger.Debug("worksheet evaluated",
		zap.String("worksheet", ws.Name),
		zap.Int("loans", len(results.Loans)),
		zap.Int("investments", len(results.Investments)),
		zap.Int("taxes", len(results.Taxes)))

	data, err := formatter.Format(results)
	if err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}
	return a.emit(cmd, data)
}

func (a *app) calculateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calculate [worksheet]",
		Short: "Evaluate every loan, investment and tax computation in a worksheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), cmd, ws)
		},
	}
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [worksheet]",
		Short: "Validate a worksheet without printing results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			if err := a.engine.ValidateWorksheet(ws); err != nil {
				return fmt.Errorf("worksheet validation failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Worksheet %s is valid\n", args[0])
			return nil
		},
	}
}

func (a *app) amortizeCmd() *cobra.Command {
	var principal, rate, mode string
	var term, perYear int

	cmd := &cobra.Command{
		Use:   "amortize",
		Short: "Build a loan amortization schedule",
		Long: `Build an amortization schedule for one loan. The console formats show both
interest modes side by side; detailed formats list every period.

Examples:
  fincalc amortize --principal 250000 --rate 6.5 --term 360
  fincalc amortize --principal 1200 --rate 12 --term 12 --mode flat -f detailed-csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseDecimalFlag("principal", principal)
			if err != nil {
				return err
			}
			r, err := parseDecimalFlag("rate", rate)
			if err != nil {
				return err
			}
			m, err := domain.ParseInterestMode(mode)
			if err != nil {
				return err
			}
			ws := &domain.Worksheet{
				Name: "amortize",
				Loans: []domain.LoanTerms{{
					Name:              "loan",
					Principal:         p,
					AnnualRatePercent: r,
					TermPeriods:       term,
					PeriodsPerYear:    perYear,
					Mode:              m,
				}},
			}
			return a.run(cmd.Context(), cmd, ws)
		},
	}

	f := cmd.Flags()
	f.StringVar(&principal, "principal", "", "Amount borrowed (required)")
	f.StringVar(&rate, "rate", "", "Annual interest rate in percent (required)")
	f.IntVar(&term, "term", 0, "Number of payment periods (required)")
	f.IntVar(&perYear, "per-year", 12, "Payment periods per year")
	f.StringVar(&mode, "mode", string(domain.InterestReducing), "Interest mode: reducing or flat")
	_ = cmd.MarkFlagRequired("principal")
	_ = cmd.MarkFlagRequired("rate")
	_ = cmd.MarkFlagRequired("term")
	return cmd
}

func (a *app) projectCmd() *cobra.Command {
	var initial, contribution, rate string
	var periods, perYear int

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project investment growth with contributions at the start of each period",
		Long: `Compound an initial amount plus a contribution paid at the start of every
period.

Example:
  fincalc project --initial 10000 --contribution 500 --rate 0.5 --periods 120`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseDecimalFlag("initial", initial)
			if err != nil {
				return err
			}
			c, err := parseDecimalFlag("contribution", contribution)
			if err != nil {
				return err
			}
			r, err := parseDecimalFlag("rate", rate)
			if err != nil {
				return err
			}
			ws := &domain.Worksheet{
				Name: "project",
				Investments: []domain.InvestmentPlan{{
					Name:                 "plan",
					InitialAmount:        i,
					PeriodicContribution: c,
					PeriodicRatePercent:  r,
					TotalPeriods:         periods,
					PeriodsPerYear:       perYear,
				}},
			}
			return a.run(cmd.Context(), cmd, ws)
		},
	}

	f := cmd.Flags()
	f.StringVar(&initial, "initial", "0", "Initial amount")
	f.StringVar(&contribution, "contribution", "0", "Contribution at the start of each period")
	f.StringVar(&rate, "rate", "", "Rate per period in percent (required)")
	f.IntVar(&periods, "periods", 0, "Number of periods (required)")
	f.IntVar(&perYear, "per-year", 12, "Periods per year, used for the annualized return")
	_ = cmd.MarkFlagRequired("rate")
	_ = cmd.MarkFlagRequired("periods")
	return cmd
}

func (a *app) taxCmd() *cobra.Command {
	var income, deductions, surcharge, schedule string
	var standard bool

	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Compute bracketed income tax with an optional surcharge",
		Long: `Apply a marginal-rate schedule to taxable income (income minus deductions)
and add a surcharge on the resulting tax.

Examples:
  fincalc tax --income 100000 --schedule us-2025-single --standard-deduction
  fincalc tax --income 1275000 --schedule in-new-regime --standard-deduction --surcharge 0.04`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inc, err := parseDecimalFlag("income", income)
			if err != nil {
				return err
			}
			ded, err := parseDecimalFlag("deductions", deductions)
			if err != nil {
				return err
			}
			c := domain.TaxComputation{
				Name:                 "tax",
				Income:               inc,
				Deductions:           ded,
				Schedule:             schedule,
				UseStandardDeduction: standard,
			}
			if surcharge != "" {
				s, err := parseDecimalFlag("surcharge", surcharge)
				if err != nil {
					return err
				}
				c.SurchargeRate = &s
			}
			ws := &domain.Worksheet{Name: "tax", Taxes: []domain.TaxComputation{c}}
			return a.run(cmd.Context(), cmd, ws)
		},
	}

	f := cmd.Flags()
	f.StringVar(&income, "income", "", "Gross income (required)")
	f.StringVar(&deductions, "deductions", "0", "Deductions subtracted from income")
	f.StringVar(&schedule, "schedule", "us-2025-single", "Tax schedule name (see 'fincalc schedules')")
	f.BoolVar(&standard, "standard-deduction", false, "Also subtract the schedule's standard deduction")
	f.StringVar(&surcharge, "surcharge", "", "Surcharge rate as a fraction, e.g. 0.04 (default: the schedule's)")
	_ = cmd.MarkFlagRequired("income")
	return cmd
}

// parseDecimalFlag parses a money or rate flag
func parseDecimalFlag(name, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(value), ",", ""))
	if err != nil {
		return decimal.Zero, domain.NewInputError(name, "%q is not a number", value)
	}
	return d, nil
}
