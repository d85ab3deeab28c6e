package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/fincalc/internal/breakeven"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func (a *app) solveCmd() *cobra.Command {
	var target, goal, principal, rate, mode, initial string
	var term, perYear, periods int
	var affordability bool

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Find the rate, principal, term or contribution that meets a goal",
		Long: `Search for the input that makes a loan cost a target payment, or a savings
plan reach a target future value. The input being solved for may be omitted.

Examples:
  fincalc solve --target rate --goal 1580.17 --principal 250000 --term 360
  fincalc solve --target principal --goal 1500 --rate 6.5 --term 360
  fincalc solve --target term --goal 2000 --principal 250000 --rate 6.5
  fincalc solve --target contribution --goal 100000 --initial 10000 --rate 0.5 --periods 120
  fincalc solve --affordability --goal 1500 --principal 250000 --rate 6.5 --term 360`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := strings.ToLower(a.outputFormat())
			switch format {
			case "table", "console", "json":
			default:
				return fmt.Errorf("unknown output format %s (valid: table, json)", format)
			}

			g, err := parseDecimalFlag("goal", goal)
			if err != nil {
				return err
			}
			req := breakeven.SolveRequest{Goal: g}
			if !affordability {
				if req.Target, err = breakeven.ParseTarget(target); err != nil {
					return err
				}
			}

			// Unset inputs stay zero; the one being solved for is replaced anyway
			if err := optionalDecimal("principal", principal, &req.Loan.Principal); err != nil {
				return err
			}
			if err := optionalDecimal("initial", initial, &req.Plan.InitialAmount); err != nil {
				return err
			}
			if err := optionalDecimal("rate", rate, &req.Loan.AnnualRatePercent); err != nil {
				return err
			}
			req.Plan.PeriodicRatePercent = req.Loan.AnnualRatePercent
			m, err := domain.ParseInterestMode(mode)
			if err != nil {
				return err
			}
			req.Loan.Mode = m
			req.Loan.TermPeriods = term
			req.Loan.PeriodsPerYear = perYear
			req.Plan.TotalPeriods = periods
			req.Plan.PeriodsPerYear = perYear

			solver := breakeven.NewDefaultSolver(a.engine)
			var out string
			if affordability {
				result, err := solver.SolveAffordability(cmd.Context(), req.Loan, req.Goal)
				if err != nil {
					return err
				}
				if format == "json" {
					out, err = (&breakeven.JSONFormatter{Pretty: true}).FormatAffordability(result)
				} else {
					out = (&breakeven.TableFormatter{}).FormatAffordability(result)
				}
				if err != nil {
					return fmt.Errorf("failed to format result: %w", err)
				}
				return a.emit(cmd, []byte(out))
			}

			result, err := solver.Solve(cmd.Context(), req)
			if err != nil {
				return err
			}
			if format == "json" {
				out, err = (&breakeven.JSONFormatter{Pretty: true}).Format(result)
			} else {
				out = (&breakeven.TableFormatter{}).Format(result)
			}
			if err != nil {
				return fmt.Errorf("failed to format result: %w", err)
			}
			return a.emit(cmd, []byte(out))
		},
	}

	f := cmd.Flags()
	f.StringVar(&target, "target", "", "What to solve for: rate, principal, term or contribution")
	f.StringVar(&goal, "goal", "", "Target payment per period, or target future value for contribution (required)")
	f.BoolVar(&affordability, "affordability", false, "Solve principal, term and rate together for the goal payment")
	f.StringVar(&principal, "principal", "", "Loan principal")
	f.StringVar(&rate, "rate", "", "Annual loan rate, or rate per period for contribution, in percent")
	f.IntVar(&term, "term", 0, "Loan term in periods")
	f.StringVar(&mode, "mode", string(domain.InterestReducing), "Interest mode: reducing or flat")
	f.StringVar(&initial, "initial", "", "Initial investment amount")
	f.IntVar(&periods, "periods", 0, "Investment periods")
	f.IntVar(&perYear, "per-year", 12, "Periods per year")
	_ = cmd.MarkFlagRequired("goal")
	cmd.MarkFlagsMutuallyExclusive("target", "affordability")
	cmd.MarkFlagsOneRequired("target", "affordability")
	return cmd
}

// optionalDecimal parses value into dst unless it is empty
func optionalDecimal(name, value string, dst *decimal.Decimal) error {
	if value == "" {
		return nil
	}
	v, err := parseDecimalFlag(name, value)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
