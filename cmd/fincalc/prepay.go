package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/fincalc/internal/sequencing"
	"github.com/rgehrsitz/fincalc/internal/transform"
	"github.com/spf13/cobra"
)

func (a *app) prepayCmd() *cobra.Command {
	var amount, strategy, order string
	var compareStrategies bool

	cmd := &cobra.Command{
		Use:   "prepay [worksheet]",
		Short: "Split a lump-sum prepayment across the loans in a worksheet",
		Long: `Spread a lump sum over the worksheet's loans and show what each prepayment
saves. Prepaid loans keep their term and get a smaller payment.

Strategies:
  avalanche     highest rate first (default)
  snowball      smallest balance first
  proportional  by share of the combined balance
  custom        the order given with --order

Examples:
  fincalc prepay loans.yaml --amount 10000
  fincalc prepay loans.yaml --amount 10000 --strategy custom --order car,mortgage
  fincalc prepay loans.yaml --amount 10000 --compare-strategies --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := strings.ToLower(a.outputFormat())
			switch format {
			case "table", "console", "json":
			default:
				return fmt.Errorf("unknown output format %s (valid: table, json)", format)
			}

			lump, err := parseDecimalFlag("amount", amount)
			if err != nil {
				return err
			}
			ws, err := a.parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			if len(ws.Loans) == 0 {
				return fmt.Errorf("worksheet %s has no loans to prepay", args[0])
			}

			planner := sequencing.NewPlanner(a.engine)
			tf := &sequencing.TableFormatter{}
			jf := &sequencing.JSONFormatter{Pretty: true}

			var out string
			if compareStrategies {
				plans, err := planner.CompareStrategies(cmd.Context(), ws.Loans, lump)
				if err != nil {
					return fmt.Errorf("prepayment planning failed: %w", err)
				}
				if format == "json" {
					out, err = jf.Format(plans)
					if err != nil {
						return fmt.Errorf("failed to format result: %w", err)
					}
				} else {
					out = tf.FormatComparison(plans)
				}
				return a.emit(cmd, []byte(out))
			}

			s, err := sequencing.CreateStrategy(strings.ToLower(strategy), transform.ParseTemplateList(order))
			if err != nil {
				return err
			}
			plan, err := planner.Plan(cmd.Context(), ws.Loans, lump, s)
			if err != nil {
				return fmt.Errorf("prepayment planning failed: %w", err)
			}
			if format == "json" {
				out, err = jf.Format(plan)
				if err != nil {
					return fmt.Errorf("failed to format result: %w", err)
				}
			} else {
				out = tf.Format(plan)
			}
			return a.emit(cmd, []byte(out))
		},
	}

	f := cmd.Flags()
	f.StringVar(&amount, "amount", "", "Lump sum to prepay (required)")
	f.StringVar(&strategy, "strategy", "avalanche", "Allocation strategy: "+strings.Join(sequencing.StrategyNames(), ", "))
	f.StringVar(&order, "order", "", "Comma-separated loan names for the custom strategy")
	f.BoolVar(&compareStrategies, "compare-strategies", false, "Plan with every ordering strategy and rank them by interest saved")
	_ = cmd.MarkFlagRequired("amount")
	cmd.MarkFlagsMutuallyExclusive("compare-strategies", "strategy")
	return cmd
}
