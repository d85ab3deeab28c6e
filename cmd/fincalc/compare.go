package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/fincalc/internal/compare"
	"github.com/rgehrsitz/fincalc/internal/transform"
	"github.com/spf13/cobra"
)

func (a *app) compareCmd() *cobra.Command {
	var base, with, against string
	var transforms []string
	var listTemplates bool

	cmd := &cobra.Command{
		Use:   "compare [worksheet]",
		Short: "Compare a loan against built-in templates, transforms or other loans",
		Long: `Compare a base loan from a worksheet against alternatives. Alternatives come
from built-in templates (--with), ad hoc transforms (--transform) or other
loans in the same worksheet (--against).

Examples:
  fincalc compare loans.yaml --base mortgage --with rate_minus_1,refi_15yr
  fincalc compare loans.yaml --transform adjust_rate:points=-0.5 --format csv
  fincalc compare loans.yaml --base mortgage --against refinance
  fincalc compare --list-templates  # Show all available templates
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if listTemplates {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("worksheet required for comparison (use --list-templates to see available templates)")
			}

			format := strings.ToLower(a.outputFormat())
			switch format {
			case "table", "console", "compact", "csv", "json":
			default:
				return fmt.Errorf("unknown output format %s (valid: table, compact, csv, json)", format)
			}

			ws, err := a.parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}

			engine := compare.NewCompareEngine(a.engine)
			var set *compare.ComparisonSet
			if against != "" {
				if with != "" || len(transforms) > 0 {
					return fmt.Errorf("--against cannot be combined with --with or --transform")
				}
				set, err = engine.CompareLoans(cmd.Context(), ws, base, transform.ParseTemplateList(against))
			} else {
				templates := transform.ParseTemplateList(with)
				if len(templates) == 0 && len(transforms) == 0 {
					return fmt.Errorf("--with, --transform or --against is required to specify alternatives (or use --list-templates)")
				}
				set, err = engine.Compare(cmd.Context(), ws, compare.CompareOptions{
					BaseLoanName: base,
					Templates:    templates,
					Transforms:   transforms,
				})
			}
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			set.ConfigPath = args[0]

			var out string
			switch format {
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(set)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(set)
			default:
				out = (&compare.TableFormatter{}).Format(set)
			}
			if err != nil {
				return fmt.Errorf("failed to format comparison: %w", err)
			}
			return a.emit(cmd, []byte(out))
		},
	}

	f := cmd.Flags()
	f.StringVar(&base, "base", "", "Base loan name (default: the first loan)")
	f.StringVar(&with, "with", "", "Comma-separated list of templates to compare")
	f.StringArrayVar(&transforms, "transform", nil, "Transform spec such as adjust_rate:points=-1 (repeatable)")
	f.StringVar(&against, "against", "", "Comma-separated list of other loans in the worksheet")
	f.BoolVar(&listTemplates, "list-templates", false, "List all available loan templates")
	return cmd
}
