package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"sort"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/config"
	"github.com/rgehrsitz/fincalc/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app is the state shared by every command once settings are loaded
type app struct {
	settings *config.Settings
	logger   *zap.Logger
	engine   *calculation.CalculationEngine
	parser   *config.InputParser

	// flags shared by every command
	configPath string
	format     string
	outputPath string
	copyOutput bool
	debug      bool
}

func newRootCmd() *cobra.Command {
	a := &app{parser: config.NewInputParser()}

	root := &cobra.Command{
		Use:   "fincalc",
		Short: "Loan, investment and tax calculator CLI",
		Long: `Financial calculators for amortization schedules, investment growth
projections and bracketed income tax.

Run a single calculation from flags (amortize, project, tax) or evaluate a
YAML worksheet of named loans, investments and tax computations (calculate).`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Settings file (default: ./fincalc.yaml or ~/.config/fincalc/fincalc.yaml)")
	flags.StringVarP(&a.format, "format", "f", "", "Output format (default from settings: console)")
	flags.StringVarP(&a.outputPath, "output", "o", "", "Write output to this file instead of stdout")
	flags.BoolVar(&a.copyOutput, "copy", false, "Also copy the output to the clipboard")
	flags.BoolVar(&a.debug, "debug", false, "Enable debug output for detailed calculations")

	root.AddCommand(
		a.amortizeCmd(),
		a.projectCmd(),
		a.taxCmd(),
		a.calculateCmd(),
		a.validateCmd(),
		a.compareCmd(),
		a.solveCmd(),
		a.prepayCmd(),
		a.schedulesCmd(),
		a.formatsCmd(),
		versionCmd(),
	)
	return root
}

// setup loads settings, builds the logger and configures the engine
func (a *app) setup(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings(a.configPath)
	if err != nil {
		return err
	}
	a.settings = settings

	level := settings.LogLevel
	if a.debug {
		level = "debug"
	}
	if a.logger, err = newLogger(level); err != nil {
		return err
	}

	a.engine = calculation.NewCalculationEngine()
	a.engine.MaxPeriods = settings.MaxPeriods
	if settings.Workers > 0 {
		a.engine.Workers = settings.Workers
	}
	a.engine.SetLogger(zapLogger{s: a.logger.Sugar()})
	a.engine.Debug = a.debug

	if settings.SchedulesFile != "" {
		schedules, err := a.parser.LoadTaxSchedules(settings.SchedulesFile)
		if err != nil {
			return fmt.Errorf("failed to load tax schedules: %w", err)
		}
		if err := a.engine.AddSchedules(schedules...); err != nil {
			return err
		}
		a.logger.Debug("loaded tax schedules",
			zap.String("file", settings.SchedulesFile), zap.Int("count", len(schedules)))
	}
	return nil
}

// outputFormat is the --format flag, falling back to the configured default
func (a *app) outputFormat() string {
	if a.format != "" {
		return a.format
	}
	return a.settings.Format
}

// emit writes rendered output to --output or stdout and copies it when asked
func (a *app) emit(cmd *cobra.Command, data []byte) error {
	if a.outputPath != "" {
		if err := output.WriteFile(a.outputPath, data); err != nil {
			return err
		}
		a.logger.Info("wrote output", zap.String("path", a.outputPath), zap.Int("bytes", len(data)))
		fmt.Fprintf(cmd.OutOrStdout(), "Output written to %s\n", a.outputPath)
	} else if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return err
	}

	if a.copyOutput {
		if err := output.CopyToClipboard(data); err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Copied to clipboard")
	}
	return nil
}

func (a *app) formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List available output formats",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Formats:")
			names := output.AvailableFormatterNames()
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(out, "  %s\n", name)
			}
			fmt.Fprintln(out, "Aliases:")
			for _, alias := range output.AvailableFormatAliases() {
				fmt.Fprintf(out, "  %s -> %s\n", alias, output.GetFormatterByName(alias).Name())
			}
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fincalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
