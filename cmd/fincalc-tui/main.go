package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/config"
	"github.com/rgehrsitz/fincalc/internal/tui"
)

func main() {
	var configPath string

	cmd := &cobra.Command{
		Use:          "fincalc-tui",
		Short:        "Interactive loan, investment and tax calculators",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(configPath)
			if err != nil {
				return err
			}

			p := tea.NewProgram(
				tui.NewModel(engine),
				tea.WithAltScreen(), // Use alternate screen buffer
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Settings file (default: ./fincalc.yaml or ~/.config/fincalc/fincalc.yaml)")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newEngine applies the period limit and custom tax schedules from settings
func newEngine(configPath string) (*calculation.CalculationEngine, error) {
	settings, err := config.LoadSettings(configPath)
	if err != nil {
		return nil, err
	}

	engine := calculation.NewCalculationEngine()
	engine.MaxPeriods = settings.MaxPeriods
	if settings.SchedulesFile != "" {
		schedules, err := config.NewInputParser().LoadTaxSchedules(settings.SchedulesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load tax schedules: %w", err)
		}
		if err := engine.AddSchedules(schedules...); err != nil {
			return nil, err
		}
	}
	return engine, nil
}
