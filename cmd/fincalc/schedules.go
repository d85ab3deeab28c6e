package main

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/output"
	"github.com/spf13/cobra"
)

func (a *app) schedulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedules [name]",
		Short: "List tax schedules, or show the brackets of one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				names := calculation.ScheduleNames()
				for name := range a.engine.Schedules {
					if _, err := calculation.LookupSchedule(name); err != nil {
						names = append(names, name)
					}
				}
				sort.Strings(names)
				for _, name := range names {
					s, err := a.engine.Schedule(name)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%-20s %s\n", name, s.Description)
				}
				return nil
			}

			s, err := a.engine.Schedule(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s\n", s.Name)
			if s.Description != "" {
				fmt.Fprintf(out, "%s\n", s.Description)
			}
			fmt.Fprintf(out, "Standard deduction: %s\n", output.FormatAmount(s.StandardDeduction))
			fmt.Fprintf(out, "Surcharge: %s\n", output.FormatRate(s.SurchargeRate))
			fmt.Fprintln(out, "Brackets:")
			for _, b := range s.Brackets {
				fmt.Fprintf(out, "  %-32s %s\n", output.BoundLabel(b), output.FormatRate(b.MarginalRate))
			}
			return nil
		},
	}
}
