package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/madsdyd/grv-scripts/internal/kalender"
)

func kalenderCmd() *cobra.Command {
	var icsPath string

	cmd := &cobra.Command{
		Use:   "kalender <mødeplan.yaml> [output.txt]",
		Short: "Omsæt mødeplanen til importlinjer for kalendersiden.dk",
		Long: "Læser mødeplanen, opløser alle datoregler til konkrete datoer og " +
			"skriver importlinjer sorteret efter dato. Uden output-fil skrives til stdout.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := kalender.LoadPlan(args[0])
			if err != nil {
				return err
			}

			events, err := kalender.Resolve(plan, logger)
			if err != nil {
				return err
			}

			logger.Info("Meeting plan resolved",
				zap.String("file", args[0]),
				zap.Int("events", len(events)))

			if icsPath != "" {
				if err := kalender.WriteICSFile(icsPath, events); err != nil {
					return err
				}
				logger.Info("ICS calendar written", zap.String("file", icsPath))
			}

			if len(args) == 2 {
				if err := kalender.WriteFile(args[1], events); err != nil {
					return err
				}
				fmt.Printf("Skrev %d linjer til %s\n", len(events), args[1])
				return nil
			}

			return kalender.WriteLines(os.Stdout, events)
		},
	}

	cmd.Flags().StringVar(&icsPath, "ics", "", "Also write an iCalendar file to this path")

	return cmd
}
