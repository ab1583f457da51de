package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fuelbook/internal/cli"
	"github.com/theirongolddev/fuelbook/internal/codec"
	"github.com/theirongolddev/fuelbook/internal/report"
	"github.com/theirongolddev/fuelbook/internal/store"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Spending and consumption summary for a vehicle",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if len(s.ledger.Vehicles()) == 0 {
		fmt.Println("\n  No vehicles registered yet.")
		fmt.Println("  Add one with `fuelbook vehicle add` or run `fuelbook tui`.")
		return nil
	}

	v, err := s.vehicle()
	if err != nil {
		return err
	}
	rep := report.Build(s.ledger.Refuelings(), v.ID, s.mode)
	cur := s.cfg.Display.Currency

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("FUELBOOK  %s", v.Name)))
	fmt.Println()

	if rep.Summary.FillUps == 0 {
		fmt.Println("  No refuelings recorded for this vehicle.")
		fmt.Println("  Log one with `fuelbook refuel add`.")
		return nil
	}

	sum := rep.Summary
	rows := [][]string{
		{"Fill-ups", cli.FormatCount(int64(sum.FillUps))},
		{"First", cli.FormatDate(sum.First)},
		{"Last", cli.FormatDate(sum.Last)},
		{cli.SeparatorRow},
		{"Total spent", cli.MoneyStyle.Render(cli.FormatMoney(cur, sum.TotalSpend))},
		{"Average per fill", cli.FormatMoney(cur, sum.AverageSpend)},
		{"Total volume", cli.FormatVolume(sum.TotalVolume)},
	}
	if odo, ok := s.ledger.LastOdometer(v.ID); ok {
		rows = append(rows, []string{cli.SeparatorRow}, []string{"Last odometer", cli.FormatDistance(odo)})
	}
	if rep.HasKmPerLiter {
		rows = append(rows, []string{"Average km/L", cli.FormatRatio(rep.KmPerLiter)})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	if len(rep.Fills) > 1 {
		fmt.Printf("\n  Spend trend  %s\n", cli.RenderSparkline(report.SpendSeries(fillRecords(rep.Fills))))
	}

	if sq, ok := s.store.(*store.SQLite); ok {
		if at, found, err := sq.UpdatedAt(cmd.Context(), codec.RefuelingsKey); err == nil && found {
			fmt.Println(cli.MutedStyle.Render("  Last saved " + cli.FormatDate(at) + " in " + sq.Path()))
		}
	}

	if orphans := s.ledger.Orphans(); len(orphans) > 0 {
		fmt.Println()
		fmt.Println(cli.WarnStyle.Render(fmt.Sprintf("  %d refuelings belong to deleted vehicles", len(orphans))))
	}
	return nil
}
