package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fuelbook/internal/cli"
	"github.com/theirongolddev/fuelbook/internal/model"
	"github.com/theirongolddev/fuelbook/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Spending and consumption reports",
}

var reportSpendingCmd = &cobra.Command{
	Use:   "spending",
	Short: "Total, average and per-fuel spending",
	Args:  cobra.NoArgs,
	RunE:  runReportSpending,
}

var reportConsumptionCmd = &cobra.Command{
	Use:   "consumption",
	Short: "km/L and km per currency unit for each fill-up",
	Long: `Per-fill consumption. In absolute mode (the default) each fill's odometer
reading is divided by its volume. In delta mode the distance since the previous
fill is used, and the first fill has none.`,
	Args: cobra.NoArgs,
	RunE: runReportConsumption,
}

func init() {
	reportCmd.AddCommand(reportSpendingCmd, reportConsumptionCmd)
	rootCmd.AddCommand(reportCmd)
}

// loadReport opens a session and builds the selected vehicle's report.
func loadReport(cmd *cobra.Command) (*session, model.Vehicle, report.Report, error) {
	s, err := openSession(cmd.Context())
	if err != nil {
		return nil, model.Vehicle{}, report.Report{}, err
	}
	v, err := s.vehicle()
	if err != nil {
		_ = s.Close()
		return nil, model.Vehicle{}, report.Report{}, err
	}
	return s, v, report.Build(s.ledger.Refuelings(), v.ID, s.mode), nil
}

func runReportSpending(cmd *cobra.Command, _ []string) error {
	s, v, rep, err := loadReport(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	cur := s.cfg.Display.Currency
	sum := rep.Summary

	fmt.Println()
	fmt.Println(cli.RenderTitle("SPENDING  " + v.Name))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Fill-ups", cli.FormatCount(int64(sum.FillUps))},
			{"Total spent", cli.FormatMoney(cur, sum.TotalSpend)},
			{"Average per fill", cli.FormatMoney(cur, sum.AverageSpend)},
			{"Total volume", cli.FormatVolume(sum.TotalVolume)},
		},
	}))
	if sum.FillUps == 0 {
		return nil
	}

	fuelRows := make([][]string, 0, len(rep.Fuels))
	for _, ft := range rep.Fuels {
		fuelRows = append(fuelRows, []string{
			string(ft.Fuel),
			cli.FormatCount(int64(ft.FillUps)),
			cli.FormatVolume(ft.Volume),
			cli.FormatMoney(cur, ft.Spend),
			cli.FormatPercent(ft.Share),
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "By fuel",
		Headers: []string{"Fuel", "Fills", "Volume", "Spent", "Share"},
		Rows:    fuelRows,
	}))

	if len(rep.Months) > 0 {
		peak := 0.0
		for _, m := range rep.Months {
			peak = max(peak, m.Spend)
		}
		fmt.Println()
		fmt.Println("  " + cli.MutedStyle.Render("By month"))
		for _, m := range rep.Months {
			label := fmt.Sprintf("%s %12s", cli.FormatMonth(m.Month), cli.FormatMoney(cur, m.Spend))
			fmt.Println(cli.RenderHorizontalBar(label, m.Spend, peak, 30))
		}
	}

	if len(rep.Fills) > 1 {
		fmt.Printf("\n  Per fill  %s\n", cli.RenderSparkline(report.SpendSeries(fillRecords(rep.Fills))))
	}
	return nil
}

func runReportConsumption(cmd *cobra.Command, _ []string) error {
	s, v, rep, err := loadReport(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if len(rep.Fills) == 0 {
		fmt.Println("\n  No refuelings recorded for this vehicle.")
		return nil
	}
	cur := s.cfg.Display.Currency

	distLabel := "Odometer"
	if rep.Mode == report.OdometerDelta {
		distLabel = "Distance"
	}

	rows := make([][]string, 0, len(rep.Fills))
	for _, m := range rep.Fills {
		row := []string{
			cli.FormatDate(m.Refueling.Date.Time),
			string(m.Fuel),
			cli.FormatLiters(m.Volume),
			cli.FormatMoney(cur, m.Spend),
		}
		if m.HasDistance {
			row = append(row,
				cli.FormatDistance(m.Distance),
				cli.FormatRatio(m.ConsumptionPerVolume),
				cli.FormatRatio(m.CostEfficiency))
		} else {
			row = append(row, "-", "-", "-")
		}
		rows = append(rows, row)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("CONSUMPTION  %s  (%s)", v.Name, rep.Mode)))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Fuel", "Liters", "Spent", distLabel, "km/L", "km/" + cur},
		Rows:    rows,
	}))
	if rep.HasKmPerLiter {
		fmt.Printf("\n  Average over the period: %s km/L\n", cli.FormatRatio(rep.KmPerLiter))
	}
	return nil
}

func fillRecords(fills []report.FillMetric) []model.Refueling {
	out := make([]model.Refueling, len(fills))
	for i, f := range fills {
		out[i] = f.Refueling
	}
	return out
}
