package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/fuelbook/internal/cli"
	"github.com/theirongolddev/fuelbook/internal/ledger"
	"github.com/theirongolddev/fuelbook/internal/model"
)

var (
	flagRefuelFrom     string
	flagRefuelTo       string
	flagRefuelLiters   string
	flagRefuelPrice    string
	flagRefuelOdometer string
	flagRefuelAll      bool
	flagRefuelLimit    int
)

var refuelCmd = &cobra.Command{
	Use:     "refuel",
	Aliases: []string{"refuels", "r"},
	Short:   "Log and review refuelings",
}

var refuelAddCmd = &cobra.Command{
	Use:     "add",
	Short:   "Record a fill-up for the selected vehicle",
	Example: "  fuelbook refuel add --from gasolina --to etanol --liters 38,2 --price 3,99 --odometer 45210\n  fuelbook refuel add -V gol -i",
	Args:    cobra.NoArgs,
	RunE:    runRefuelAdd,
}

var refuelListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List refuelings, newest first",
	Args:    cobra.NoArgs,
	RunE:    runRefuelList,
}

var refuelDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a refueling by ID or ID prefix",
	Args:    cobra.ExactArgs(1),
	RunE:    runRefuelDelete,
}

func init() {
	refuelAddCmd.Flags().StringVar(&flagRefuelFrom, "from", "", "Fuel that was in the tank (etanol, gasolina, diesel)")
	refuelAddCmd.Flags().StringVar(&flagRefuelTo, "to", "", "Fuel put in")
	refuelAddCmd.Flags().StringVarP(&flagRefuelLiters, "liters", "l", "", "Volume in liters")
	refuelAddCmd.Flags().StringVarP(&flagRefuelPrice, "price", "p", "", "Price per liter")
	refuelAddCmd.Flags().StringVarP(&flagRefuelOdometer, "odometer", "o", "", "Odometer reading in km")
	refuelAddCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Fill in a form")
	refuelListCmd.Flags().BoolVarP(&flagRefuelAll, "all", "a", false, "List every vehicle's refuelings")
	refuelListCmd.Flags().IntVarP(&flagRefuelLimit, "limit", "n", 0, "Show at most n rows")

	refuelCmd.AddCommand(refuelAddCmd, refuelListCmd, refuelDeleteCmd)
	rootCmd.AddCommand(refuelCmd)
}

func runRefuelAdd(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	v, err := s.vehicle()
	if err != nil {
		return err
	}
	last, hasLast := s.ledger.LastOdometer(v.ID)

	form := ledger.DraftForm{
		Liters:        flagRefuelLiters,
		PricePerLiter: flagRefuelPrice,
		Odometer:      flagRefuelOdometer,
	}
	if flagInteractive {
		if err := runDraftForm(v, last, hasLast, &form); err != nil {
			return err
		}
	} else {
		if form.PreviousFuel, err = model.ParseFuelType(flagRefuelFrom); err != nil {
			return fmt.Errorf("--from: %w", err)
		}
		if form.CurrentFuel, err = model.ParseFuelType(flagRefuelTo); err != nil {
			return fmt.Errorf("--to: %w", err)
		}
	}

	d, err := ledger.ParseDraft(form)
	if err != nil {
		return err
	}
	if hasLast && d.Odometer < last {
		s.logger.Warn("odometer is below the previous fill-up", "previous", last, "now", d.Odometer)
	}

	r, err := s.ledger.Append(cmd.Context(), model.Some(v), d)
	if err != nil {
		return err
	}
	fmt.Printf("  Recorded %s of %s for %s (%s) on %s\n",
		cli.FormatLiters(r.Liters),
		r.CurrentFuel,
		v.Name,
		cli.MoneyStyle.Render(cli.FormatMoney(s.cfg.Display.Currency, r.Spend())),
		cli.FormatDate(r.Date.Time))
	return nil
}

// runDraftForm asks for a refueling with a huh form.
func runDraftForm(v model.Vehicle, last float64, hasLast bool, f *ledger.DraftForm) error {
	options := make([]huh.Option[model.FuelType], len(model.FuelTypes))
	for i, ft := range model.FuelTypes {
		options[i] = huh.NewOption(string(ft), ft)
	}
	f.PreviousFuel, f.CurrentFuel = model.Gasoline, model.Ethanol

	number := func(parse func(string) (float64, error)) func(string) error {
		return func(s string) error {
			if _, err := parse(s); err != nil {
				return errors.New("número inválido")
			}
			return nil
		}
	}
	odoHint := "km"
	if hasLast {
		odoHint = fmt.Sprintf("último: %s", cli.FormatDistance(last))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[model.FuelType]().
				Title("Combustível no tanque").
				Options(options...).
				Value(&f.PreviousFuel),
			huh.NewSelect[model.FuelType]().
				Title("Combustível abastecido").
				Options(options...).
				Value(&f.CurrentFuel),
		).Title("Abastecimento · "+v.Name),
		huh.NewGroup(
			huh.NewInput().
				Title("Litros").
				Value(&f.Liters).
				Validate(number(model.ParsePositive)),
			huh.NewInput().
				Title("Preço por litro").
				Value(&f.PricePerLiter).
				Validate(number(model.ParsePositive)),
			huh.NewInput().
				Title("Quilometragem").
				Description(odoHint).
				Value(&f.Odometer).
				Validate(number(model.ParseNonNegative)),
		),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		return fmt.Errorf("refueling form: %w", err)
	}
	return nil
}

func runRefuelList(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	var (
		records []model.Refueling
		title   string
	)
	if flagRefuelAll {
		records = ledger.SortByDateDescending(s.ledger.Refuelings())
		title = "All refuelings"
	} else {
		v, err := s.vehicle()
		if err != nil {
			return err
		}
		records, _ = s.ledger.History(model.Some(v))
		title = "Refuelings · " + v.Name
	}
	if len(records) == 0 {
		fmt.Println("\n  No refuelings recorded.")
		return nil
	}
	total := len(records)
	if flagRefuelLimit > 0 && flagRefuelLimit < total {
		records = records[:flagRefuelLimit]
	}

	names := make(map[model.ID]string)
	for _, v := range s.ledger.Vehicles() {
		names[v.ID] = v.Name
	}
	cur := s.cfg.Display.Currency

	headers := []string{"Date", "ID", "Fuel", "Liters", "Price/L", "Total", "Odometer"}
	if flagRefuelAll {
		headers = append(headers, "Vehicle")
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		row := []string{
			cli.FormatDate(r.Date.Time),
			r.ID.Short(),
			fuelChange(r),
			cli.FormatLiters(r.Liters),
			cli.FormatMoney(cur, r.PricePerLiter),
			cli.FormatMoney(cur, r.Spend()),
			cli.FormatDistance(r.Odometer),
		}
		if flagRefuelAll {
			name, ok := names[r.VehicleID]
			if !ok {
				name = "(deleted)"
			}
			row = append(row, name)
		}
		rows = append(rows, row)
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{Title: title, Headers: headers, Rows: rows}))
	if len(records) < total {
		fmt.Println(cli.MutedStyle.Render(fmt.Sprintf("  %d of %d shown", len(records), total)))
	}
	return nil
}

func fuelChange(r model.Refueling) string {
	if r.PreviousFuel == r.CurrentFuel {
		return string(r.CurrentFuel)
	}
	return strings.Join([]string{string(r.PreviousFuel), string(r.CurrentFuel)}, " → ")
}

func runRefuelDelete(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	r, ok := s.ledger.Refueling(args[0])
	if !ok {
		fmt.Printf("  No single refueling matches %q, nothing deleted\n", args[0])
		return nil
	}
	if _, err := s.ledger.DeleteRefueling(cmd.Context(), r.ID); err != nil {
		return err
	}
	fmt.Printf("  Deleted refueling of %s from %s\n", cli.FormatLiters(r.Liters), cli.FormatDate(r.Date.Time))
	return nil
}
