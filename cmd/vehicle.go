package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fuelbook/internal/cli"
	"github.com/theirongolddev/fuelbook/internal/ledger"
	"github.com/theirongolddev/fuelbook/internal/model"
	"github.com/theirongolddev/fuelbook/internal/report"
	"github.com/theirongolddev/fuelbook/internal/tui"
)

var (
	flagVehicleName     string
	flagVehicleTank     string
	flagVehicleEthanol  string
	flagVehicleGasoline string
	flagInteractive     bool
	flagCascade         bool
	flagAvgDistance     string
	flagAvgVolume       string
)

var vehicleCmd = &cobra.Command{
	Use:     "vehicle",
	Aliases: []string{"vehicles", "v"},
	Short:   "Manage registered vehicles",
}

var vehicleAddCmd = &cobra.Command{
	Use:     "add",
	Short:   "Register a vehicle",
	Example: "  fuelbook vehicle add --name Gol --tank 50 --ethanol 7,2 --gasoline 10,5\n  fuelbook vehicle add -i",
	Args:    cobra.NoArgs,
	RunE:    runVehicleAdd,
}

var vehicleListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List registered vehicles",
	Args:    cobra.NoArgs,
	RunE:    runVehicleList,
}

var vehicleUpdateCmd = &cobra.Command{
	Use:   "update <vehicle>",
	Short: "Change a vehicle's name, tank or efficiencies",
	Args:  cobra.ExactArgs(1),
	RunE:  runVehicleUpdate,
}

var vehicleDeleteCmd = &cobra.Command{
	Use:     "delete <vehicle>",
	Aliases: []string{"rm"},
	Short:   "Remove a vehicle",
	Long:    "Removes a vehicle. Its refuelings are kept unless --cascade is given.",
	Args:    cobra.ExactArgs(1),
	RunE:    runVehicleDelete,
}

var vehicleAvgCmd = &cobra.Command{
	Use:     "avg",
	Short:   "Compute km/L from a distance and the volume used",
	Example: "  fuelbook vehicle avg --distance 420 --volume 38,5",
	Args:    cobra.NoArgs,
	RunE:    runVehicleAvg,
}

func init() {
	for _, c := range []*cobra.Command{vehicleAddCmd, vehicleUpdateCmd} {
		c.Flags().StringVar(&flagVehicleName, "name", "", "Vehicle name")
		c.Flags().StringVar(&flagVehicleTank, "tank", "", "Tank capacity in liters")
		c.Flags().StringVar(&flagVehicleEthanol, "ethanol", "", "km/L with ethanol")
		c.Flags().StringVar(&flagVehicleGasoline, "gasoline", "", "km/L with gasoline")
	}
	vehicleAddCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Fill in a form")
	vehicleDeleteCmd.Flags().BoolVar(&flagCascade, "cascade", false, "Also delete the vehicle's refuelings")
	vehicleAvgCmd.Flags().StringVar(&flagAvgDistance, "distance", "", "Distance driven in km")
	vehicleAvgCmd.Flags().StringVar(&flagAvgVolume, "volume", "", "Liters used")

	vehicleCmd.AddCommand(vehicleAddCmd, vehicleListCmd, vehicleUpdateCmd, vehicleDeleteCmd, vehicleAvgCmd)
	rootCmd.AddCommand(vehicleCmd)
}

func runVehicleAdd(cmd *cobra.Command, _ []string) error {
	vals := tui.VehicleValues{
		Name:               flagVehicleName,
		TankLiters:         flagVehicleTank,
		EthanolEfficiency:  flagVehicleEthanol,
		GasolineEfficiency: flagVehicleGasoline,
	}
	if flagInteractive {
		if err := tui.NewVehicleForm(&vals).Run(); err != nil {
			return fmt.Errorf("vehicle form: %w", err)
		}
	}
	v, err := vals.Vehicle()
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	saved, err := s.ledger.AddVehicle(cmd.Context(), v)
	if err != nil {
		return err
	}
	fmt.Printf("  Added %s (%s)\n", saved.Name, saved.ID.Short())
	return nil
}

func runVehicleList(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	vehicles := s.ledger.Vehicles()
	if len(vehicles) == 0 {
		fmt.Println("\n  No vehicles registered yet.")
		return nil
	}

	sel, _ := s.selection()
	current, _ := sel.Get()
	refuelings := s.ledger.Refuelings()

	rows := make([][]string, 0, len(vehicles))
	for _, v := range vehicles {
		name := v.Name
		if v.ID == current.ID {
			name = "* " + name
		}
		rows = append(rows, []string{
			name,
			v.ID.Short(),
			fmt.Sprintf("%d L", v.TankLiters),
			cli.FormatRatio(v.EthanolEfficiency),
			cli.FormatRatio(v.GasolineEfficiency),
			cli.FormatRatio(v.EthanolEfficiency / v.GasolineEfficiency),
			cli.FormatCount(int64(len(ledger.FilterByVehicle(refuelings, v.ID)))),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Vehicles",
		Headers: []string{"Name", "ID", "Tank", "E km/L", "G km/L", "Break-even", "Fills"},
		Rows:    rows,
	}))
	return nil
}

func runVehicleUpdate(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	v, ok := s.ledger.Resolve(args[0]).Get()
	if !ok {
		return fmt.Errorf("no vehicle matches %q", args[0])
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		v.Name = flagVehicleName
	}
	if flags.Changed("tank") {
		if v.TankLiters, err = model.ParseCount(flagVehicleTank); err != nil {
			return fmt.Errorf("tank: %w", err)
		}
	}
	if flags.Changed("ethanol") {
		if v.EthanolEfficiency, err = model.ParsePositive(flagVehicleEthanol); err != nil {
			return fmt.Errorf("ethanol efficiency: %w", err)
		}
	}
	if flags.Changed("gasoline") {
		if v.GasolineEfficiency, err = model.ParsePositive(flagVehicleGasoline); err != nil {
			return fmt.Errorf("gasoline efficiency: %w", err)
		}
	}

	if _, err := s.ledger.UpdateVehicle(cmd.Context(), v); err != nil {
		return err
	}
	fmt.Printf("  Updated %s\n", v.Name)
	return nil
}

func runVehicleDelete(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	v, ok := s.ledger.Resolve(args[0]).Get()
	if !ok {
		fmt.Printf("  No vehicle matches %q, nothing deleted\n", args[0])
		return nil
	}
	fills := len(ledger.FilterByVehicle(s.ledger.Refuelings(), v.ID))

	if _, err := s.ledger.DeleteVehicle(cmd.Context(), v.ID, flagCascade); err != nil {
		return err
	}
	fmt.Printf("  Deleted %s\n", v.Name)
	switch {
	case fills == 0:
	case flagCascade:
		fmt.Printf("  Deleted %d refuelings\n", fills)
	default:
		fmt.Println(cli.WarnStyle.Render(fmt.Sprintf("  %d refuelings kept without a vehicle (use --cascade to remove them)", fills)))
	}
	return nil
}

func runVehicleAvg(_ *cobra.Command, _ []string) error {
	kml, err := report.AverageConsumptionText(flagAvgDistance, flagAvgVolume)
	if errors.Is(err, report.ErrInvalidInput) {
		fmt.Println("  " + cli.WarnStyle.Render("Valores inválidos"))
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("  Consumo médio: %s km/L\n", cli.FormatRatio(kml))
	return nil
}
