package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fuelbook/internal/advisor"
	"github.com/theirongolddev/fuelbook/internal/cli"
	"github.com/theirongolddev/fuelbook/internal/config"
	"github.com/theirongolddev/fuelbook/internal/model"
)

var (
	flagPriceEthanol  string
	flagPriceGasoline string
	flagEffEthanol    string
	flagEffGasoline   string
	flagRemember      bool
)

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Tell whether ethanol or gasoline is cheaper per kilometer",
	Long: `Compares the price ratio ethanol/gasoline with the vehicle's efficiency
ratio. Prices accept a comma or a dot as decimal separator.

Efficiencies come from the selected vehicle unless --eff-ethanol and
--eff-gasoline are both given.`,
	Example: "  fuelbook advise --ethanol 3,99 --gasoline 5,89\n  fuelbook advise -V gol --ethanol 4.19 --gasoline 5.99",
	RunE:    runAdvise,
}

func init() {
	adviseCmd.Flags().StringVarP(&flagPriceEthanol, "ethanol", "e", "", "Ethanol price per liter")
	adviseCmd.Flags().StringVarP(&flagPriceGasoline, "gasoline", "g", "", "Gasoline price per liter")
	adviseCmd.Flags().StringVar(&flagEffEthanol, "eff-ethanol", "", "Ethanol km/L, overriding the vehicle")
	adviseCmd.Flags().StringVar(&flagEffGasoline, "eff-gasoline", "", "Gasoline km/L, overriding the vehicle")
	adviseCmd.Flags().BoolVar(&flagRemember, "remember", false, "Save the prices to the config for the dashboard")
	rootCmd.AddCommand(adviseCmd)
}

func runAdvise(cmd *cobra.Command, _ []string) error {
	var (
		r   advisor.Result
		err error
	)
	if flagEffEthanol != "" || flagEffGasoline != "" {
		r, err = adviseManual()
	} else {
		s, serr := openSession(cmd.Context())
		if serr != nil {
			return serr
		}
		defer func() { _ = s.Close() }()

		sel, serr := s.selection()
		if serr != nil {
			return serr
		}
		if v, ok := sel.Get(); ok {
			fmt.Println(cli.MutedStyle.Render(fmt.Sprintf("  %s: etanol %.1f km/L, gasolina %.1f km/L",
				v.Name, v.EthanolEfficiency, v.GasolineEfficiency)))
		}
		r, err = advisor.AdviseVehicle(flagPriceEthanol, flagPriceGasoline, sel)
		if errors.Is(err, advisor.ErrNoVehicle) {
			return fmt.Errorf("%w: register one with `fuelbook vehicle add` or pass --eff-ethanol/--eff-gasoline", err)
		}
	}

	printAdvice(r, err)

	if err == nil && flagRemember {
		cfg, lerr := config.Load()
		if lerr != nil {
			return lerr
		}
		cfg.Prices.Ethanol, cfg.Prices.Gasoline = flagPriceEthanol, flagPriceGasoline
		if serr := config.Save(cfg); serr != nil {
			return fmt.Errorf("saving prices: %w", serr)
		}
	}
	return nil
}

// adviseManual runs the advisor on explicit efficiencies, without touching
// the store.
func adviseManual() (advisor.Result, error) {
	values := make([]float64, 4)
	for i, raw := range []string{flagPriceEthanol, flagPriceGasoline, flagEffEthanol, flagEffGasoline} {
		v, err := model.ParsePositive(raw)
		if err != nil {
			return advisor.Result{}, fmt.Errorf("%w: %q", advisor.ErrInvalidInput, raw)
		}
		values[i] = v
	}
	r, err := advisor.Advise(values[0], values[1], values[2], values[3])
	r.FuelA, r.FuelB = model.Ethanol, model.Gasoline
	return r, err
}

func printAdvice(r advisor.Result, err error) {
	fmt.Println()
	if err != nil {
		fmt.Println("  " + cli.WarnStyle.Render(advisor.Message(r, err)))
		return
	}
	fmt.Println("  " + cli.VerdictStyle.Render(r.Verdict()))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Rows: [][]string{
			{"Relação de preço", cli.FormatRatio(r.PriceRatio)},
			{"Relação de consumo", cli.FormatRatio(r.EfficiencyRatio)},
		},
	}))
}
