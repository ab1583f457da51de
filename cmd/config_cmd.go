package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fuelbook/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}
	if flagOdometer != "" {
		cfg.General.OdometerMode = flagOdometer
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Database:        %s\n", cfg.DBPath())
	fmt.Printf("    Odometer mode:   %s\n", cfg.General.OdometerMode)
	if cfg.General.DefaultVehicle != "" {
		fmt.Printf("    Default vehicle: %s\n", cfg.General.DefaultVehicle)
	}
	fmt.Println()

	fmt.Println("  [Display]")
	fmt.Printf("    Currency: %s\n", cfg.Display.Currency)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	if cfg.Prices.Ethanol != "" || cfg.Prices.Gasoline != "" {
		fmt.Println("  [Prices]")
		fmt.Printf("    Ethanol:  %s\n", cfg.Prices.Ethanol)
		fmt.Printf("    Gasoline: %s\n", cfg.Prices.Gasoline)
		fmt.Println()
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("  Warning: %s\n", err)
	}
	fmt.Println("  Run `fuelbook setup` to reconfigure.")
	return nil
}
