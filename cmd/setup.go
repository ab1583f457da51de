package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/fuelbook/internal/config"
	"github.com/theirongolddev/fuelbook/internal/tui/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	themeOpts := make([]huh.Option[string], len(theme.All))
	for i, t := range theme.All {
		themeOpts[i] = huh.NewOption(t.Name, t.Name)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to fuelbook!").
				Description(fmt.Sprintf("Settings are saved to %s", config.Path())),
			huh.NewInput().
				Title("Currency symbol").
				Value(&cfg.Display.Currency).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("currency symbol cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Odometer readings").
				Description("Absolute: the reading is taken as the distance. Delta: distance since the previous fill.").
				Options(
					huh.NewOption("Absolute", "absolute"),
					huh.NewOption("Delta", "delta"),
				).
				Value(&cfg.General.OdometerMode),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&cfg.Appearance.Theme),
		),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		return fmt.Errorf("setup form: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Add a vehicle with `fuelbook vehicle add -i`.")
	return nil
}
