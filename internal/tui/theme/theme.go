// Package theme defines the color themes for the fuelbook dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name         string
	Background   lipgloss.Color // Main app background
	Surface      lipgloss.Color // Card and bar backgrounds
	SurfaceHover lipgloss.Color // Selected row
	Border       lipgloss.Color
	BorderAccent lipgloss.Color // Focused input, loading card
	TextDim      lipgloss.Color // Hints, disabled
	TextMuted    lipgloss.Color // Labels
	TextPrimary  lipgloss.Color
	Accent       lipgloss.Color
	AccentBright lipgloss.Color
	Ethanol      lipgloss.Color
	Gasoline     lipgloss.Color
	Diesel       lipgloss.Color
	Good         lipgloss.Color
	Warn         lipgloss.Color
	Bad          lipgloss.Color
}

// Active is the currently selected theme.
var Active = PumpDark

// PumpDark is the default theme: dark asphalt with forecourt yellow.
var PumpDark = Theme{
	Name:         "pump-dark",
	Background:   lipgloss.Color("#121417"),
	Surface:      lipgloss.Color("#1D2025"),
	SurfaceHover: lipgloss.Color("#2A2E35"),
	Border:       lipgloss.Color("#3A3F47"),
	BorderAccent: lipgloss.Color("#F2B705"),
	TextDim:      lipgloss.Color("#5C636E"),
	TextMuted:    lipgloss.Color("#9AA2AD"),
	TextPrimary:  lipgloss.Color("#F1F3F5"),
	Accent:       lipgloss.Color("#F2B705"),
	AccentBright: lipgloss.Color("#FFD447"),
	Ethanol:      lipgloss.Color("#4CAF50"),
	Gasoline:     lipgloss.Color("#E8793A"),
	Diesel:       lipgloss.Color("#5B8DEF"),
	Good:         lipgloss.Color("#4CAF50"),
	Warn:         lipgloss.Color("#E8B33A"),
	Bad:          lipgloss.Color("#E5484D"),
}

// Gruvbox is a warm retro palette.
var Gruvbox = Theme{
	Name:         "gruvbox",
	Background:   lipgloss.Color("#1D2021"),
	Surface:      lipgloss.Color("#282828"),
	SurfaceHover: lipgloss.Color("#3C3836"),
	Border:       lipgloss.Color("#504945"),
	BorderAccent: lipgloss.Color("#FABD2F"),
	TextDim:      lipgloss.Color("#665C54"),
	TextMuted:    lipgloss.Color("#A89984"),
	TextPrimary:  lipgloss.Color("#EBDBB2"),
	Accent:       lipgloss.Color("#FABD2F"),
	AccentBright: lipgloss.Color("#FFD866"),
	Ethanol:      lipgloss.Color("#B8BB26"),
	Gasoline:     lipgloss.Color("#FE8019"),
	Diesel:       lipgloss.Color("#83A598"),
	Good:         lipgloss.Color("#B8BB26"),
	Warn:         lipgloss.Color("#FABD2F"),
	Bad:          lipgloss.Color("#FB4934"),
}

// Nord is a cool arctic palette.
var Nord = Theme{
	Name:         "nord",
	Background:   lipgloss.Color("#242933"),
	Surface:      lipgloss.Color("#2E3440"),
	SurfaceHover: lipgloss.Color("#3B4252"),
	Border:       lipgloss.Color("#4C566A"),
	BorderAccent: lipgloss.Color("#88C0D0"),
	TextDim:      lipgloss.Color("#616E88"),
	TextMuted:    lipgloss.Color("#D8DEE9"),
	TextPrimary:  lipgloss.Color("#ECEFF4"),
	Accent:       lipgloss.Color("#88C0D0"),
	AccentBright: lipgloss.Color("#8FBCBB"),
	Ethanol:      lipgloss.Color("#A3BE8C"),
	Gasoline:     lipgloss.Color("#D08770"),
	Diesel:       lipgloss.Color("#81A1C1"),
	Good:         lipgloss.Color("#A3BE8C"),
	Warn:         lipgloss.Color("#EBCB8B"),
	Bad:          lipgloss.Color("#BF616A"),
}

// Terminal uses ANSI 16 colors only.
var Terminal = Theme{
	Name:         "terminal",
	Background:   lipgloss.Color("0"),
	Surface:      lipgloss.Color("0"),
	SurfaceHover: lipgloss.Color("8"),
	Border:       lipgloss.Color("8"),
	BorderAccent: lipgloss.Color("3"),
	TextDim:      lipgloss.Color("8"),
	TextMuted:    lipgloss.Color("7"),
	TextPrimary:  lipgloss.Color("15"),
	Accent:       lipgloss.Color("3"),
	AccentBright: lipgloss.Color("11"),
	Ethanol:      lipgloss.Color("2"),
	Gasoline:     lipgloss.Color("1"),
	Diesel:       lipgloss.Color("4"),
	Good:         lipgloss.Color("2"),
	Warn:         lipgloss.Color("3"),
	Bad:          lipgloss.Color("9"),
}

// All available themes.
var All = []Theme{PumpDark, Gruvbox, Nord, Terminal}

// ByName returns a theme by its name, defaulting to PumpDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return PumpDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// Fuel returns the color used for a fuel type's name. Unknown names get the
// muted text color.
func (t Theme) Fuel(name string) lipgloss.Color {
	switch name {
	case "Etanol":
		return t.Ethanol
	case "Gasolina":
		return t.Gasoline
	case "Diesel":
		return t.Diesel
	}
	return t.TextMuted
}
