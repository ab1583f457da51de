package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fuelbook/internal/advisor"
	"github.com/theirongolddev/fuelbook/internal/cli"
	"github.com/theirongolddev/fuelbook/internal/config"
	"github.com/theirongolddev/fuelbook/internal/model"
	"github.com/theirongolddev/fuelbook/internal/tui/components"
	"github.com/theirongolddev/fuelbook/internal/tui/theme"
)

const (
	priceEthanol = iota
	priceGasoline
)

// fuelState holds the price inputs of the Combustível tab.
type fuelState struct {
	inputs  [2]textinput.Model
	focus   int
	editing bool
}

func newPriceInput(placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 12
	ti.Width = 12
	ti.Prompt = "R$ "
	ti.SetValue(value)
	return ti
}

func newFuelState(p config.PricesConfig) fuelState {
	return fuelState{
		inputs: [2]textinput.Model{
			newPriceInput("0,00", p.Ethanol),
			newPriceInput("0,00", p.Gasoline),
		},
	}
}

func (f *fuelState) setFocus(i int) tea.Cmd {
	f.focus = (i + len(f.inputs)) % len(f.inputs)
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	return f.inputs[f.focus].Focus()
}

func (f fuelState) prices() (ethanol, gasoline string) {
	return f.inputs[priceEthanol].Value(), f.inputs[priceGasoline].Value()
}

func (a App) updateFuelKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "e", "enter":
		a.fuel.editing = true
		return a, a.fuel.setFocus(a.fuel.focus)
	}
	return a, nil
}

func (a App) updateFuelEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return a.stopFuelEditing(), nil
	case "enter":
		if a.fuel.focus == priceEthanol {
			return a, a.fuel.setFocus(priceGasoline)
		}
		return a.stopFuelEditing(), nil
	case "tab", "down":
		return a, a.fuel.setFocus(a.fuel.focus + 1)
	case "shift+tab", "up":
		return a, a.fuel.setFocus(a.fuel.focus - 1)
	}
	return a.updateFuelInputs(msg)
}

func (a App) updateFuelInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.fuel.inputs[a.fuel.focus], cmd = a.fuel.inputs[a.fuel.focus].Update(msg)
	return a, cmd
}

// stopFuelEditing leaves edit mode and remembers the prices for next time.
// Saving is best effort.
func (a App) stopFuelEditing() App {
	a.fuel.editing = false
	for i := range a.fuel.inputs {
		a.fuel.inputs[i].Blur()
	}

	ethanol, gasoline := a.fuel.prices()
	if ethanol == a.cfg.Prices.Ethanol && gasoline == a.cfg.Prices.Gasoline {
		return a
	}
	a.cfg.Prices.Ethanol, a.cfg.Prices.Gasoline = ethanol, gasoline
	if a.saveConfig != nil {
		if err := a.saveConfig(a.cfg); err != nil {
			a.notice = "Preços não salvos: " + err.Error()
		}
	}
	return a
}

// fuelVerdict is the advisor output for the current inputs. It is empty
// until both prices have been typed.
func (a App) fuelVerdict() (advisor.Result, bool, error) {
	ethanol, gasoline := a.fuel.prices()
	if strings.TrimSpace(ethanol) == "" || strings.TrimSpace(gasoline) == "" {
		return advisor.Result{}, false, nil
	}
	r, err := advisor.AdviseVehicle(ethanol, gasoline, a.sel)
	return r, true, err
}

func (a App) renderFuelTab(cw int) string {
	t := theme.Active
	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	muted := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var form strings.Builder
	names := [2]string{"Etanol", "Gasolina"}
	colors := [2]lipgloss.Color{t.Ethanol, t.Gasoline}
	for i, in := range a.fuel.inputs {
		name := lipgloss.NewStyle().Foreground(colors[i]).Background(t.Surface).Bold(a.fuel.editing && a.fuel.focus == i).Width(10)
		form.WriteString(name.Render(names[i]))
		form.WriteString(in.View())
		form.WriteString("\n")
	}
	if !a.fuel.editing {
		form.WriteString("\n" + muted.Render("e para informar os preços"))
	}

	if !a.sel.Present() {
		form.WriteString("\n" + label.Render("Cadastre um veículo para comparar"))
	}

	widths := components.LayoutRow(cw, 2)
	pricesCard := components.ContentCard("Preço por litro", strings.TrimRight(form.String(), "\n"), widths[0])
	verdictCard := components.ContentCard("Onde abastecer", a.renderVerdict(components.CardInnerWidth(widths[1])), widths[1])
	return components.CardRow([]string{pricesCard, verdictCard})
}

func (a App) renderVerdict(w int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	r, ok, err := a.fuelVerdict()
	if !ok {
		return muted.Render("Informe os dois preços")
	}
	if err != nil {
		bad := lipgloss.NewStyle().Foreground(t.Bad).Background(t.Surface).Bold(true)
		return bad.Render(advisor.Message(r, err))
	}

	color := t.TextPrimary
	if fuel, won := r.Winner(); won {
		color = t.Fuel(string(fuel))
	}
	verdict := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true).Width(w)

	v, _ := a.sel.Get()
	lines := []string{
		verdict.Render(r.Verdict()),
		"",
		muted.Render(r.Details()),
		muted.Render(breakEvenLine(v)),
	}
	return strings.Join(lines, "\n")
}

// breakEvenLine names the ethanol/gasoline price ratio below which ethanol
// pays off for v.
func breakEvenLine(v model.Vehicle) string {
	if v.GasolineEfficiency <= 0 {
		return ""
	}
	return "Etanol compensa abaixo de " + cli.FormatRatio(v.EthanolEfficiency/v.GasolineEfficiency)
}
