package tui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fuelbook/internal/model"
	"github.com/theirongolddev/fuelbook/internal/tui/theme"
)

// VehicleValues backs the vehicle registration form.
type VehicleValues struct {
	Name               string
	TankLiters         string
	EthanolEfficiency  string
	GasolineEfficiency string
}

// Vehicle parses the collected values.
func (v VehicleValues) Vehicle() (model.Vehicle, error) {
	return model.ParseVehicle(model.VehicleForm{
		Name:               v.Name,
		TankLiters:         v.TankLiters,
		EthanolEfficiency:  v.EthanolEfficiency,
		GasolineEfficiency: v.GasolineEfficiency,
	})
}

// NewVehicleForm builds the huh form used both by the dashboard's first run
// and by `fuelbook vehicle add -i`.
func NewVehicleForm(vals *VehicleValues) *huh.Form {
	required := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New("obrigatório")
		}
		return nil
	}
	count := func(s string) error {
		if _, err := model.ParseCount(s); err != nil {
			return errors.New("informe um número inteiro")
		}
		return nil
	}
	positive := func(s string) error {
		if _, err := model.ParsePositive(s); err != nil {
			return errors.New("informe um número maior que zero")
		}
		return nil
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Novo veículo").
				Description("Cadastre o consumo médio com cada combustível.\nVírgula ou ponto servem como separador decimal."),
			huh.NewInput().
				Title("Nome").
				Placeholder("Gol 1.0").
				Value(&vals.Name).
				Validate(required),
			huh.NewInput().
				Title("Capacidade do tanque (L)").
				Placeholder("50").
				Value(&vals.TankLiters).
				Validate(count),
			huh.NewInput().
				Title("Consumo com etanol (km/L)").
				Placeholder("7,2").
				Value(&vals.EthanolEfficiency).
				Validate(positive),
			huh.NewInput().
				Title("Consumo com gasolina (km/L)").
				Placeholder("10,5").
				Value(&vals.GasolineEfficiency).
				Validate(positive),
		),
	).WithTheme(huh.ThemeDracula())
}

func newVehicleForm(vals *VehicleValues) *huh.Form {
	return NewVehicleForm(vals).WithShowHelp(true)
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.saveSetupVehicle()
		a.needSetup = false
		a.setupForm = nil
		a.setupVals = VehicleValues{}
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		a.setupVals = VehicleValues{}
		return a, nil
	}
	return a, cmd
}

func (a *App) saveSetupVehicle() {
	v, err := a.setupVals.Vehicle()
	if err != nil {
		a.notice = "Veículo inválido: " + err.Error()
		return
	}
	saved, err := a.lg.AddVehicle(context.Background(), v)
	if err != nil {
		a.notice = "Erro ao salvar veículo: " + err.Error()
		return
	}
	a.sel = model.Some(saved)
	a.notice = "Veículo " + saved.Name + " cadastrado"
	a.refresh()
}

func (a App) viewSetup() string {
	t := theme.Active
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.setupForm.View(),
		lipgloss.WithWhitespaceBackground(t.Background))
}
