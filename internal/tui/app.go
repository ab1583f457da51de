// Package tui provides the interactive Bubble Tea dashboard for fuelbook.
package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fuelbook/internal/codec"
	"github.com/theirongolddev/fuelbook/internal/config"
	"github.com/theirongolddev/fuelbook/internal/ledger"
	"github.com/theirongolddev/fuelbook/internal/model"
	"github.com/theirongolddev/fuelbook/internal/report"
	"github.com/theirongolddev/fuelbook/internal/tui/components"
	"github.com/theirongolddev/fuelbook/internal/tui/theme"
)

// Tab indexes, in components.Tabs order.
const (
	tabFuel = iota
	tabRefuels
	tabReports
)

// loadedMsg is sent when the ledger finishes loading.
type loadedMsg struct {
	err error
}

// App is the root Bubble Tea model. The ledger is only touched from Update
// once loadedMsg has arrived.
type App struct {
	lg         *ledger.Ledger
	cfg        config.Config
	mode       report.OdometerMode
	vehicleRef string
	saveConfig func(config.Config) error

	// Derived from the ledger for the selected vehicle
	vehicles []model.Vehicle
	sel      model.Selection
	history  []model.Refueling // newest first
	rep      report.Report

	loaded  bool
	loadErr error
	notice  string

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	fuel    fuelState
	refuels refuelsState

	// First-run vehicle registration (huh form)
	setupForm *huh.Form
	setupVals VehicleValues
	needSetup bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 140
	minContentHeight = 5
)

// NewApp creates the dashboard over lg. vehicleRef, when non-empty, picks
// the initially selected vehicle by name or ID prefix.
func NewApp(lg *ledger.Ledger, cfg config.Config, mode report.OdometerMode, vehicleRef string) App {
	theme.SetActive(cfg.Appearance.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		lg:         lg,
		cfg:        cfg,
		mode:       mode,
		vehicleRef: vehicleRef,
		saveConfig: config.Save,
		fuel:       newFuelState(cfg.Prices),
		spinner:    sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadCmd(a.lg),
		a.spinner.Tick,
	)
}

func loadCmd(lg *ledger.Ledger) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: lg.Load(context.Background())}
	}
}

// refresh rebuilds everything derived from the ledger, keeping the current
// selection when that vehicle still exists.
func (a *App) refresh() {
	a.vehicles = a.lg.Vehicles()

	if v, ok := a.sel.Get(); ok {
		a.sel = model.None()
		if cur, found := a.lg.Vehicle(v.ID); found {
			a.sel = model.Some(cur)
		}
	}
	if !a.sel.Present() && a.vehicleRef != "" {
		a.sel = a.lg.Resolve(a.vehicleRef)
		a.vehicleRef = ""
	}
	if !a.sel.Present() {
		a.sel = a.lg.DefaultSelection()
	}

	a.history = nil
	a.rep = report.Report{}
	if v, ok := a.sel.Get(); ok {
		a.history, _ = a.lg.History(a.sel)
		a.rep = report.Build(a.lg.Refuelings(), v.ID, a.mode)
	}
	a.refuels.clamp(len(a.history))
}

// cycleVehicle moves the selection by delta through the registry.
func (a *App) cycleVehicle(delta int) {
	if len(a.vehicles) < 2 {
		return
	}
	idx := 0
	if v, ok := a.sel.Get(); ok {
		idx = slices.IndexFunc(a.vehicles, func(c model.Vehicle) bool { return c.ID == v.ID })
	}
	idx = (idx + delta + len(a.vehicles)) % len(a.vehicles)
	a.sel = model.Some(a.vehicles[idx])
	a.refuels = refuelsState{}
	a.refresh()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case loadedMsg:
		a.loaded = true
		a.loadErr = msg.err
		if msg.err != nil {
			var de *codec.DecodeError
			if errors.As(msg.err, &de) {
				a.notice = "Dados ilegíveis foram preservados como " + de.Key + ".corrupt"
			} else {
				a.notice = "Erro ao carregar: " + msg.err.Error()
			}
		}
		a.refresh()

		if len(a.vehicles) == 0 {
			a.needSetup = true
			a.setupForm = newVehicleForm(&a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.setupForm != nil {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.loaded {
			return a, nil
		}
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		if a.activeTab == tabFuel && a.fuel.editing {
			return a.updateFuelEditing(msg)
		}
		return a.updateKey(msg)
	}

	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.activeTab == tabFuel && a.fuel.editing {
		return a.updateFuelInputs(msg)
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}
	if a.activeTab == tabRefuels && a.refuels.confirmDelete {
		return a.updateRefuelsKey(key)
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "v":
		a.cycleVehicle(1)
		return a, nil
	case "V":
		a.cycleVehicle(-1)
		return a, nil
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "1", "2", "3":
		a.activeTab = int(key[0] - '1')
		return a, nil
	}
	if len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
			a.activeTab = idx
			return a, nil
		}
	}

	switch a.activeTab {
	case tabFuel:
		return a.updateFuelKey(key)
	case tabRefuels:
		return a.updateRefuelsKey(key)
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabRefuels {
			a.refuels.move(-1, len(a.history))
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == tabRefuels {
			a.refuels.move(1, len(a.history))
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal muito estreito (%d colunas).\n  São necessárias pelo menos %d.\n", a.width, minTerminalWidth)
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.setupForm != nil {
		return a.viewSetup()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewLoading() string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 4)
	logo := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	body := logo.Render("⛽ fuelbook") + "\n\n" + a.spinner.View() + muted.Render(" Carregando abastecimentos...")
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	title := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	desc := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	bindings := []struct{ key, desc string }{
		{"c a r", "Ir para aba"},
		{"← → tab", "Aba anterior / próxima"},
		{"v V", "Próximo / anterior veículo"},
		{"e enter", "Editar preços (Combustível)"},
		{"esc", "Terminar edição"},
		{"j k", "Navegar lista"},
		{"d", "Excluir abastecimento"},
		{"?", "Ajuda"},
		{"q", "Sair"},
	}
	var b strings.Builder
	b.WriteString(title.Render("Atalhos"))
	b.WriteString("\n\n")
	for _, bind := range bindings {
		fmt.Fprintf(&b, "%s  %s\n", keyStyle.Render(fmt.Sprintf("%-9s", bind.key)), desc.Render(bind.desc))
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card.Render(strings.TrimRight(b.String(), "\n")),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w, cw := a.width, a.contentWidth()

	header := components.RenderTabBar(a.activeTab, w) + "\n" + a.renderVehicleLine(w)
	statusBar := components.RenderStatusBar(w, a.statusHints(), a.statusText())

	contentH := max(a.height-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabFuel:
		content = a.renderFuelTab(cw)
	case tabRefuels:
		content = a.renderRefuelsTab(cw, contentH)
	case tabReports:
		content = a.renderReportsTab(cw)
	}
	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (a App) renderVehicleLine(w int) string {
	t := theme.Active
	row := lipgloss.NewStyle().Background(t.Surface).Foreground(t.TextMuted).Width(w)
	name := lipgloss.NewStyle().Background(t.Surface).Foreground(t.TextPrimary).Bold(true)

	v, ok := a.sel.Get()
	if !ok {
		return row.Render(" Nenhum veículo cadastrado")
	}
	line := fmt.Sprintf(" Veículo %s  tanque %d L · etanol %.1f km/L · gasolina %.1f km/L",
		name.Render(v.Name), v.TankLiters, v.EthanolEfficiency, v.GasolineEfficiency)
	if len(a.vehicles) > 1 {
		line += fmt.Sprintf("  (%d/%d, v troca)", a.selectedIndex()+1, len(a.vehicles))
	}
	return row.Render(line)
}

func (a App) selectedIndex() int {
	v, ok := a.sel.Get()
	if !ok {
		return -1
	}
	return slices.IndexFunc(a.vehicles, func(c model.Vehicle) bool { return c.ID == v.ID })
}

func (a App) statusHints() string {
	switch {
	case a.activeTab == tabFuel && a.fuel.editing:
		return "[tab]campo  [enter]ok  [esc]sair"
	case a.activeTab == tabRefuels:
		return "[j/k]navegar  [d]excluir  [?]ajuda  [q]sair"
	}
	return "[?]ajuda  [q]sair"
}

func (a App) statusText() string {
	if a.notice != "" {
		return a.notice
	}
	return fmt.Sprintf("odômetro: %s", a.mode)
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow RenderTabBar: tabs separated by one column.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		w := components.TabVisualWidth(tab)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 1
	}
	return -1
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	n := strings.Count(s, "\n") + 1
	if n >= h {
		return s
	}
	return s + strings.Repeat("\n", h-n)
}
