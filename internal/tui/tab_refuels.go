package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fuelbook/internal/cli"
	"github.com/theirongolddev/fuelbook/internal/model"
	"github.com/theirongolddev/fuelbook/internal/report"
	"github.com/theirongolddev/fuelbook/internal/tui/components"
	"github.com/theirongolddev/fuelbook/internal/tui/theme"
)

// refuelsState holds the Abastecimentos tab state.
type refuelsState struct {
	cursor        int
	offset        int // scroll offset for the list
	confirmDelete bool
}

func (s *refuelsState) move(delta, n int) {
	s.cursor += delta
	s.clamp(n)
}

func (s *refuelsState) clamp(n int) {
	s.cursor = min(max(s.cursor, 0), max(n-1, 0))
}

func (a App) updateRefuelsKey(key string) (tea.Model, tea.Cmd) {
	n := len(a.history)

	if a.refuels.confirmDelete {
		a.refuels.confirmDelete = false
		if key == "d" || key == "y" {
			a.deleteSelectedRefueling()
		} else {
			a.notice = ""
		}
		return a, nil
	}

	switch key {
	case "j", "down":
		a.refuels.move(1, n)
	case "k", "up":
		a.refuels.move(-1, n)
	case "g", "home":
		a.refuels.cursor = 0
	case "G", "end":
		a.refuels.cursor = max(n-1, 0)
	case "d":
		if n > 0 {
			a.refuels.confirmDelete = true
			a.notice = "Excluir este abastecimento? d/y confirma"
		}
	}
	return a, nil
}

func (a *App) deleteSelectedRefueling() {
	if a.refuels.cursor >= len(a.history) {
		return
	}
	r := a.history[a.refuels.cursor]
	if _, err := a.lg.DeleteRefueling(context.Background(), r.ID); err != nil {
		a.notice = "Erro ao excluir: " + err.Error()
		return
	}
	a.notice = "Abastecimento de " + cli.FormatDate(r.Date.Time) + " excluído"
	a.refresh()
}

// fillMetric finds the report row for the refueling with the given ID.
func (a App) fillMetric(id model.ID) (report.FillMetric, bool) {
	for _, m := range a.rep.Fills {
		if m.Refueling.ID == id {
			return m, true
		}
	}
	return report.FillMetric{}, false
}

func (a App) renderRefuelsTab(cw, h int) string {
	t := theme.Active

	if !a.sel.Present() {
		return components.ContentCard("Abastecimentos", lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render("Nenhum veículo selecionado"), cw)
	}
	if len(a.history) == 0 {
		return components.ContentCard("Abastecimentos", lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render("Nenhum abastecimento registrado\nUse `fuelbook refuel add` para registrar"), cw)
	}

	leftW := max(cw*3/5, 40)
	rightW := cw - leftW
	return components.CardRow([]string{
		a.renderRefuelsList(leftW, h),
		a.renderRefuelDetail(rightW),
	})
}

func (a App) renderRefuelsList(w, h int) string {
	t := theme.Active
	rs := a.refuels
	inner := components.CardInnerWidth(w)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)

	visible := max(h-4, 3) // card border (2) + title + header
	offset := rs.offset
	if rs.cursor < offset {
		offset = rs.cursor
	}
	if rs.cursor >= offset+visible {
		offset = rs.cursor - visible + 1
	}
	end := min(offset+visible, len(a.history))

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-16s %-9s %9s %10s", "Data", "Comb.", "Litros", "Total")))
	for i := offset; i < end; i++ {
		r := a.history[i]
		line := fmt.Sprintf("%-16s %-9s %9s %10s",
			cli.FormatDate(r.Date.Time),
			truncStr(string(r.CurrentFuel), 9),
			cli.FormatLiters(r.Liters),
			cli.FormatMoney(a.cfg.Display.Currency, r.Spend()))
		style := rowStyle
		if i == rs.cursor {
			style = selectedStyle
		}
		b.WriteString("\n")
		b.WriteString(style.Width(inner).Render(truncStr(line, inner)))
	}

	title := fmt.Sprintf("Abastecimentos (%d)", len(a.history))
	return components.ContentCard(title, b.String(), w)
}

func (a App) renderRefuelDetail(w int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Width(14)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	r := a.history[a.refuels.cursor]
	rows := [][2]string{
		{"Data", cli.FormatDate(r.Date.Time)},
		{"Antes", string(r.PreviousFuel)},
		{"Abastecido", lipgloss.NewStyle().Foreground(t.Fuel(string(r.CurrentFuel))).Background(t.Surface).Render(string(r.CurrentFuel))},
		{"Litros", cli.FormatLiters(r.Liters)},
		{"Preço/L", cli.FormatMoney(a.cfg.Display.Currency, r.PricePerLiter)},
		{"Total", cli.FormatMoney(a.cfg.Display.Currency, r.Spend())},
		{"Odômetro", cli.FormatDistance(r.Odometer)},
	}
	if m, ok := a.fillMetric(r.ID); ok && m.HasDistance {
		rows = append(rows,
			[2]string{"km/L", cli.FormatRatio(m.ConsumptionPerVolume)},
			[2]string{"km/" + a.cfg.Display.Currency, cli.FormatRatio(m.CostEfficiency)},
		)
	}
	rows = append(rows, [2]string{"ID", r.ID.Short()})

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(labelStyle.Render(row[0]))
		b.WriteString(valueStyle.Render(row[1]))
	}
	return components.ContentCard("Detalhes", b.String(), w)
}
