package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fuelbook/internal/cli"
	"github.com/theirongolddev/fuelbook/internal/report"
	"github.com/theirongolddev/fuelbook/internal/tui/components"
	"github.com/theirongolddev/fuelbook/internal/tui/theme"
)

const (
	reportChartHeight = 8
	reportMaxFills    = 8
)

func (a App) renderReportsTab(cw int) string {
	t := theme.Active
	rep := a.rep
	cur := a.cfg.Display.Currency

	if !a.sel.Present() || rep.Summary.FillUps == 0 {
		return components.ContentCard("Relatórios", lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render("Sem abastecimentos para resumir"), cw)
	}

	var b strings.Builder

	// Row 1: metric cards
	s := rep.Summary
	consumption := components.Metric{Label: "Abastecimentos", Value: fmt.Sprintf("%d", s.FillUps), Note: "desde " + cli.FormatDay(s.First)}
	if rep.HasKmPerLiter {
		consumption.Note = "média " + cli.FormatRatio(rep.KmPerLiter) + " km/L"
	}
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Total gasto", Value: cli.FormatMoney(cur, s.TotalSpend)},
		{Label: "Média por abastecimento", Value: cli.FormatMoney(cur, s.AverageSpend)},
		{Label: "Volume total", Value: cli.FormatVolume(s.TotalVolume)},
		consumption,
	}, cw))
	b.WriteString("\n")

	// Row 2: spend per fill | fuel shares
	widths := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		a.renderSpendChart(widths[0]),
		a.renderFuelShares(widths[1]),
	}))
	b.WriteString("\n")

	// Row 3: consumption per fill
	b.WriteString(a.renderConsumptionTable(cw))

	return b.String()
}

func (a App) renderSpendChart(w int) string {
	fills := a.rep.Fills
	values := make([]float64, len(fills))
	labels := make([]string, len(fills))
	for i, f := range fills {
		values[i] = f.Spend
		labels[i] = cli.FormatDay(f.Refueling.Date.Time)
	}
	chart := components.BarChart(values, labels, theme.Active.Accent, components.CardInnerWidth(w), reportChartHeight)
	return components.ContentCard("Gasto por abastecimento ("+a.cfg.Display.Currency+")", chart, w)
}

func (a App) renderFuelShares(w int) string {
	t := theme.Active
	inner := components.CardInnerWidth(w)
	const labelW = 10

	var b strings.Builder
	for i, ft := range a.rep.Fuels {
		if i > 0 {
			b.WriteString("\n")
		}
		barW := max(inner-labelW-8, 4)
		b.WriteString(components.ShareBar(truncStr(string(ft.Fuel), labelW), labelW, ft.Share, t.Fuel(string(ft.Fuel)), barW))
	}

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	for _, m := range lastMonths(a.rep.Months, 3) {
		b.WriteString("\n")
		b.WriteString(muted.Render(fmt.Sprintf("%s  %s  %s",
			cli.FormatMonth(m.Month),
			cli.FormatMoney(a.cfg.Display.Currency, m.Spend),
			cli.FormatVolume(m.Volume))))
	}
	return components.ContentCard("Combustíveis (volume)", b.String(), w)
}

func (a App) renderConsumptionTable(cw int) string {
	t := theme.Active
	inner := components.CardInnerWidth(cw)
	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	distLabel := "Odômetro"
	if a.rep.Mode == report.OdometerDelta {
		distLabel = "Distância"
	}
	costLabel := "km/" + a.cfg.Display.Currency

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-16s %-9s %12s %8s %8s", "Data", "Comb.", distLabel, "km/L", costLabel)))

	fills := a.rep.Fills
	start := max(len(fills)-reportMaxFills, 0)
	for i := len(fills) - 1; i >= start; i-- {
		m := fills[i]
		b.WriteString("\n")
		if !m.HasDistance {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("%-16s %-9s %12s %8s %8s",
				cli.FormatDate(m.Refueling.Date.Time), truncStr(string(m.Fuel), 9), "-", "-", "-")))
			continue
		}
		line := fmt.Sprintf("%-16s %-9s %12s %8s %8s",
			cli.FormatDate(m.Refueling.Date.Time),
			truncStr(string(m.Fuel), 9),
			cli.FormatDistance(m.Distance),
			cli.FormatRatio(m.ConsumptionPerVolume),
			cli.FormatRatio(m.CostEfficiency))
		b.WriteString(rowStyle.Render(truncStr(line, inner)))
	}

	title := fmt.Sprintf("Consumo (odômetro %s)", a.rep.Mode)
	return components.ContentCard(title, b.String(), cw)
}

func lastMonths(months []report.MonthTotals, n int) []report.MonthTotals {
	if len(months) <= n {
		return months
	}
	return months[len(months)-n:]
}
