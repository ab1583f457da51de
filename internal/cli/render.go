package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/floats"
)

// Palette for plain CLI output.
var (
	ColorBorder = lipgloss.Color("#3C3836")
	ColorMuted  = lipgloss.Color("#928374")
	ColorText   = lipgloss.Color("#EBDBB2")
	ColorAccent = lipgloss.Color("#FABD2F")
	ColorGreen  = lipgloss.Color("#B8BB26")
	ColorOrange = lipgloss.Color("#FE8019")
	ColorRed    = lipgloss.Color("#FB4934")
	ColorBlue   = lipgloss.Color("#83A598")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorText).Align(lipgloss.Center)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	valueStyle  = lipgloss.NewStyle().Foreground(ColorText)
	lineStyle   = lipgloss.NewStyle().Foreground(ColorBorder)

	// MoneyStyle colors currency amounts.
	MoneyStyle = lipgloss.NewStyle().Foreground(ColorGreen)
	// WarnStyle colors warnings printed to stdout.
	WarnStyle = lipgloss.NewStyle().Foreground(ColorOrange)
	// MutedStyle colors secondary text.
	MutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	// VerdictStyle highlights an advisor verdict.
	VerdictStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorBlue)
)

// SeparatorRow, used as the only cell of a row, draws a horizontal rule.
const SeparatorRow = "---"

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(48).
		Align(lipgloss.Center).
		Padding(0, 1)

	return box.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table. The first column is left-aligned and
// the rest, which hold figures, are right-aligned.
func RenderTable(t Table) string {
	cols := len(t.Headers)
	if cols == 0 && len(t.Rows) > 0 {
		cols = len(t.Rows[0])
	}
	if cols == 0 {
		return ""
	}
	widths := columnWidths(t, cols)

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}

	b.WriteString(rule(widths, "╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(row(t.Headers, widths, headerStyle, false))
		b.WriteString(rule(widths, "├", "┼", "┤"))
	}
	for _, r := range t.Rows {
		if len(r) == 1 && r[0] == SeparatorRow {
			b.WriteString(rule(widths, "├", "┼", "┤"))
			continue
		}
		b.WriteString(row(r, widths, valueStyle, true))
	}
	b.WriteString(rule(widths, "╰", "┴", "╯"))
	return b.String()
}

func columnWidths(t Table, cols int) []int {
	widths := make([]int, cols)
	if t.Widths != nil {
		copy(widths, t.Widths)
		return widths
	}
	grow := func(cells []string) {
		for i, c := range cells {
			if i < cols {
				widths[i] = max(widths[i], lipgloss.Width(c))
			}
		}
	}
	grow(t.Headers)
	for _, r := range t.Rows {
		if len(r) == 1 && r[0] == SeparatorRow {
			continue
		}
		grow(r)
	}
	return widths
}

func rule(widths []int, left, mid, right string) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w+2)
	}
	return lineStyle.Render(left+strings.Join(parts, mid)+right) + "\n"
}

func row(cells []string, widths []int, style lipgloss.Style, alignFigures bool) string {
	bar := lineStyle.Render("│")
	var b strings.Builder
	b.WriteString(bar)
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := strings.Repeat(" ", max(0, w-lipgloss.Width(cell)))
		if alignFigures && i > 0 {
			cell = pad + cell
		} else {
			cell += pad
		}
		b.WriteString(style.Render(" " + cell + " "))
		b.WriteString(bar)
	}
	b.WriteString("\n")
	return b.String()
}

// RenderSparkline generates a unicode block sparkline from a series of values.
// Negative values render as the lowest block.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	top := floats.Max(values)
	if top <= 0 {
		top = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / top * float64(len(blocks)-1))
		idx = min(max(idx, 0), len(blocks)-1)
		b.WriteRune(blocks[idx])
	}
	return b.String()
}

// RenderHorizontalBar renders one labeled bar scaled against maxValue.
func RenderHorizontalBar(label string, value, maxValue float64, maxWidth int) string {
	if maxValue <= 0 || value <= 0 {
		return fmt.Sprintf("  %s", label)
	}
	n := int(value / maxValue * float64(maxWidth))
	n = min(max(n, 1), maxWidth)
	return fmt.Sprintf("  %s %s", label, MoneyStyle.Render(strings.Repeat("█", n)))
}
