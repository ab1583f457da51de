package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fuelbook/internal/tui/theme"
)

// ShareBar renders a labeled horizontal bar for a 0-1 share, followed by the
// percentage. The bar itself is width cells wide.
func ShareBar(label string, labelWidth int, share float64, color lipgloss.Color, width int) string {
	t := theme.Active
	share = min(max(share, 0), 1)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithoutPercentage(),
		progress.WithWidth(max(width, 4)),
	)
	bar.EmptyColor = string(t.Border)

	labelStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Width(labelWidth)
	pctStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	gap := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	return labelStyle.Render(label) + gap + bar.ViewAs(share) + gap + pctStyle.Render(fmt.Sprintf("%5.1f%%", share*100))
}
