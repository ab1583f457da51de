package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fuelbook/internal/tui/theme"
)

// RenderStatusBar renders the bottom bar: key hints on the left, status on
// the right.
func RenderStatusBar(width int, hints, status string) string {
	t := theme.Active
	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	left := " " + hints
	right := status + " "
	pad := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return style.Render(left + strings.Repeat(" ", pad) + right)
}
