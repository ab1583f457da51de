package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/fuelbook/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRow(t *testing.T) {
	assert.Equal(t, []int{4, 3, 3}, LayoutRow(10, 3))
	assert.Nil(t, LayoutRow(10, 0))
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("pump-dark")

	short := ContentCard("Curto", "Conteúdo", 22)
	tall := ContentCard("Alto", "1\n2\n3\n4\n5", 22)
	shortLines := lipgloss.Height(short)
	tallLines := lipgloss.Height(tall)
	require.Less(t, shortLines, tallLines)

	lines := strings.Split(CardRow([]string{tall, short}), "\n")
	assert.Len(t, lines, tallLines, "joined height matches tallest card")

	for i := shortLines; i < len(lines); i++ {
		assert.Contains(t, lines[i], "\x1b[", "padding line %d is unstyled", i)
	}
}

func TestCardRowWidthConsistency(t *testing.T) {
	theme.SetActive("pump-dark")

	row := CardRow([]string{ContentCard("A", "x\ny\nz\nw", 20), ContentCard("B", "x", 30)})
	for i, line := range strings.Split(row, "\n") {
		assert.Equal(t, 50, lipgloss.Width(line), "line %d", i)
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	row := MetricCardRow([]Metric{
		{Label: "Total", Value: "R$ 100.00"},
		{Label: "Média", Value: "R$ 50.00", Note: "2 abastecimentos"},
		{Label: "Volume", Value: "20.0 L"},
	}, 61)
	for _, line := range strings.Split(row, "\n") {
		assert.Equal(t, 61, lipgloss.Width(line))
	}
}
