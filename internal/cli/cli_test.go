package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "R$ 12.35", FormatMoney("R$", 12.345))
	assert.Equal(t, "R$ 0.00", FormatMoney("R$", 0))
	assert.Equal(t, "7.50", FormatMoney("", 7.5))
	assert.Equal(t, "70.5 L", FormatVolume(70.5))
	assert.Equal(t, "40.25L", FormatLiters(40.25))
	assert.Equal(t, "412.0 km", FormatDistance(412))
	assert.Equal(t, "0.70", FormatRatio(0.7))
	assert.Equal(t, "12.5%", FormatPercent(0.125))
}

func TestFormatCount(t *testing.T) {
	cases := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-45000:   "-45,000",
		100000:   "100,000",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatCount(in), "%d", in)
	}
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2025, 3, 4, 17, 5, 0, 0, time.Local)
	assert.Equal(t, "04/03/2025 17:05", FormatDate(ts))
	assert.Equal(t, "04/03", FormatDay(ts))
	assert.Equal(t, "03/2025", FormatMonth(ts))
	assert.Equal(t, "-", FormatDate(time.Time{}))
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Abastecimentos",
		Headers: []string{"Data", "Valor"},
		Rows: [][]string{
			{"04/03", "R$ 220.00"},
			{SeparatorRow},
			{"Total", "R$ 1.00"},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, "  Abastecimentos", lines[0])
	assert.Equal(t, "╭───────┬───────────╮", lines[1])
	assert.Equal(t, "│ Data  │ Valor     │", lines[2])
	assert.Equal(t, "│ 04/03 │ R$ 220.00 │", lines[4])
	assert.Equal(t, "├───────┼───────────┤", lines[5])
	assert.Equal(t, "│ Total │   R$ 1.00 │", lines[6])
	assert.Equal(t, "╰───────┴───────────╯", lines[7])

	for _, l := range lines[1:] {
		assert.Equal(t, lipgloss.Width(lines[1]), lipgloss.Width(l), "ragged line %q", l)
	}
}

func TestRenderTableEmpty(t *testing.T) {
	assert.Empty(t, RenderTable(Table{}))
}

func TestRenderSparkline(t *testing.T) {
	assert.Equal(t, "", RenderSparkline(nil))
	assert.Equal(t, "▁▄█", RenderSparkline([]float64{0, 50, 100}))
	assert.Equal(t, "▁▁", RenderSparkline([]float64{0, 0}))
}

func TestRenderHorizontalBar(t *testing.T) {
	assert.Equal(t, "  Etanol █████", RenderHorizontalBar("Etanol", 50, 100, 10))
	assert.Equal(t, "  Diesel", RenderHorizontalBar("Diesel", 0, 100, 10))
	assert.Equal(t, "  Etanol █", RenderHorizontalBar("Etanol", 0.1, 100, 10), "non-zero values stay visible")
}
