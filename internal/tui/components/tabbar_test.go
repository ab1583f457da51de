package components

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestTabIdxByKey(t *testing.T) {
	assert.Equal(t, 0, TabIdxByKey('c'))
	assert.Equal(t, 2, TabIdxByKey('r'))
	assert.Equal(t, -1, TabIdxByKey('z'))
}

func TestRenderTabBarWidth(t *testing.T) {
	for active := range Tabs {
		bar := RenderTabBar(active, 80)
		assert.Equal(t, 80, lipgloss.Width(bar))
		assert.Equal(t, 1, lipgloss.Height(bar))
	}
}

func TestShareBarWidth(t *testing.T) {
	out := ShareBar("Etanol", 10, 0.25, "#00FF00", 20)
	// label + gap + bar + gap + "%5.1f%%"
	assert.Equal(t, 10+1+20+1+6, lipgloss.Width(out))
}
