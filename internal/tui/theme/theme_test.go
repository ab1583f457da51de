package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByName(t *testing.T) {
	assert.Equal(t, "nord", ByName("nord").Name)
	assert.Equal(t, PumpDark.Name, ByName("does-not-exist").Name)
}

func TestSetActive(t *testing.T) {
	defer SetActive(PumpDark.Name)
	SetActive("gruvbox")
	assert.Equal(t, Gruvbox, Active)
}

func TestFuelColors(t *testing.T) {
	assert.Equal(t, PumpDark.Ethanol, PumpDark.Fuel("Etanol"))
	assert.Equal(t, PumpDark.Diesel, PumpDark.Fuel("Diesel"))
	assert.Equal(t, PumpDark.TextMuted, PumpDark.Fuel("GNV"))
}
