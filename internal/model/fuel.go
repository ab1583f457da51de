package model

import (
	"fmt"
	"strings"
)

// FuelType is the stored fuel name. The string values are part of the
// storage format and must not change.
type FuelType string

const (
	Ethanol  FuelType = "Etanol"
	Gasoline FuelType = "Gasolina"
	Diesel   FuelType = "Diesel"
)

// FuelTypes lists every known fuel in display order.
var FuelTypes = []FuelType{Ethanol, Gasoline, Diesel}

// Valid reports whether f is one of the known fuel types.
func (f FuelType) Valid() bool {
	switch f {
	case Ethanol, Gasoline, Diesel:
		return true
	}
	return false
}

// UnmarshalText rejects fuel names outside the stored domain.
func (f *FuelType) UnmarshalText(b []byte) error {
	v := FuelType(b)
	if !v.Valid() {
		return fmt.Errorf("unknown fuel type %q", string(b))
	}
	*f = v
	return nil
}

// ParseFuelType accepts stored names in any case plus English aliases.
func ParseFuelType(s string) (FuelType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "etanol", "ethanol", "e":
		return Ethanol, nil
	case "gasolina", "gasoline", "gas", "g":
		return Gasoline, nil
	case "diesel", "d":
		return Diesel, nil
	}
	return "", fmt.Errorf("unknown fuel type %q (want etanol, gasolina or diesel)", s)
}
