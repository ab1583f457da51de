package model

// Refueling is one fill-up. Records are never mutated after creation.
type Refueling struct {
	ID            ID        `json:"id"`
	VehicleID     ID        `json:"veiculoId"`
	Date          Timestamp `json:"data"`
	PreviousFuel  FuelType  `json:"tipoCombustivelAntigo"`
	CurrentFuel   FuelType  `json:"tipoCombustivelAtual"`
	Liters        float64   `json:"litros"`
	PricePerLiter float64   `json:"valorLitro"`
	Odometer      float64   `json:"quilometragem"`
}

// Spend is the amount paid for the fill-up.
func (r Refueling) Spend() float64 {
	return r.PricePerLiter * r.Liters
}

// Selection is an optional vehicle reference. The zero value selects nothing.
type Selection struct {
	vehicle Vehicle
	ok      bool
}

// Some selects v.
func Some(v Vehicle) Selection {
	return Selection{vehicle: v, ok: true}
}

// None selects nothing.
func None() Selection {
	return Selection{}
}

// Get returns the selected vehicle and whether one is selected.
func (s Selection) Get() (Vehicle, bool) {
	return s.vehicle, s.ok
}

// Present reports whether a vehicle is selected.
func (s Selection) Present() bool {
	return s.ok
}
