// Package advisor decides which of two fuels is cheaper to run on, given
// their pump prices and the vehicle's economy on each.
package advisor

import (
	"errors"
	"fmt"
	"math"

	"github.com/theirongolddev/fuelbook/internal/model"
)

var (
	// ErrInvalidInput is returned when a price or efficiency is missing,
	// unparsable or not strictly positive.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoVehicle is returned by AdviseVehicle when nothing is selected.
	ErrNoVehicle = errors.New("no vehicle selected")
)

// Choice is the advised fuel.
type Choice int

const (
	// ChoiceEither means the two fuels cost the same per kilometer.
	ChoiceEither Choice = iota
	// ChoiceA favors the first fuel (ethanol in AdviseVehicle).
	ChoiceA
	// ChoiceB favors the second fuel (gasoline in AdviseVehicle).
	ChoiceB
)

func (c Choice) String() string {
	switch c {
	case ChoiceA:
		return "A"
	case ChoiceB:
		return "B"
	}
	return "either"
}

// Result carries the recommendation and the two ratios it was based on.
type Result struct {
	Choice          Choice
	PriceRatio      float64
	EfficiencyRatio float64
	// FuelA and FuelB name the compared fuels when known.
	FuelA, FuelB model.FuelType
}

// Advise compares priceA/priceB against efficiencyA/efficiencyB. Fuel A is
// cheaper per kilometer exactly when its share of the price is smaller than
// its share of the range. The comparison is exact.
func Advise(priceA, priceB, efficiencyA, efficiencyB float64) (Result, error) {
	for _, v := range [...]float64{priceA, priceB, efficiencyA, efficiencyB} {
		if !(v > 0) || math.IsInf(v, 0) {
			return Result{}, ErrInvalidInput
		}
	}

	r := Result{
		PriceRatio:      priceA / priceB,
		EfficiencyRatio: efficiencyA / efficiencyB,
	}
	switch {
	case r.PriceRatio < r.EfficiencyRatio:
		r.Choice = ChoiceA
	case r.PriceRatio > r.EfficiencyRatio:
		r.Choice = ChoiceB
	default:
		r.Choice = ChoiceEither
	}
	return r, nil
}

// AdviseVehicle parses raw price input and advises between ethanol (A) and
// gasoline (B) using the selected vehicle's economy.
func AdviseVehicle(priceEthanol, priceGasoline string, sel model.Selection) (Result, error) {
	v, ok := sel.Get()
	if !ok {
		return Result{}, ErrNoVehicle
	}
	pe, err := model.ParsePositive(priceEthanol)
	if err != nil {
		return Result{}, fmt.Errorf("%w: ethanol price %q", ErrInvalidInput, priceEthanol)
	}
	pg, err := model.ParsePositive(priceGasoline)
	if err != nil {
		return Result{}, fmt.Errorf("%w: gasoline price %q", ErrInvalidInput, priceGasoline)
	}

	r, err := Advise(pe, pg, v.EthanolEfficiency, v.GasolineEfficiency)
	if err != nil {
		return Result{}, fmt.Errorf("%w: vehicle %q has no usable efficiency", err, v.Name)
	}
	r.FuelA, r.FuelB = model.Ethanol, model.Gasoline
	return r, nil
}

// Winner returns the advised fuel. It reports false for ChoiceEither or when
// the fuels were not named.
func (r Result) Winner() (model.FuelType, bool) {
	switch r.Choice {
	case ChoiceA:
		return r.FuelA, r.FuelA != ""
	case ChoiceB:
		return r.FuelB, r.FuelB != ""
	}
	return "", false
}

const (
	verdictEthanol  = "Melhor abastecer com ETANOL"
	verdictGasoline = "Melhor abastecer com GASOLINA"
	verdictEither   = "Não há diferença significativa no abastecimento"
	verdictInvalid  = "Valores inválidos"
)

// Verdict is the one-line recommendation shown to the user.
func (r Result) Verdict() string {
	switch r.Choice {
	case ChoiceA:
		return verdictEthanol
	case ChoiceB:
		return verdictGasoline
	}
	return verdictEither
}

// Details lists both ratios to two decimal places.
func (r Result) Details() string {
	return fmt.Sprintf("Relação de preço: %.2f\nRelação de consumo: %.2f", r.PriceRatio, r.EfficiencyRatio)
}

// Message renders the outcome of an advise call, including the invalid
// input message when err is ErrInvalidInput.
func Message(r Result, err error) string {
	switch {
	case err == nil:
		return r.Verdict() + "\n" + r.Details()
	case errors.Is(err, ErrInvalidInput):
		return verdictInvalid
	}
	return err.Error()
}
