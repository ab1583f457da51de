// Package model defines the vehicle and refueling records and their storage encoding.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidVehicle is returned by Vehicle.Validate.
var ErrInvalidVehicle = errors.New("invalid vehicle")

// Vehicle is a registered vehicle with its per-fuel economy in km/L.
type Vehicle struct {
	ID                 ID      `json:"id"`
	Name               string  `json:"nome"`
	TankLiters         int     `json:"tanque"`
	EthanolEfficiency  float64 `json:"consumoEtanol"`
	GasolineEfficiency float64 `json:"consumoGasolina"`
}

// Validate checks the fields a user supplies when registering a vehicle.
func (v Vehicle) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidVehicle)
	}
	if v.TankLiters < 0 {
		return fmt.Errorf("%w: negative tank capacity %d", ErrInvalidVehicle, v.TankLiters)
	}
	if v.EthanolEfficiency <= 0 {
		return fmt.Errorf("%w: ethanol efficiency must be positive", ErrInvalidVehicle)
	}
	if v.GasolineEfficiency <= 0 {
		return fmt.Errorf("%w: gasoline efficiency must be positive", ErrInvalidVehicle)
	}
	return nil
}

// Efficiency returns the vehicle's km/L for the given fuel. Diesel has no
// registered ratio and reports false.
func (v Vehicle) Efficiency(f FuelType) (float64, bool) {
	switch f {
	case Ethanol:
		return v.EthanolEfficiency, true
	case Gasoline:
		return v.GasolineEfficiency, true
	}
	return 0, false
}

// VehicleForm holds raw user input for a vehicle.
type VehicleForm struct {
	Name               string
	TankLiters         string
	EthanolEfficiency  string
	GasolineEfficiency string
}

// ParseVehicle converts raw input into a Vehicle without an ID.
func ParseVehicle(f VehicleForm) (Vehicle, error) {
	tank, err := ParseCount(f.TankLiters)
	if err != nil {
		return Vehicle{}, fmt.Errorf("tank: %w", err)
	}
	ethanol, err := ParsePositive(f.EthanolEfficiency)
	if err != nil {
		return Vehicle{}, fmt.Errorf("ethanol efficiency: %w", err)
	}
	gasoline, err := ParsePositive(f.GasolineEfficiency)
	if err != nil {
		return Vehicle{}, fmt.Errorf("gasoline efficiency: %w", err)
	}
	v := Vehicle{
		Name:               strings.TrimSpace(f.Name),
		TankLiters:         tank,
		EthanolEfficiency:  ethanol,
		GasolineEfficiency: gasoline,
	}
	return v, v.Validate()
}
