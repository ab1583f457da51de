package ledger

import (
	"context"
	"slices"
	"strings"

	"github.com/theirongolddev/fuelbook/internal/model"
)

// Vehicles returns a copy of the registry in insertion order.
func (lg *Ledger) Vehicles() []model.Vehicle {
	return slices.Clone(lg.vehicles)
}

// Vehicle looks a vehicle up by ID.
func (lg *Ledger) Vehicle(id model.ID) (model.Vehicle, bool) {
	i := lg.vehicleIndex(id)
	if i < 0 {
		return model.Vehicle{}, false
	}
	return lg.vehicles[i], true
}

func (lg *Ledger) vehicleIndex(id model.ID) int {
	return slices.IndexFunc(lg.vehicles, func(v model.Vehicle) bool { return v.ID == id })
}

// AddVehicle validates v, gives it a fresh ID and persists the registry.
func (lg *Ledger) AddVehicle(ctx context.Context, v model.Vehicle) (model.Vehicle, error) {
	v.Name = strings.TrimSpace(v.Name)
	if err := v.Validate(); err != nil {
		return model.Vehicle{}, err
	}
	v.ID = lg.newID()

	lg.vehicles = append(lg.vehicles, v)
	if err := lg.saveVehicles(ctx); err != nil {
		lg.vehicles = lg.vehicles[:len(lg.vehicles)-1]
		return model.Vehicle{}, err
	}
	lg.logger.Info("vehicle added", "id", v.ID.Short(), "name", v.Name)
	return v, nil
}

// UpdateVehicle replaces the vehicle with the same ID. It reports false, and
// writes nothing, when no such vehicle exists.
func (lg *Ledger) UpdateVehicle(ctx context.Context, v model.Vehicle) (bool, error) {
	i := lg.vehicleIndex(v.ID)
	if i < 0 {
		return false, nil
	}
	v.Name = strings.TrimSpace(v.Name)
	if err := v.Validate(); err != nil {
		return false, err
	}

	prev := lg.vehicles[i]
	lg.vehicles[i] = v
	if err := lg.saveVehicles(ctx); err != nil {
		lg.vehicles[i] = prev
		return false, err
	}
	return true, nil
}

// DeleteVehicle removes a vehicle and persists the registry even when the ID
// is unknown. Its refuelings are kept unless cascade is set.
func (lg *Ledger) DeleteVehicle(ctx context.Context, id model.ID, cascade bool) (bool, error) {
	before := len(lg.vehicles)
	lg.vehicles = slices.DeleteFunc(lg.vehicles, func(v model.Vehicle) bool { return v.ID == id })
	removed := len(lg.vehicles) < before

	if err := lg.saveVehicles(ctx); err != nil {
		return removed, err
	}
	if cascade {
		n := len(lg.refuelings)
		lg.refuelings = slices.DeleteFunc(lg.refuelings, func(r model.Refueling) bool { return r.VehicleID == id })
		if err := lg.saveRefuelings(ctx); err != nil {
			return removed, err
		}
		lg.logger.Debug("cascaded vehicle delete", "id", id.Short(), "refuelings", n-len(lg.refuelings))
	}
	return removed, nil
}

// Resolve finds a vehicle by exact ID, case-insensitive name, or an ID prefix
// that matches exactly one vehicle. Anything else selects nothing.
func (lg *Ledger) Resolve(ref string) model.Selection {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.None()
	}
	if id, err := model.ParseID(ref); err == nil {
		if v, ok := lg.Vehicle(id); ok {
			return model.Some(v)
		}
		return model.None()
	}
	for _, v := range lg.vehicles {
		if strings.EqualFold(v.Name, ref) {
			return model.Some(v)
		}
	}

	var match model.Selection
	for _, v := range lg.vehicles {
		if v.ID.HasPrefix(ref) {
			if match.Present() {
				return model.None()
			}
			match = model.Some(v)
		}
	}
	return match
}

// DefaultSelection picks the first registered vehicle, if any.
func (lg *Ledger) DefaultSelection() model.Selection {
	if len(lg.vehicles) == 0 {
		return model.None()
	}
	return model.Some(lg.vehicles[0])
}

// Orphans returns refuelings whose vehicle is no longer registered.
func (lg *Ledger) Orphans() []model.Refueling {
	var out []model.Refueling
	for _, r := range lg.refuelings {
		if lg.vehicleIndex(r.VehicleID) < 0 {
			out = append(out, r)
		}
	}
	return out
}
