package ledger

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/theirongolddev/fuelbook/internal/model"
)

// ErrInvalidDraft is returned by Append for a draft that ParseDraft would
// not have produced.
var ErrInvalidDraft = errors.New("invalid refueling")

// Draft is a refueling before it has an ID, owner and timestamp.
type Draft struct {
	PreviousFuel  model.FuelType
	CurrentFuel   model.FuelType
	Liters        float64
	PricePerLiter float64
	Odometer      float64
}

// Validate checks the invariants ParseDraft guarantees.
func (d Draft) Validate() error {
	switch {
	case !d.PreviousFuel.Valid():
		return fmt.Errorf("%w: previous fuel %q", ErrInvalidDraft, d.PreviousFuel)
	case !d.CurrentFuel.Valid():
		return fmt.Errorf("%w: current fuel %q", ErrInvalidDraft, d.CurrentFuel)
	case !(d.Liters > 0):
		return fmt.Errorf("%w: volume must be positive", ErrInvalidDraft)
	case !(d.PricePerLiter > 0):
		return fmt.Errorf("%w: price must be positive", ErrInvalidDraft)
	case !(d.Odometer >= 0):
		return fmt.Errorf("%w: odometer must not be negative", ErrInvalidDraft)
	}
	return nil
}

// DraftForm is raw refueling input.
type DraftForm struct {
	PreviousFuel  model.FuelType
	CurrentFuel   model.FuelType
	Liters        string
	PricePerLiter string
	Odometer      string
}

// ParseDraft converts raw input. Numeric failures wrap model.ErrInvalidNumber.
func ParseDraft(f DraftForm) (Draft, error) {
	liters, err := model.ParsePositive(f.Liters)
	if err != nil {
		return Draft{}, fmt.Errorf("volume %q: %w", f.Liters, err)
	}
	price, err := model.ParsePositive(f.PricePerLiter)
	if err != nil {
		return Draft{}, fmt.Errorf("price per liter %q: %w", f.PricePerLiter, err)
	}
	odometer, err := model.ParseNonNegative(f.Odometer)
	if err != nil {
		return Draft{}, fmt.Errorf("odometer %q: %w", f.Odometer, err)
	}
	d := Draft{
		PreviousFuel:  f.PreviousFuel,
		CurrentFuel:   f.CurrentFuel,
		Liters:        liters,
		PricePerLiter: price,
		Odometer:      odometer,
	}
	return d, d.Validate()
}

// Append records a fill-up for the selected vehicle, stamped with the current
// time, at the end of the sequence. Nothing is kept if persisting fails.
func (lg *Ledger) Append(ctx context.Context, sel model.Selection, d Draft) (model.Refueling, error) {
	v, ok := sel.Get()
	if !ok {
		return model.Refueling{}, ErrNoVehicle
	}
	if err := d.Validate(); err != nil {
		return model.Refueling{}, err
	}

	r := model.Refueling{
		ID:            lg.newID(),
		VehicleID:     v.ID,
		Date:          model.NewTimestamp(lg.now()),
		PreviousFuel:  d.PreviousFuel,
		CurrentFuel:   d.CurrentFuel,
		Liters:        d.Liters,
		PricePerLiter: d.PricePerLiter,
		Odometer:      d.Odometer,
	}

	lg.refuelings = append(lg.refuelings, r)
	if err := lg.saveRefuelings(ctx); err != nil {
		lg.refuelings = lg.refuelings[:len(lg.refuelings)-1]
		return model.Refueling{}, err
	}
	lg.logger.Info("refueling recorded", "vehicle", v.Name, "liters", r.Liters, "fuel", r.CurrentFuel)
	return r, nil
}

// DeleteRefueling removes the record with id, if present, and persists the
// sequence either way.
func (lg *Ledger) DeleteRefueling(ctx context.Context, id model.ID) (bool, error) {
	before := len(lg.refuelings)
	lg.refuelings = slices.DeleteFunc(lg.refuelings, func(r model.Refueling) bool { return r.ID == id })
	removed := len(lg.refuelings) < before
	return removed, lg.saveRefuelings(ctx)
}

// Refuelings returns a copy of every record in stored order.
func (lg *Ledger) Refuelings() []model.Refueling {
	return slices.Clone(lg.refuelings)
}

// Refueling looks a record up by ID or unique ID prefix.
func (lg *Ledger) Refueling(ref string) (model.Refueling, bool) {
	if id, err := model.ParseID(ref); err == nil {
		i := slices.IndexFunc(lg.refuelings, func(r model.Refueling) bool { return r.ID == id })
		if i < 0 {
			return model.Refueling{}, false
		}
		return lg.refuelings[i], true
	}
	var (
		found model.Refueling
		n     int
	)
	for _, r := range lg.refuelings {
		if r.ID.HasPrefix(ref) {
			found = r
			n++
		}
	}
	return found, n == 1
}

// History returns the selected vehicle's refuelings, newest first.
func (lg *Ledger) History(sel model.Selection) ([]model.Refueling, error) {
	v, ok := sel.Get()
	if !ok {
		return nil, ErrNoVehicle
	}
	return SortByDateDescending(FilterByVehicle(lg.refuelings, v.ID)), nil
}

// LastOdometer returns the odometer of the vehicle's most recent fill-up.
func (lg *Ledger) LastOdometer(vehicleID model.ID) (float64, bool) {
	var (
		last  model.Refueling
		found bool
	)
	for _, r := range lg.refuelings {
		if r.VehicleID != vehicleID {
			continue
		}
		if !found || !r.Date.Before(last.Date) {
			last, found = r, true
		}
	}
	return last.Odometer, found
}

// FilterByVehicle returns the records that belong to id, in their original
// order.
func FilterByVehicle(records []model.Refueling, id model.ID) []model.Refueling {
	out := make([]model.Refueling, 0, len(records))
	for _, r := range records {
		if r.VehicleID == id {
			out = append(out, r)
		}
	}
	return out
}

// SortByDateDescending returns a copy ordered newest first. Records with equal
// dates keep their relative order.
func SortByDateDescending(records []model.Refueling) []model.Refueling {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b model.Refueling) int {
		return b.Date.Compare(a.Date.Time)
	})
	return out
}

// SortByDateAscending returns a copy ordered oldest first. Records with equal
// dates keep their relative order.
func SortByDateAscending(records []model.Refueling) []model.Refueling {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b model.Refueling) int {
		return a.Date.Compare(b.Date.Time)
	})
	return out
}
