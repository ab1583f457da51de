// Package report aggregates a vehicle's refuelings into spending and
// consumption figures. Every function expects records already filtered to one
// vehicle and sorted oldest first, except Build which does both.
package report

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/theirongolddev/fuelbook/internal/ledger"
	"github.com/theirongolddev/fuelbook/internal/model"
)

// ErrInvalidInput is returned by the km/L calculator.
var ErrInvalidInput = errors.New("invalid input")

// OdometerMode selects how the odometer reading of a fill-up is interpreted.
type OdometerMode int

const (
	// OdometerAbsolute divides the raw odometer reading by the fill's volume.
	OdometerAbsolute OdometerMode = iota
	// OdometerDelta uses the distance driven since the previous fill.
	OdometerDelta
)

func (m OdometerMode) String() string {
	if m == OdometerDelta {
		return "delta"
	}
	return "absolute"
}

// ParseOdometerMode accepts "absolute" or "delta". Empty means absolute.
func ParseOdometerMode(s string) (OdometerMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "absolute", "abs":
		return OdometerAbsolute, nil
	case "delta", "trip":
		return OdometerDelta, nil
	}
	return OdometerAbsolute, fmt.Errorf("unknown odometer mode %q (want absolute or delta)", s)
}

// Summary holds the totals shown on the spending report.
type Summary struct {
	FillUps      int
	TotalSpend   float64
	AverageSpend float64
	TotalVolume  float64
	First        time.Time
	Last         time.Time
}

// Summarize totals spend and volume. AverageSpend is zero for no records.
func Summarize(records []model.Refueling) Summary {
	s := Summary{FillUps: len(records)}
	if len(records) == 0 {
		return s
	}

	spends := make([]float64, len(records))
	volumes := make([]float64, len(records))
	for i, r := range records {
		spends[i] = r.Spend()
		volumes[i] = r.Liters
	}
	s.TotalSpend = floats.Sum(spends)
	s.TotalVolume = floats.Sum(volumes)
	s.AverageSpend = s.TotalSpend / float64(len(records))
	s.First = records[0].Date.Time
	s.Last = records[len(records)-1].Date.Time
	return s
}

// FillMetric is the per-fill row of the consumption report.
type FillMetric struct {
	Refueling model.Refueling
	Spend     float64
	Volume    float64
	Fuel      model.FuelType
	// Distance is the odometer figure the ratios were computed from. It is
	// meaningless when HasDistance is false.
	Distance    float64
	HasDistance bool
	// ConsumptionPerVolume is km per liter.
	ConsumptionPerVolume float64
	// CostEfficiency is km per unit of currency.
	CostEfficiency float64
}

// FillMetrics computes one FillMetric per record. In absolute mode the raw
// odometer is divided by the fill, as the stored history has always been
// reported. In delta mode the first fill and any fill whose odometer went
// backwards have no distance and zero ratios.
func FillMetrics(records []model.Refueling, mode OdometerMode) []FillMetric {
	out := make([]FillMetric, len(records))
	for i, r := range records {
		m := FillMetric{
			Refueling: r,
			Spend:     r.Spend(),
			Volume:    r.Liters,
			Fuel:      r.CurrentFuel,
		}
		switch mode {
		case OdometerDelta:
			if i > 0 {
				m.Distance = r.Odometer - records[i-1].Odometer
				m.HasDistance = m.Distance >= 0
			}
		default:
			m.Distance = r.Odometer
			m.HasDistance = true
		}
		if m.HasDistance {
			if m.Volume > 0 {
				m.ConsumptionPerVolume = m.Distance / m.Volume
			}
			if m.Spend > 0 {
				m.CostEfficiency = m.Distance / m.Spend
			}
		} else {
			m.Distance = 0
		}
		out[i] = m
	}
	return out
}

// FuelTotals aggregates the fills made with one fuel.
type FuelTotals struct {
	Fuel    model.FuelType
	Volume  float64
	Spend   float64
	FillUps int
	// Share is this fuel's fraction of the total volume.
	Share float64
}

// ByFuel groups records by the fuel put in, largest volume first.
func ByFuel(records []model.Refueling) []FuelTotals {
	byFuel := make(map[model.FuelType]*FuelTotals)
	var total float64
	for _, r := range records {
		ft, ok := byFuel[r.CurrentFuel]
		if !ok {
			ft = &FuelTotals{Fuel: r.CurrentFuel}
			byFuel[r.CurrentFuel] = ft
		}
		ft.Volume += r.Liters
		ft.Spend += r.Spend()
		ft.FillUps++
		total += r.Liters
	}

	out := make([]FuelTotals, 0, len(byFuel))
	for _, ft := range byFuel {
		if total > 0 {
			ft.Share = ft.Volume / total
		}
		out = append(out, *ft)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Volume != out[j].Volume {
			return out[i].Volume > out[j].Volume
		}
		return out[i].Fuel < out[j].Fuel
	})
	return out
}

// SpendSeries returns each fill's spend in record order.
func SpendSeries(records []model.Refueling) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Spend()
	}
	return out
}

// MonthTotals is the spend and volume of one calendar month.
type MonthTotals struct {
	Month   time.Time
	Spend   float64
	Volume  float64
	FillUps int
}

// ByMonth buckets records by local calendar month, oldest first. Months
// without fills between the first and last are included as zeros.
func ByMonth(records []model.Refueling) []MonthTotals {
	if len(records) == 0 {
		return nil
	}
	monthOf := func(t time.Time) time.Time {
		lt := t.Local()
		return time.Date(lt.Year(), lt.Month(), 1, 0, 0, 0, 0, time.Local)
	}

	buckets := make(map[string]*MonthTotals)
	first, last := monthOf(records[0].Date.Time), monthOf(records[0].Date.Time)
	for _, r := range records {
		m := monthOf(r.Date.Time)
		if m.Before(first) {
			first = m
		}
		if m.After(last) {
			last = m
		}
		key := m.Format("2006-01")
		b, ok := buckets[key]
		if !ok {
			b = &MonthTotals{Month: m}
			buckets[key] = b
		}
		b.Spend += r.Spend()
		b.Volume += r.Liters
		b.FillUps++
	}

	var out []MonthTotals
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		if b, ok := buckets[m.Format("2006-01")]; ok {
			out = append(out, *b)
		} else {
			out = append(out, MonthTotals{Month: m})
		}
	}
	return out
}

// AverageConsumption is the km/L calculator.
func AverageConsumption(distance, volume float64) (float64, error) {
	if !(volume > 0) || !(distance >= 0) {
		return 0, ErrInvalidInput
	}
	return distance / volume, nil
}

// AverageConsumptionText parses raw distance and volume input first.
func AverageConsumptionText(distance, volume string) (float64, error) {
	d, err := model.ParseNonNegative(distance)
	if err != nil {
		return 0, fmt.Errorf("%w: distance %q", ErrInvalidInput, distance)
	}
	v, err := model.ParsePositive(volume)
	if err != nil {
		return 0, fmt.Errorf("%w: volume %q", ErrInvalidInput, volume)
	}
	return AverageConsumption(d, v)
}

// Report is everything the reporting views show for one vehicle.
type Report struct {
	VehicleID model.ID
	Mode      OdometerMode
	Summary   Summary
	Fills     []FillMetric
	Fuels     []FuelTotals
	Months    []MonthTotals
	// KmPerLiter is the whole-period average in delta mode: distance between
	// the first and last fill over the volume added after the first.
	KmPerLiter    float64
	HasKmPerLiter bool
}

// Build filters records to vehicleID, orders them oldest first and computes
// every aggregate.
func Build(records []model.Refueling, vehicleID model.ID, mode OdometerMode) Report {
	rs := ledger.SortByDateAscending(ledger.FilterByVehicle(records, vehicleID))
	rep := Report{
		VehicleID: vehicleID,
		Mode:      mode,
		Summary:   Summarize(rs),
		Fills:     FillMetrics(rs, mode),
		Fuels:     ByFuel(rs),
		Months:    ByMonth(rs),
	}
	if mode == OdometerDelta && len(rs) > 1 {
		distance := rs[len(rs)-1].Odometer - rs[0].Odometer
		volume := rep.Summary.TotalVolume - rs[0].Liters
		if kml, err := AverageConsumption(distance, volume); err == nil {
			rep.KmPerLiter, rep.HasKmPerLiter = kml, true
		}
	}
	return rep
}
