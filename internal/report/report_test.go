package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/fuelbook/internal/model"
)

var day0 = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

func fill(car model.ID, days int, fuel model.FuelType, liters, price, odo float64) model.Refueling {
	return model.Refueling{
		ID:            model.NewID(),
		VehicleID:     car,
		Date:          model.NewTimestamp(day0.AddDate(0, 0, days)),
		PreviousFuel:  fuel,
		CurrentFuel:   fuel,
		Liters:        liters,
		PricePerLiter: price,
		Odometer:      odo,
	}
}

func TestSummarize(t *testing.T) {
	car := model.NewID()
	rs := []model.Refueling{
		fill(car, 0, model.Gasoline, 40, 5.5, 1000),
		fill(car, 7, model.Ethanol, 30, 3.8, 1400),
	}
	s := Summarize(rs)
	assert.Equal(t, 2, s.FillUps)
	assert.InDelta(t, 220+114, s.TotalSpend, 1e-9)
	assert.InDelta(t, 167, s.AverageSpend, 1e-9)
	assert.InDelta(t, 70, s.TotalVolume, 1e-9)
	assert.True(t, s.First.Equal(day0))
	assert.True(t, s.Last.Equal(day0.AddDate(0, 0, 7)))
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.FillUps)
	assert.Zero(t, s.TotalSpend)
	assert.Zero(t, s.AverageSpend, "no division by zero")
	assert.True(t, s.First.IsZero())
}

func TestFillMetricsAbsolute(t *testing.T) {
	car := model.NewID()
	rs := []model.Refueling{fill(car, 0, model.Gasoline, 40, 5, 1000)}

	m := FillMetrics(rs, OdometerAbsolute)
	require.Len(t, m, 1)
	assert.True(t, m[0].HasDistance)
	assert.InDelta(t, 25, m[0].ConsumptionPerVolume, 1e-9, "odometer / volume")
	assert.InDelta(t, 5, m[0].CostEfficiency, 1e-9, "odometer / (volume × price)")
	assert.InDelta(t, 200, m[0].Spend, 1e-9)
	assert.Equal(t, model.Gasoline, m[0].Fuel)
}

func TestFillMetricsDelta(t *testing.T) {
	car := model.NewID()
	rs := []model.Refueling{
		fill(car, 0, model.Gasoline, 40, 5, 1000),
		fill(car, 5, model.Gasoline, 40, 5, 1400),
		fill(car, 9, model.Gasoline, 20, 5, 1300),
	}
	m := FillMetrics(rs, OdometerDelta)
	require.Len(t, m, 3)

	assert.False(t, m[0].HasDistance, "first fill has no previous reading")
	assert.Zero(t, m[0].ConsumptionPerVolume)

	assert.True(t, m[1].HasDistance)
	assert.InDelta(t, 400, m[1].Distance, 1e-9)
	assert.InDelta(t, 10, m[1].ConsumptionPerVolume, 1e-9)
	assert.InDelta(t, 2, m[1].CostEfficiency, 1e-9)

	assert.False(t, m[2].HasDistance, "odometer went backwards")
	assert.Zero(t, m[2].Distance)
	assert.Zero(t, m[2].CostEfficiency)
}

func TestByFuel(t *testing.T) {
	car := model.NewID()
	rs := []model.Refueling{
		fill(car, 0, model.Gasoline, 10, 6, 0),
		fill(car, 1, model.Ethanol, 30, 4, 0),
		fill(car, 2, model.Gasoline, 15, 6, 0),
	}
	got := ByFuel(rs)
	require.Len(t, got, 2)

	assert.Equal(t, model.Ethanol, got[0].Fuel)
	assert.InDelta(t, 30, got[0].Volume, 1e-9)
	assert.Equal(t, 1, got[0].FillUps)

	assert.Equal(t, model.Gasoline, got[1].Fuel)
	assert.InDelta(t, 25, got[1].Volume, 1e-9)
	assert.InDelta(t, 150, got[1].Spend, 1e-9)
	assert.Equal(t, 2, got[1].FillUps)
	assert.InDelta(t, 25.0/55.0, got[1].Share, 1e-9)

	assert.Empty(t, ByFuel(nil))
}

func TestSpendSeries(t *testing.T) {
	car := model.NewID()
	rs := []model.Refueling{fill(car, 0, model.Gasoline, 10, 6, 0), fill(car, 1, model.Ethanol, 20, 4, 0)}
	assert.Equal(t, []float64{60, 80}, SpendSeries(rs))
}

func TestByMonthFillsGaps(t *testing.T) {
	car := model.NewID()
	rs := []model.Refueling{
		fill(car, 0, model.Gasoline, 10, 5, 0),  // Jan
		fill(car, 5, model.Gasoline, 10, 5, 0),  // Jan
		fill(car, 60, model.Gasoline, 20, 5, 0), // Mar
	}
	got := ByMonth(rs)
	require.Len(t, got, 3)
	assert.Equal(t, time.January, got[0].Month.Month())
	assert.Equal(t, 2, got[0].FillUps)
	assert.InDelta(t, 100, got[0].Spend, 1e-9)
	assert.Zero(t, got[1].FillUps)
	assert.Equal(t, time.February, got[1].Month.Month())
	assert.InDelta(t, 20, got[2].Volume, 1e-9)

	assert.Nil(t, ByMonth(nil))
}

func TestAverageConsumption(t *testing.T) {
	v, err := AverageConsumption(450, 30)
	require.NoError(t, err)
	assert.InDelta(t, 15, v, 1e-9)

	_, err = AverageConsumption(450, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = AverageConsumption(-1, 10)
	assert.ErrorIs(t, err, ErrInvalidInput)

	v, err = AverageConsumptionText("312,5", "25")
	require.NoError(t, err)
	assert.InDelta(t, 12.5, v, 1e-9)

	_, err = AverageConsumptionText("abc", "25")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = AverageConsumptionText("100", "0")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBuild(t *testing.T) {
	gol, uno := model.NewID(), model.NewID()
	rs := []model.Refueling{
		fill(gol, 10, model.Ethanol, 30, 4, 1500),
		fill(uno, 3, model.Gasoline, 99, 9, 99),
		fill(gol, 0, model.Gasoline, 40, 5, 1000),
	}

	rep := Build(rs, gol, OdometerDelta)
	assert.Equal(t, gol, rep.VehicleID)
	assert.Equal(t, 2, rep.Summary.FillUps)
	require.Len(t, rep.Fills, 2)
	assert.InDelta(t, 1000, rep.Fills[0].Refueling.Odometer, 1e-9, "sorted oldest first")
	assert.InDelta(t, 500, rep.Fills[1].Distance, 1e-9)
	assert.True(t, rep.HasKmPerLiter)
	assert.InDelta(t, 500.0/30.0, rep.KmPerLiter, 1e-9)

	empty := Build(rs, model.NewID(), OdometerAbsolute)
	assert.Zero(t, empty.Summary.FillUps)
	assert.Empty(t, empty.Fills)
	assert.False(t, empty.HasKmPerLiter)
}

func TestParseOdometerMode(t *testing.T) {
	m, err := ParseOdometerMode("")
	require.NoError(t, err)
	assert.Equal(t, OdometerAbsolute, m)

	m, err = ParseOdometerMode("Delta")
	require.NoError(t, err)
	assert.Equal(t, OdometerDelta, m)
	assert.Equal(t, "delta", m.String())

	_, err = ParseOdometerMode("miles")
	assert.Error(t, err)
}
