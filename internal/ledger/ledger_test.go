package ledger

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/fuelbook/internal/codec"
	"github.com/theirongolddev/fuelbook/internal/model"
	"github.com/theirongolddev/fuelbook/internal/store"
)

var epoch = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

// fixture returns a ledger whose clock advances one hour per call and whose
// IDs are sequential.
func fixture(t *testing.T, st store.Store) *Ledger {
	t.Helper()
	tick := 0
	seq := 0
	return New(st,
		WithClock(func() time.Time {
			tick++
			return epoch.Add(time.Duration(tick) * time.Hour)
		}),
		WithIDSource(func() model.ID {
			seq++
			id, err := model.ParseID(fmt.Sprintf("00000000-0000-4000-8000-%012d", seq))
			require.NoError(t, err)
			return id
		}),
	)
}

func addCar(t *testing.T, lg *Ledger, name string) model.Vehicle {
	t.Helper()
	v, err := lg.AddVehicle(context.Background(), model.Vehicle{
		Name: name, TankLiters: 50, EthanolEfficiency: 7, GasolineEfficiency: 10,
	})
	require.NoError(t, err)
	return v
}

func draft(liters, price, odo float64) Draft {
	return Draft{PreviousFuel: model.Gasoline, CurrentFuel: model.Ethanol, Liters: liters, PricePerLiter: price, Odometer: odo}
}

type failingStore struct {
	*store.Memory
	failSet bool
	failGet bool
}

var errDisk = errors.New("disk full")

func (f *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if f.failSet {
		return errDisk
	}
	return f.Memory.Set(ctx, key, value)
}

func (f *failingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if f.failGet {
		return nil, false, errDisk
	}
	return f.Memory.Get(ctx, key)
}

func TestLedgerRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	lg := fixture(t, st)

	car := addCar(t, lg, "Gol")
	_, err := lg.Append(ctx, model.Some(car), draft(40, 5.5, 1000))
	require.NoError(t, err)
	_, err = lg.Append(ctx, model.Some(car), draft(35.25, 3.99, 1420.5))
	require.NoError(t, err)

	reloaded := New(st)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, lg.Vehicles(), reloaded.Vehicles())

	want, got := lg.Refuelings(), reloaded.Refuelings()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Date.Equal(got[i].Date.Time))
		want[i].Date, got[i].Date = model.Timestamp{}, model.Timestamp{}
	}
	assert.Equal(t, want, got)
}

func TestLoadEmptyStore(t *testing.T) {
	lg := New(store.NewMemory())
	require.NoError(t, lg.Load(context.Background()))
	assert.Empty(t, lg.Vehicles())
	assert.Empty(t, lg.Refuelings())
	assert.False(t, lg.DefaultSelection().Present())
}

func TestLoadCorruptRefuelings(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	lg := fixture(t, st)
	car := addCar(t, lg, "Gol")

	require.NoError(t, st.Set(ctx, codec.RefuelingsKey, []byte(`[{"litros":`)))

	reloaded := New(st)
	err := reloaded.Load(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrDecode)

	var de *codec.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, codec.RefuelingsKey, de.Key)

	assert.Empty(t, reloaded.Refuelings())
	assert.Equal(t, []model.Vehicle{car}, reloaded.Vehicles(), "the readable collection still loads")

	backup, ok, err := st.Get(ctx, codec.RefuelingsKey+".corrupt")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"litros":`, string(backup))
}

func TestLoadBothCorrupt(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	require.NoError(t, st.Set(ctx, codec.VehiclesKey, []byte("garbage")))
	require.NoError(t, st.Set(ctx, codec.RefuelingsKey, []byte("{}")))

	err := New(st).Load(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), codec.VehiclesKey)
	assert.Contains(t, err.Error(), codec.RefuelingsKey)
	assert.ElementsMatch(t, []string{
		codec.VehiclesKey, codec.RefuelingsKey,
		codec.VehiclesKey + ".corrupt", codec.RefuelingsKey + ".corrupt",
	}, st.Keys())
}

func TestLoadStorageError(t *testing.T) {
	fs := &failingStore{Memory: store.NewMemory(), failGet: true}
	err := New(fs).Load(context.Background())
	assert.ErrorIs(t, err, errDisk)
	assert.NotErrorIs(t, err, codec.ErrDecode)
}

func TestAppendRequiresVehicle(t *testing.T) {
	st := store.NewMemory()
	lg := fixture(t, st)

	_, err := lg.Append(context.Background(), model.None(), draft(40, 5, 100))
	assert.ErrorIs(t, err, ErrNoVehicle)
	assert.Empty(t, lg.Refuelings())
	_, ok, _ := st.Get(context.Background(), codec.RefuelingsKey)
	assert.False(t, ok, "nothing persisted")
}

func TestAppendRejectsBadDraft(t *testing.T) {
	lg := fixture(t, store.NewMemory())
	car := addCar(t, lg, "Gol")

	bad := []Draft{
		draft(0, 5, 100),
		draft(40, 0, 100),
		draft(40, 5, -1),
		{PreviousFuel: "GNV", CurrentFuel: model.Ethanol, Liters: 1, PricePerLiter: 1},
	}
	for _, d := range bad {
		_, err := lg.Append(context.Background(), model.Some(car), d)
		assert.ErrorIs(t, err, ErrInvalidDraft, "%+v", d)
	}
	assert.Empty(t, lg.Refuelings())
}

func TestAppendStampsAndOrders(t *testing.T) {
	ctx := context.Background()
	lg := fixture(t, store.NewMemory())
	car := addCar(t, lg, "Gol")

	first, err := lg.Append(ctx, model.Some(car), draft(40, 5, 100))
	require.NoError(t, err)
	second, err := lg.Append(ctx, model.Some(car), draft(30, 5, 400))
	require.NoError(t, err)

	assert.Equal(t, car.ID, first.VehicleID)
	assert.True(t, first.Date.Equal(epoch.Add(time.Hour)))
	assert.True(t, second.Date.After(first.Date))
	assert.NotEqual(t, first.ID, second.ID)

	all := lg.Refuelings()
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[1].ID, "appended at the end")
}

func TestAppendRollsBackOnStoreFailure(t *testing.T) {
	fs := &failingStore{Memory: store.NewMemory()}
	lg := fixture(t, fs)
	car := addCar(t, lg, "Gol")

	fs.failSet = true
	_, err := lg.Append(context.Background(), model.Some(car), draft(40, 5, 100))
	assert.ErrorIs(t, err, errDisk)
	assert.Empty(t, lg.Refuelings())

	_, err = lg.AddVehicle(context.Background(), model.Vehicle{Name: "Uno", EthanolEfficiency: 8, GasolineEfficiency: 11})
	assert.ErrorIs(t, err, errDisk)
	assert.Len(t, lg.Vehicles(), 1)
}

func TestDeleteRefuelingIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	lg := fixture(t, st)
	car := addCar(t, lg, "Gol")
	r, err := lg.Append(ctx, model.Some(car), draft(40, 5, 100))
	require.NoError(t, err)
	keep, err := lg.Append(ctx, model.Some(car), draft(20, 5, 300))
	require.NoError(t, err)

	removed, err := lg.DeleteRefueling(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	once, _, _ := st.Get(ctx, codec.RefuelingsKey)

	removed, err = lg.DeleteRefueling(ctx, r.ID)
	require.NoError(t, err)
	assert.False(t, removed)
	twice, _, _ := st.Get(ctx, codec.RefuelingsKey)

	assert.Equal(t, once, twice)
	require.Len(t, lg.Refuelings(), 1)
	assert.Equal(t, keep.ID, lg.Refuelings()[0].ID)
}

func TestDeleteUnknownRefuelingStillPersists(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	lg := New(st)

	removed, err := lg.DeleteRefueling(ctx, model.NewID())
	require.NoError(t, err)
	assert.False(t, removed)

	b, ok, err := st.Get(ctx, codec.RefuelingsKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", string(b))
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	lg := fixture(t, store.NewMemory())
	gol := addCar(t, lg, "Gol")
	uno := addCar(t, lg, "Uno")

	a, _ := lg.Append(ctx, model.Some(gol), draft(40, 5, 100))
	_, _ = lg.Append(ctx, model.Some(uno), draft(30, 5, 900))
	c, _ := lg.Append(ctx, model.Some(gol), draft(20, 5, 300))

	hist, err := lg.History(model.Some(gol))
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, c.ID, hist[0].ID, "newest first")
	assert.Equal(t, a.ID, hist[1].ID)

	_, err = lg.History(model.None())
	assert.ErrorIs(t, err, ErrNoVehicle)

	odo, ok := lg.LastOdometer(gol.ID)
	assert.True(t, ok)
	assert.Equal(t, 300.0, odo)
	_, ok = lg.LastOdometer(model.NewID())
	assert.False(t, ok)
}

func TestSortReversal(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var records []model.Refueling
	for _, d := range []int{5, 1, 9, 3, 7} {
		records = append(records, model.Refueling{ID: model.NewID(), Date: model.NewTimestamp(base.AddDate(0, 0, d))})
	}

	asc := SortByDateAscending(records)
	desc := SortByDateDescending(records)
	require.Len(t, desc, len(asc))
	for i := range asc {
		assert.Equal(t, asc[i].ID, desc[len(desc)-1-i].ID)
	}
	for i := 1; i < len(asc); i++ {
		assert.False(t, asc[i].Date.Before(asc[i-1].Date))
	}
	assert.Equal(t, base.AddDate(0, 0, 5).Day(), records[0].Date.Day(), "input is not reordered")
}

func TestSortIsStable(t *testing.T) {
	same := model.NewTimestamp(epoch)
	records := []model.Refueling{
		{ID: model.NewID(), Date: same},
		{ID: model.NewID(), Date: same},
		{ID: model.NewID(), Date: same},
	}
	assert.Equal(t, records, SortByDateAscending(records))
	assert.Equal(t, records, SortByDateDescending(records))
}

func TestFilterByVehicle(t *testing.T) {
	a, b := model.NewID(), model.NewID()
	records := []model.Refueling{{VehicleID: a, Liters: 1}, {VehicleID: b, Liters: 2}, {VehicleID: a, Liters: 3}}

	got := FilterByVehicle(records, a)
	require.Len(t, got, 2)
	assert.Equal(t, 1.0, got[0].Liters)
	assert.Equal(t, 3.0, got[1].Liters)
	assert.Empty(t, FilterByVehicle(records, model.NewID()))
}

func TestParseDraft(t *testing.T) {
	d, err := ParseDraft(DraftForm{
		PreviousFuel: model.Gasoline, CurrentFuel: model.Ethanol,
		Liters: "40,5", PricePerLiter: "3.89", Odometer: "0",
	})
	require.NoError(t, err)
	assert.Equal(t, 40.5, d.Liters)
	assert.Equal(t, 3.89, d.PricePerLiter)
	assert.Zero(t, d.Odometer)

	bad := []DraftForm{
		{PreviousFuel: model.Gasoline, CurrentFuel: model.Ethanol, Liters: "", PricePerLiter: "3", Odometer: "1"},
		{PreviousFuel: model.Gasoline, CurrentFuel: model.Ethanol, Liters: "40", PricePerLiter: "abc", Odometer: "1"},
		{PreviousFuel: model.Gasoline, CurrentFuel: model.Ethanol, Liters: "40", PricePerLiter: "3", Odometer: "-5"},
		{PreviousFuel: model.Gasoline, CurrentFuel: model.Ethanol, Liters: "0", PricePerLiter: "3", Odometer: "1"},
	}
	for _, f := range bad {
		_, err := ParseDraft(f)
		assert.ErrorIs(t, err, model.ErrInvalidNumber, "%+v", f)
	}

	_, err = ParseDraft(DraftForm{Liters: "1", PricePerLiter: "1", Odometer: "1"})
	assert.ErrorIs(t, err, ErrInvalidDraft, "fuel types are required")
}
