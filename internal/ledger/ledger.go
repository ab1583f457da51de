// Package ledger owns the vehicle registry and the refueling history and keeps
// both persisted in a blob store.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/theirongolddev/fuelbook/internal/codec"
	"github.com/theirongolddev/fuelbook/internal/model"
	"github.com/theirongolddev/fuelbook/internal/store"
)

// ErrNoVehicle is returned by operations that need a selected vehicle.
var ErrNoVehicle = errors.New("no vehicle selected")

// Ledger is the in-memory working copy of both collections. It is not safe
// for concurrent use.
type Ledger struct {
	store  store.Store
	logger *log.Logger
	now    func() time.Time
	newID  func() model.ID

	vehicles   []model.Vehicle
	refuelings []model.Refueling
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(lg *Ledger) { lg.logger = l }
}

// WithClock replaces time.Now for timestamping new records.
func WithClock(now func() time.Time) Option {
	return func(lg *Ledger) { lg.now = now }
}

// WithIDSource replaces model.NewID.
func WithIDSource(newID func() model.ID) Option {
	return func(lg *Ledger) { lg.newID = newID }
}

// New returns an empty ledger over st. Call Load to read persisted data.
func New(st store.Store, opts ...Option) *Ledger {
	lg := &Ledger{
		store:      st,
		logger:     log.New(io.Discard),
		now:        time.Now,
		newID:      model.NewID,
		vehicles:   []model.Vehicle{},
		refuelings: []model.Refueling{},
	}
	for _, o := range opts {
		o(lg)
	}
	return lg
}

// Load replaces both collections with what the store holds. A blob that fails
// to decode leaves its collection empty; the raw bytes are first copied to
// "<key>.corrupt" so the next save cannot destroy them. Decode failures are
// returned as *codec.DecodeError after the rest of the load has completed.
func (lg *Ledger) Load(ctx context.Context) error {
	vb, _, err := lg.store.Get(ctx, codec.VehiclesKey)
	if err != nil {
		return fmt.Errorf("loading vehicles: %w", err)
	}
	rb, _, err := lg.store.Get(ctx, codec.RefuelingsKey)
	if err != nil {
		return fmt.Errorf("loading refuelings: %w", err)
	}

	var errs []error

	vehicles, err := codec.DecodeVehicles(vb)
	if err != nil {
		if qerr := lg.quarantine(ctx, codec.VehiclesKey, vb, err); qerr != nil {
			return qerr
		}
		errs = append(errs, err)
	}
	refuelings, err := codec.DecodeRefuelings(rb)
	if err != nil {
		if qerr := lg.quarantine(ctx, codec.RefuelingsKey, rb, err); qerr != nil {
			return qerr
		}
		errs = append(errs, err)
	}

	lg.vehicles = vehicles
	lg.refuelings = refuelings
	lg.logger.Debug("ledger loaded", "vehicles", len(vehicles), "refuelings", len(refuelings))
	return errors.Join(errs...)
}

func (lg *Ledger) quarantine(ctx context.Context, key string, raw []byte, cause error) error {
	backup := key + ".corrupt"
	lg.logger.Warn("stored data unreadable, starting empty", "key", key, "backup", backup, "error", cause)
	if err := lg.store.Set(ctx, backup, raw); err != nil {
		return fmt.Errorf("backing up unreadable %s: %w", key, err)
	}
	return nil
}

// Save persists both collections.
func (lg *Ledger) Save(ctx context.Context) error {
	if err := lg.saveVehicles(ctx); err != nil {
		return err
	}
	return lg.saveRefuelings(ctx)
}

func (lg *Ledger) saveVehicles(ctx context.Context) error {
	b, err := codec.EncodeVehicles(lg.vehicles)
	if err != nil {
		return fmt.Errorf("encoding vehicles: %w", err)
	}
	if err := lg.store.Set(ctx, codec.VehiclesKey, b); err != nil {
		return fmt.Errorf("saving vehicles: %w", err)
	}
	lg.logger.Debug("vehicles saved", "count", len(lg.vehicles), "bytes", len(b))
	return nil
}

func (lg *Ledger) saveRefuelings(ctx context.Context) error {
	b, err := codec.EncodeRefuelings(lg.refuelings)
	if err != nil {
		return fmt.Errorf("encoding refuelings: %w", err)
	}
	if err := lg.store.Set(ctx, codec.RefuelingsKey, b); err != nil {
		return fmt.Errorf("saving refuelings: %w", err)
	}
	lg.logger.Debug("refuelings saved", "count", len(lg.refuelings), "bytes", len(b))
	return nil
}
