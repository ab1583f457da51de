// Package cmd implements the fuelbook CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/fuelbook/internal/codec"
	"github.com/theirongolddev/fuelbook/internal/config"
	"github.com/theirongolddev/fuelbook/internal/ledger"
	"github.com/theirongolddev/fuelbook/internal/model"
	"github.com/theirongolddev/fuelbook/internal/report"
	"github.com/theirongolddev/fuelbook/internal/store"
)

var (
	flagDataDir   string
	flagVehicle   string
	flagQuiet     bool
	flagVerbose   bool
	flagEphemeral bool
	flagOdometer  string
)

var rootCmd = &cobra.Command{
	Use:          "fuelbook",
	Short:        "Ethanol or gasoline? Track refuelings and fuel spending",
	Long:         "Decide which fuel is cheaper per kilometer, log every fill-up, and report spending and consumption per vehicle.",
	SilenceUsage: true,
	RunE:         runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Directory holding fuelbook.db (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagVehicle, "vehicle", "V", "", "Vehicle name or ID prefix")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Log debug output")
	rootCmd.PersistentFlags().BoolVar(&flagEphemeral, "ephemeral", false, "Keep data in memory only")
	rootCmd.PersistentFlags().StringVar(&flagOdometer, "odometer", "", "Odometer mode: absolute or delta (default from config)")
}

func newLogger() *log.Logger {
	level := log.InfoLevel
	switch {
	case flagVerbose:
		level = log.DebugLevel
	case flagQuiet:
		level = log.ErrorLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "fuelbook",
		ReportTimestamp: flagVerbose,
		Level:           level,
	})
}

// session bundles what every data command needs.
type session struct {
	cfg    config.Config
	logger *log.Logger
	store  store.Store
	ledger *ledger.Ledger
	mode   report.OdometerMode
}

// newSession loads config and opens the store. The ledger is not loaded yet.
func newSession() (*session, error) {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}
	if flagOdometer != "" {
		cfg.General.OdometerMode = flagOdometer
	}
	mode, err := report.ParseOdometerMode(cfg.General.OdometerMode)
	if err != nil {
		return nil, err
	}

	var st store.Store
	if flagEphemeral {
		st = store.NewMemory()
		logger.Debug("using in-memory store")
	} else {
		sq, err := store.OpenSQLite(cfg.DBPath())
		if err != nil {
			return nil, fmt.Errorf("opening store: %w", err)
		}
		logger.Debug("opened store", "path", sq.Path())
		st = sq
	}

	lg := ledger.New(st, ledger.WithLogger(logger))
	return &session{cfg: cfg, logger: logger, store: st, ledger: lg, mode: mode}, nil
}

// openSession is newSession plus a ledger load. Unreadable collections have
// already been logged by the ledger and are skipped; storage failures abort.
func openSession(ctx context.Context) (*session, error) {
	s, err := newSession()
	if err != nil {
		return nil, err
	}
	if err := s.ledger.Load(ctx); err != nil {
		if !errors.Is(err, codec.ErrDecode) {
			_ = s.Close()
			return nil, fmt.Errorf("loading data: %w", err)
		}
		s.logger.Debug("continuing with partial data", "error", err)
	}
	return s, nil
}

func (s *session) Close() error {
	return s.store.Close()
}

// selection resolves --vehicle, then the configured default, then the first
// registered vehicle.
func (s *session) selection() (model.Selection, error) {
	if flagVehicle != "" {
		sel := s.ledger.Resolve(flagVehicle)
		if !sel.Present() {
			return sel, fmt.Errorf("no vehicle matches %q", flagVehicle)
		}
		return sel, nil
	}
	if ref := s.cfg.General.DefaultVehicle; ref != "" {
		if sel := s.ledger.Resolve(ref); sel.Present() {
			return sel, nil
		}
		s.logger.Warn("configured default vehicle not found", "vehicle", ref)
	}
	return s.ledger.DefaultSelection(), nil
}

// vehicle is selection for commands that cannot run without one.
func (s *session) vehicle() (model.Vehicle, error) {
	sel, err := s.selection()
	if err != nil {
		return model.Vehicle{}, err
	}
	v, ok := sel.Get()
	if !ok {
		return v, fmt.Errorf("%w: register one with `fuelbook vehicle add`", ledger.ErrNoVehicle)
	}
	return v, nil
}
