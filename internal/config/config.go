// Package config loads and saves fuelbook's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables that override the file.
const (
	EnvDataDir      = "FUELBOOK_DATA_DIR"
	EnvOdometerMode = "FUELBOOK_ODOMETER_MODE"
	EnvTheme        = "FUELBOOK_THEME"
)

// Config holds all fuelbook configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Display    DisplayConfig    `toml:"display"`
	Appearance AppearanceConfig `toml:"appearance"`
	Prices     PricesConfig     `toml:"prices"`
}

// GeneralConfig holds storage and selection preferences.
type GeneralConfig struct {
	DataDir        string `toml:"data_dir,omitempty"`
	DefaultVehicle string `toml:"default_vehicle,omitempty"`
	OdometerMode   string `toml:"odometer_mode"`
}

// DisplayConfig controls number formatting.
type DisplayConfig struct {
	Currency string `toml:"currency"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// PricesConfig remembers the last prices given to the advisor so the
// dashboard can prefill them.
type PricesConfig struct {
	Ethanol  string `toml:"ethanol,omitempty"`
	Gasoline string `toml:"gasoline,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			OdometerMode: "absolute",
		},
		Display: DisplayConfig{
			Currency: "R$",
		},
		Appearance: AppearanceConfig{
			Theme: "pump-dark",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fuelbook")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fuelbook")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DefaultDataDir is where the database lives when nothing overrides it.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "fuelbook")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "fuelbook")
}

// Load reads the config file, returning defaults if it doesn't exist, then
// applies environment overrides. A .env file next to the config file is
// loaded first; variables already set in the environment win.
func Load() (Config, error) {
	cfg := DefaultConfig()

	_ = godotenv.Load(filepath.Join(Dir(), ".env"))

	data, err := os.ReadFile(Path())
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDataDir); v != "" {
		c.General.DataDir = v
	}
	if v := os.Getenv(EnvOdometerMode); v != "" {
		c.General.OdometerMode = v
	}
	if v := os.Getenv(EnvTheme); v != "" {
		c.Appearance.Theme = v
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return toml.NewEncoder(f).Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// ResolvedDataDir returns the configured data directory or the default.
func (c Config) ResolvedDataDir() string {
	if c.General.DataDir != "" {
		return expandHome(c.General.DataDir)
	}
	return DefaultDataDir()
}

// DBPath is the SQLite file inside the data directory.
func (c Config) DBPath() string {
	return filepath.Join(c.ResolvedDataDir(), "fuelbook.db")
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var problems []string

	switch strings.ToLower(c.General.OdometerMode) {
	case "", "absolute", "delta":
	default:
		problems = append(problems, fmt.Sprintf("invalid odometer_mode %q: must be absolute or delta", c.General.OdometerMode))
	}
	if strings.TrimSpace(c.Display.Currency) == "" {
		problems = append(problems, "currency symbol cannot be empty")
	}
	if !knownTheme(c.Appearance.Theme) {
		problems = append(problems, fmt.Sprintf("unknown theme %q: must be one of %v", c.Appearance.Theme, Themes))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Themes lists the theme names the dashboard ships.
var Themes = []string{"pump-dark", "gruvbox", "nord", "terminal"}

func knownTheme(name string) bool {
	for _, t := range Themes {
		if t == name {
			return true
		}
	}
	return false
}
