package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

const (
	// AppName is the directory name used under the XDG base directories
	AppName = "stopwatch"
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
)

// Config represents the application configuration
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Clock   ClockConfig   `toml:"clock"`
	Log     LogConfig     `toml:"log"`
}

type StorageConfig struct {
	// Driver selects the key-value backend: sqlite, file or memory
	Driver string `toml:"driver"`
	// Path is the database or JSON file; empty means the XDG data directory
	Path string `toml:"path"`
	// Key is the store key holding the record list
	Key string `toml:"key"`
}

type ClockConfig struct {
	// RefreshInterval is how often the running-time readout is redrawn
	RefreshInterval string `toml:"refresh_interval"`
}

type LogConfig struct {
	Level string `toml:"level"`
	// File receives log output; empty means the XDG state directory
	File string `toml:"file"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Driver: "sqlite",
			Key:    "data",
		},
		Clock: ClockConfig{
			RefreshInterval: "250ms",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/stopwatch/config.toml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, ConfigFile)
}

// Load reads the TOML file at path over the defaults. A missing file at the
// default location is not an error; a missing explicit path is.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg.withDefaults(), nil
		}
		return Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// withDefaults fills values that depend on the environment.
func (c Config) withDefaults() Config {
	if c.Storage.Driver == "" {
		c.Storage.Driver = "sqlite"
	}
	if c.Storage.Key == "" {
		c.Storage.Key = "data"
	}
	if c.Storage.Path == "" {
		c.Storage.Path = DefaultStoragePath(c.Storage.Driver)
	}
	if c.Log.File == "" {
		c.Log.File = filepath.Join(xdg.StateHome, AppName, AppName+".log")
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	return c
}

// DefaultStoragePath returns the data file for driver under $XDG_DATA_HOME.
func DefaultStoragePath(driver string) string {
	name := AppName + ".db"
	if driver == "file" {
		name = AppName + ".json"
	}
	return filepath.Join(xdg.DataHome, AppName, name)
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case "sqlite", "file", "memory":
	default:
		return fmt.Errorf("storage.driver must be sqlite, file or memory, got %q", c.Storage.Driver)
	}
	if _, err := c.Interval(); err != nil {
		return err
	}
	return nil
}

// Interval parses clock.refresh_interval.
func (c Config) Interval() (time.Duration, error) {
	if c.Clock.RefreshInterval == "" {
		return 250 * time.Millisecond, nil
	}
	d, err := time.ParseDuration(c.Clock.RefreshInterval)
	if err != nil {
		return 0, fmt.Errorf("clock.refresh_interval: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("clock.refresh_interval must be positive, got %s", d)
	}
	return d, nil
}

// Override applies command-line values; empty arguments keep the loaded
// value. Changing the driver without a path moves the default data file too.
func (c Config) Override(driver, path, level string) (Config, error) {
	if driver != "" && driver != c.Storage.Driver {
		if path == "" && c.Storage.Path == DefaultStoragePath(c.Storage.Driver) {
			c.Storage.Path = DefaultStoragePath(driver)
		}
		c.Storage.Driver = driver
	}
	if path != "" {
		c.Storage.Path = path
	}
	if level != "" {
		c.Log.Level = level
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
