// Package config resolves mousemover settings from defaults, a YAML file,
// MOUSEMOVER_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stigoleg/mousemover/internal/motion"
	"github.com/stigoleg/mousemover/internal/platform"
	"github.com/stigoleg/mousemover/internal/runner"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "MOUSEMOVER_"

type Config struct {
	// Duration limits the session; zero runs until stopped.
	Duration    time.Duration
	ShowVersion bool
	Headless    bool
	LogFile     string
	ConfigFile  string

	Device       string
	Path         string
	ReportID     uint8
	Seed         uint32
	PollInterval time.Duration
	ClockOffset  uint32
	Timing       motion.Timing
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		LogFile:      "debug.log",
		Device:       defaultDevice(),
		PollInterval: runner.DefaultPollInterval,
		Timing:       motion.DefaultTiming(),
	}
}

func defaultDevice() string {
	if platform.DefaultPath(platform.KindGadget) == "" {
		return platform.KindLog
	}
	return platform.KindGadget
}

// Validate checks values no layer can correct on its own.
func (c *Config) Validate() error {
	known := false
	for _, k := range platform.Kinds {
		if c.Device == k {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown device %q", c.Device)
	}
	if c.PollInterval <= 0 {
		return errors.New("poll interval must be positive")
	}
	if c.PollInterval > 100*time.Millisecond {
		return fmt.Errorf("poll interval %s is too coarse for millisecond deadlines", c.PollInterval)
	}
	if err := c.Timing.Validate(); err != nil {
		return fmt.Errorf("timing: %w", err)
	}
	return nil
}

// fileConfig mirrors the YAML file layout.
type fileConfig struct {
	Device      string        `yaml:"device"`
	Path        string        `yaml:"path"`
	ReportID    uint8         `yaml:"report_id"`
	Seed        uint32        `yaml:"seed"`
	Poll        string        `yaml:"poll"`
	ClockOffset uint32        `yaml:"clock_offset"`
	Timing      motion.Timing `yaml:"timing"`
}

// applyFile overlays the YAML file at path. Timing keys that are absent keep
// their current values.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	fc := fileConfig{Timing: c.Timing}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.Device != "" {
		c.Device = fc.Device
	}
	if fc.Path != "" {
		c.Path = fc.Path
	}
	if fc.ReportID != 0 {
		c.ReportID = fc.ReportID
	}
	if fc.Seed != 0 {
		c.Seed = fc.Seed
	}
	if fc.Poll != "" {
		d, err := time.ParseDuration(fc.Poll)
		if err != nil {
			return fmt.Errorf("parse config %s: poll: %w", path, err)
		}
		c.PollInterval = d
	}
	if fc.ClockOffset != 0 {
		c.ClockOffset = fc.ClockOffset
	}
	c.Timing = fc.Timing
	c.ConfigFile = path
	return nil
}

// envConfig lists the MOUSEMOVER_* variables. Zero values mean unset.
type envConfig struct {
	Config      string        `env:"CONFIG"`
	Device      string        `env:"DEVICE"`
	Path        string        `env:"PATH"`
	ReportID    uint8         `env:"REPORT_ID"`
	Seed        uint32        `env:"SEED"`
	Poll        time.Duration `env:"POLL"`
	ClockOffset uint32        `env:"CLOCK_OFFSET"`
	Headless    bool          `env:"HEADLESS"`
	LogFile     string        `env:"LOG"`
}

func parseEnv(environ map[string]string) (envConfig, error) {
	var ec envConfig
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&ec, opts); err != nil {
		return ec, fmt.Errorf("environment: %w", err)
	}
	return ec, nil
}

func (c *Config) applyEnv(ec envConfig) {
	if ec.Device != "" {
		c.Device = ec.Device
	}
	if ec.Path != "" {
		c.Path = ec.Path
	}
	if ec.ReportID != 0 {
		c.ReportID = ec.ReportID
	}
	if ec.Seed != 0 {
		c.Seed = ec.Seed
	}
	if ec.Poll != 0 {
		c.PollInterval = ec.Poll
	}
	if ec.ClockOffset != 0 {
		c.ClockOffset = ec.ClockOffset
	}
	if ec.Headless {
		c.Headless = true
	}
	if ec.LogFile != "" {
		c.LogFile = ec.LogFile
	}
}
