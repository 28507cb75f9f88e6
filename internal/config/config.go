// Package config loads qprefix settings. QPREFIX_* environment variables,
// optionally read from a .env file, override the YAML file, which overrides
// the defaults.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix for every setting.
const envPrefix = "QPREFIX"

// DefaultFile is the config file looked up in the working directory when no
// path is given.
const DefaultFile = ".qprefix.yaml"

// Backends lists the accepted backend names, the default first.
var Backends = []string{"regex", "parallel", "ast"}

const (
	// MaxRegisterWidth is the largest register the simulator accepts.
	MaxRegisterWidth = 12

	// DefaultShots is the default sample count per simulation.
	DefaultShots = 1024
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all settings.
type Config struct {
	Backend       string `mapstructure:"backend" yaml:"backend"`
	Language      string `mapstructure:"language" yaml:"language"` // detection hint
	Workers       int    `mapstructure:"workers" yaml:"workers"`   // 0 means GOMAXPROCS
	MaxLineLength int    `mapstructure:"max_line_length" yaml:"max_line_length"`
	MaxFileSize   int64  `mapstructure:"max_file_size" yaml:"max_file_size"`

	Circuit    CircuitConfig    `mapstructure:"circuit" yaml:"circuit"`
	Simulation SimulationConfig `mapstructure:"simulation" yaml:"simulation"`
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
}

// CircuitConfig configures the circuit builder.
type CircuitConfig struct {
	RegisterWidth int `mapstructure:"register_width" yaml:"register_width"`
}

// SimulationConfig configures the simulator.
type SimulationConfig struct {
	Shots int    `mapstructure:"shots" yaml:"shots"`
	Seed  uint64 `mapstructure:"seed" yaml:"seed"` // 0 seeds from the document fingerprint
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Pretty bool   `mapstructure:"pretty" yaml:"pretty"`
}

var defaults = map[string]any{
	"backend":                Backends[0],
	"language":               "",
	"workers":                0,
	"max_line_length":        4096,
	"max_file_size":          1 << 20,
	"circuit.register_width": 8,
	"simulation.shots":       DefaultShots,
	"simulation.seed":        0,
	"log.level":              "info",
	"log.pretty":             false,
}

// newViper builds a viper instance reading YAML, with QPREFIX_ env binding
// where nested keys like "simulation.shots" map to QPREFIX_SIMULATION_SHOTS.
func newViper() *viper.Viper {
	v := withDefaults()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func withDefaults() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	return v
}

// Load reads configPath, or DefaultFile when it exists and configPath is
// empty, merges environment overrides and validates the result.
func Load(configPath string) (*Config, error) {
	// A missing .env is not an error.
	_ = godotenv.Load()

	v := newViper()
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %q: %w", configPath, err)
		}
	} else {
		v.SetConfigName(strings.TrimSuffix(DefaultFile, ".yaml"))
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading %s: %w", DefaultFile, err)
			}
		}
	}
	return unmarshal(v)
}

// Default returns the configuration with no file and no environment.
func Default() *Config {
	cfg, err := unmarshal(withDefaults())
	if err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return cfg
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting and reports the first bad one.
func (c *Config) Validate() error {
	if !slices.Contains(Backends, c.Backend) {
		return fmt.Errorf("%w: backend %q (want one of %s)", ErrInvalid, c.Backend, strings.Join(Backends, ", "))
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalid, c.Workers)
	}
	if c.MaxLineLength < 0 {
		return fmt.Errorf("%w: max_line_length must not be negative, got %d", ErrInvalid, c.MaxLineLength)
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("%w: max_file_size must be positive, got %d", ErrInvalid, c.MaxFileSize)
	}
	if w := c.Circuit.RegisterWidth; w < 2 || w > MaxRegisterWidth {
		return fmt.Errorf("%w: circuit.register_width must be in [2, %d], got %d", ErrInvalid, MaxRegisterWidth, w)
	}
	if c.Simulation.Shots < 1 {
		return fmt.Errorf("%w: simulation.shots must be positive, got %d", ErrInvalid, c.Simulation.Shots)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q (want debug, info, warn or error)", ErrInvalid, c.Log.Level)
	}
	return nil
}
