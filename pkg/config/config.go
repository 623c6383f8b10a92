// Package config loads outpostd's static configuration: logging, telemetry,
// metrics server, and the size/timing parameters of the buffer pools,
// software bus, aggregators, and data processor the composition root wires
// together at startup.
//
// Configuration sources, highest precedence first:
//  1. Environment variables (OUTPOST_*)
//  2. Configuration file (YAML)
//  3. Default values
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/outpost-go/flightcore/internal/bytesize"
)

// Config is outpostd's top-level configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry"`
	Metrics   MetricsConfig   `mapstructure:"metrics" yaml:"metrics"`

	// ShutdownTimeout bounds how long the supervisor waits for the bus
	// worker and processor thread to exit once cancelled.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required,gt=0" yaml:"shutdown_timeout"`

	Pool      PoolConfig      `mapstructure:"pool" yaml:"pool"`
	Bus       BusConfig       `mapstructure:"bus" yaml:"bus"`
	Processor ProcessorConfig `mapstructure:"processor" yaml:"processor"`
	Heartbeat HeartbeatConfig `mapstructure:"heartbeat" yaml:"heartbeat"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`
	Output string `mapstructure:"output" validate:"required" yaml:"output"`
}

// TelemetryConfig controls OpenTelemetry tracing export.
type TelemetryConfig struct {
	Enabled    bool    `mapstructure:"enabled" yaml:"enabled"`
	Endpoint   string  `mapstructure:"endpoint" yaml:"endpoint"`
	Insecure   bool    `mapstructure:"insecure" yaml:"insecure"`
	SampleRate float64 `mapstructure:"sample_rate" validate:"gte=0,lte=1" yaml:"sample_rate"`
}

// MetricsConfig controls the Prometheus metrics HTTP endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Address string `mapstructure:"address" validate:"required" yaml:"address"`
	Path    string `mapstructure:"path" validate:"required" yaml:"path"`
}

// PoolConfig sizes the input and output buffer pools shared by the
// aggregator and processor stages.
type PoolConfig struct {
	// FrameSize accepts human-readable byte sizes ("256B", "1Ki") as well as
	// plain integers.
	FrameSize    bytesize.ByteSize `mapstructure:"frame_size" validate:"required,gt=0" yaml:"frame_size"`
	InputFrames  int               `mapstructure:"input_frames" validate:"required,gt=0" yaml:"input_frames"`
	OutputFrames int               `mapstructure:"output_frames" validate:"required,gt=0" yaml:"output_frames"`
}

// BusConfig configures the software bus's admission policy and worker loop.
type BusConfig struct {
	AdmissionMin  uint32        `mapstructure:"admission_min" yaml:"admission_min"`
	AdmissionMax  uint32        `mapstructure:"admission_max" yaml:"admission_max"`
	QueueCapacity int           `mapstructure:"queue_capacity" validate:"required,gt=0" yaml:"queue_capacity"`
	IdleTimeout   time.Duration `mapstructure:"idle_timeout" validate:"required,gt=0" yaml:"idle_timeout"`
}

// ProcessorConfig configures the data processor thread's retry/backoff and
// output queue sizing.
type ProcessorConfig struct {
	RetryCount     int           `mapstructure:"retry_count" validate:"gte=0" yaml:"retry_count"`
	RetryDelay     time.Duration `mapstructure:"retry_delay" validate:"gte=0" yaml:"retry_delay"`
	IdleWait       time.Duration `mapstructure:"idle_wait" validate:"required,gt=0" yaml:"idle_wait"`
	OutputCapacity int           `mapstructure:"output_capacity" validate:"required,gt=0" yaml:"output_capacity"`
}

// HeartbeatConfig sets the liveness interval shared by the bus worker and
// processor thread.
type HeartbeatConfig struct {
	Interval time.Duration `mapstructure:"interval" validate:"required,gt=0" yaml:"interval"`
}

// Load loads configuration from file, environment, and defaults, applying
// defaults for anything left unset and validating the result.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	found, err := readConfigFile(v)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if !found {
		return cfg, Validate(cfg)
	}

	if err := v.Unmarshal(cfg, viper.DecodeHook(configDecodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate runs struct-tag validation over cfg.
func Validate(cfg *Config) error {
	return validator.New().Struct(cfg)
}

// SaveConfig writes cfg to path in YAML, using yaml.Marshal directly so the
// struct's yaml tags (rather than viper's own key casing) govern the output.
// Used by `outpostd init` to seed a starting file an operator can then
// hand-edit.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// setupViper wires environment variable precedence (OUTPOST_* with "_" in
// place of ".") and config-file discovery.
func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("OUTPOST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}
	v.AddConfigPath(defaultConfigDir())
	v.SetConfigName("config")
	v.SetConfigType("yaml")
}

// readConfigFile reads the configuration file if present. A missing file is
// not an error: the caller falls back to defaults.
func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}
	return true, nil
}

// configDecodeHooks composes the custom decode hooks this config needs:
// human-readable byte sizes and durations.
func configDecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		byteSizeDecodeHook(),
		durationDecodeHook(),
	)
}

// byteSizeDecodeHook converts strings and integers to bytesize.ByteSize so
// config files can use human-readable sizes like "256B", "1Ki", "4MiB".
func byteSizeDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(bytesize.ByteSize(0)) {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return bytesize.ParseByteSize(v)
		case int:
			return bytesize.ByteSize(v), nil
		case int64:
			return bytesize.ByteSize(v), nil
		case uint64:
			return bytesize.ByteSize(v), nil
		case float64:
			return bytesize.ByteSize(v), nil
		default:
			return data, nil
		}
	}
}

// durationDecodeHook lets config files and environment variables express
// durations as human-readable strings ("30s", "5m") as well as raw
// nanosecond integers.
func durationDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return time.ParseDuration(v)
		case int:
			return time.Duration(v), nil
		case int64:
			return time.Duration(v), nil
		case float64:
			return time.Duration(v), nil
		default:
			return data, nil
		}
	}
}

// DefaultConfigPath returns the default location `outpostd init` and
// `outpostd start` fall back to when --config is not given.
func DefaultConfigPath() string {
	return filepath.Join(defaultConfigDir(), "config.yaml")
}

// defaultConfigDir returns $XDG_CONFIG_HOME/outpostd, falling back to
// ~/.config/outpostd, or "." if the home directory cannot be determined.
func defaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "outpostd")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "outpostd")
}
