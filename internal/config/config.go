// Package config loads pgquery CLI configuration.
//
// Values are layered with koanf. From lowest to highest precedence:
// built-in defaults, the YAML config file, PGQUERY_ environment variables,
// and explicitly set command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Output formats.
const (
	OutputText  = "text"
	OutputJSON  = "json"
	OutputTable = "table"
)

// Defaults.
const (
	DefaultConfigFile  = "pgquery.yaml"
	DefaultOutput      = OutputText
	DefaultConcurrency = 4
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "text"

	envPrefix = "PGQUERY_"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the resolved CLI configuration.
type Config struct {
	Output      string    `koanf:"output"`
	Dedupe      bool      `koanf:"dedupe"`
	Concurrency int       `koanf:"concurrency"`
	FailFast    bool      `koanf:"fail_fast"`
	Log         LogConfig `koanf:"log"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Output:      DefaultOutput,
		Concurrency: DefaultConcurrency,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load resolves configuration from cfgFile, the environment and flags.
// An empty cfgFile falls back to ./pgquery.yaml when it exists. Only flags
// that were explicitly set override the lower layers.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	def := Default()
	if err := k.Load(confmap.Provider(map[string]any{
		"output":      def.Output,
		"dedupe":      def.Dedupe,
		"concurrency": def.Concurrency,
		"fail_fast":   def.FailFast,
		"log.level":   def.Log.Level,
		"log.format":  def.Log.Format,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	path := findConfigFile(cfgFile)
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return flagKey(f.Name), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// findConfigFile returns explicit if set, otherwise the default file when present.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}
	return ""
}

// envKey maps PGQUERY_LOG_LEVEL to log.level and PGQUERY_FAIL_FAST to fail_fast.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if rest, ok := strings.CutPrefix(key, "log_"); ok {
		return "log." + rest
	}
	return key
}

// flagKey maps --log-level to log.level and --fail-fast to fail_fast.
func flagKey(name string) string {
	if rest, ok := strings.CutPrefix(name, "log-"); ok {
		return "log." + rest
	}
	return strings.ReplaceAll(name, "-", "_")
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Output {
	case OutputText, OutputJSON, OutputTable:
	default:
		return fmt.Errorf("%w: output %q must be one of text, json, table", ErrInvalid, c.Output)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be at least 1, got %d", ErrInvalid, c.Concurrency)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q must be text or json", ErrInvalid, c.Log.Format)
	}
	return nil
}

// SlogLevel parses Level.
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, c.Level)
	}
	return level, nil
}
