// Package config provides reading and writing of dagw configuration.
// Supports both global (~/.dagw/config.yaml) and local (.dagw/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata" // zone lookups work on hosts without a tz database

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.dagw/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is working-directory config in .dagw/config.yaml
	ScopeLocal
)

// Validation holds defaults for the validate command.
type Validation struct {
	CheckEncoding *bool `yaml:"check_encoding,omitempty"`
	EncodingLines *int  `yaml:"encoding_lines,omitempty"`
}

// Log holds logging options.
type Log struct {
	Level string `yaml:"level,omitempty"`
	Audit *bool  `yaml:"audit,omitempty"`
}

// Tweets holds options for the tweet expander.
type Tweets struct {
	License  string `yaml:"license,omitempty"`
	Timezone string `yaml:"timezone,omitempty"`
}

// Defaults applied when not configured.
const (
	DefaultEncodingLines = 51
	DefaultLogLevel      = "info"
	DefaultTimezone      = "Europe/Copenhagen"
	DefaultTweetsLicense = "The use of this section is described in the Twitter Terms of Service and Twitter Developer Agreement."
)

// Validation bounds for configuration values.
const (
	MinEncodingLines = 1
	MaxEncodingLines = 100000
)

// LogLevels lists the accepted log.level values.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Config contains configuration for dagw.
type Config struct {
	Validation Validation `yaml:"validate,omitempty"`
	Log        Log        `yaml:"log,omitempty"`
	Tweets     Tweets     `yaml:"tweets,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Validation.EncodingLines != nil {
		v := *c.Validation.EncodingLines
		if v < MinEncodingLines || v > MaxEncodingLines {
			return fmt.Errorf("%w: encoding_lines must be between %d and %d, got %d",
				ErrInvalidValue, MinEncodingLines, MaxEncodingLines, v)
		}
	}
	if c.Log.Level != "" {
		if _, err := ParseLevel(c.Log.Level); err != nil {
			return err
		}
	}
	if c.Tweets.Timezone != "" {
		if _, err := time.LoadLocation(c.Tweets.Timezone); err != nil {
			return fmt.Errorf("%w: timezone %q: %w", ErrInvalidValue, c.Tweets.Timezone, err)
		}
	}
	return nil
}

// CheckEncoding returns whether validate runs the encoding check by default
// (defaults to false).
func (c *Config) CheckEncoding() bool {
	if c.Validation.CheckEncoding == nil {
		return false
	}
	return *c.Validation.CheckEncoding
}

// EncodingLines returns how many lines per file the encoding check samples
// (defaults to 51).
func (c *Config) EncodingLines() int {
	if c.Validation.EncodingLines == nil {
		return DefaultEncodingLines
	}
	return *c.Validation.EncodingLines
}

// LogLevel returns the configured log level name (defaults to "info").
func (c *Config) LogLevel() string {
	if c.Log.Level == "" {
		return DefaultLogLevel
	}
	return c.Log.Level
}

// Audit returns whether runs are recorded in the audit log (defaults to true).
func (c *Config) Audit() bool {
	if c.Log.Audit == nil {
		return true
	}
	return *c.Log.Audit
}

// TweetsLicense returns the LICENSE text written into tweet sections.
func (c *Config) TweetsLicense() string {
	if c.Tweets.License == "" {
		return DefaultTweetsLicense
	}
	return c.Tweets.License
}

// Timezone returns the zone used for date_built of tweet sections
// (defaults to Europe/Copenhagen).
func (c *Config) Timezone() string {
	if c.Tweets.Timezone == "" {
		return DefaultTimezone
	}
	return c.Tweets.Timezone
}

// Location loads the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone())
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: log level must be one of %s, got %q",
		ErrInvalidValue, strings.Join(LogLevels, ", "), s)
}

// LocalPath returns the path to the local config file.
func LocalPath() string {
	return filepath.Join(".dagw", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.dagw/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dagw", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}
	return loadPath(path, scope)
}

func loadPath(path string, scope Scope) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
