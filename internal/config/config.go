// Package config loads shoplist settings from a YAML or TOML file.
//
// Values of the form ${VAR} are replaced with the environment variable
// before parsing. Files ending in .toml are decoded as TOML, anything else
// as YAML. Every field has a default, so no file is required.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvConfig names the environment variable pointing at a config file.
const EnvConfig = "SHOPLIST_CONFIG"

// Config is the complete shoplist configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database" toml:"database"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
	UI       UIConfig       `yaml:"ui" toml:"ui"`
}

// DatabaseConfig selects the store driver and its location.
type DatabaseConfig struct {
	Driver string `yaml:"driver" toml:"driver"` // sqlite | sqlite3 | json | memory
	Path   string `yaml:"path" toml:"path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"` // text | json
	// File receives logs while the TUI owns the terminal.
	File string `yaml:"file" toml:"file"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme   string `yaml:"theme" toml:"theme"` // classic | neon | mono
	NoColor bool   `yaml:"no_color" toml:"no_color"`
}

var (
	drivers = []string{"sqlite", "sqlite3", "json", "memory"}
	levels  = []string{"debug", "info", "warn", "error"}
	formats = []string{"text", "json"}
	themes  = []string{"classic", "neon", "mono"}
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	data := DataDir()
	return &Config{
		Database: DatabaseConfig{
			Driver: "sqlite",
			Path:   filepath.Join(data, "shopping.db"),
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
			File:   filepath.Join(data, "shoplist.log"),
		},
		UI: UIConfig{Theme: "classic"},
	}
}

// Load reads the file at path on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	expanded := expandEnvVars(string(data))
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(expanded, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Resolve loads the explicit path when given, otherwise $SHOPLIST_CONFIG,
// otherwise the default location. Only a missing default file falls back
// to Default; a missing explicit file is an error.
func Resolve(explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return Load(env)
	}
	cfg, err := Load(DefaultPath())
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// DefaultPath returns $XDG_CONFIG_HOME/shoplist/config.yaml, falling back to
// ~/.config.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "config.yaml"
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "shoplist", "config.yaml")
}

// DataDir returns $XDG_DATA_HOME/shoplist, falling back to ~/.local/share.
func DataDir() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "data"
		}
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, "shoplist")
}

// Validate checks enumerated fields and required values.
func (c *Config) Validate() error {
	if !oneOf(c.Database.Driver, drivers) {
		return fmt.Errorf("database.driver must be one of %s, got %q", strings.Join(drivers, ", "), c.Database.Driver)
	}
	if c.Database.Driver != "memory" && c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if !oneOf(c.Logging.Level, levels) {
		return fmt.Errorf("logging.level must be one of %s, got %q", strings.Join(levels, ", "), c.Logging.Level)
	}
	if !oneOf(c.Logging.Format, formats) {
		return fmt.Errorf("logging.format must be one of %s, got %q", strings.Join(formats, ", "), c.Logging.Format)
	}
	if !oneOf(c.UI.Theme, themes) {
		return fmt.Errorf("ui.theme must be one of %s, got %q", strings.Join(themes, ", "), c.UI.Theme)
	}
	return nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} with environment variable values.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		return os.Getenv(name)
	})
}
