// Package config loads and watches the TOML configuration file.
//
// Configuration is deliberately small: the token timeout, how to reach
// the primary engine, logging, and hook scripts. A missing file yields
// the defaults; a malformed file is an error.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration wraps time.Duration so TOML values can be written as "300ms".
type Duration time.Duration

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText renders the duration in Go syntax.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the full application configuration.
type Config struct {
	// TokenTimeout is how long one side keeps write authority after its
	// last edit before the token is handed back via a full sync.
	TokenTimeout Duration `toml:"token_timeout"`

	Nvim  NvimConfig  `toml:"nvim"`
	Log   LogConfig   `toml:"log"`
	Hooks HooksConfig `toml:"hooks"`
}

// NvimConfig configures the primary engine bridge.
type NvimConfig struct {
	// Command is the argv used to start the bridge process.
	Command []string `toml:"command"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	Level string `toml:"level"`
}

// HooksConfig configures lua lifecycle hooks.
type HooksConfig struct {
	// Scripts are lua files loaded at startup.
	Scripts []string `toml:"scripts"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TokenTimeout: Duration(300 * time.Millisecond),
		Nvim: NvimConfig{
			Command: []string{"nvim", "--headless", "--embed"},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the configuration at path, layered over the defaults.
// A missing file is not an error; the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return Default(), fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.TokenTimeout <= 0 {
		return fmt.Errorf("token_timeout must be positive, got %s", c.TokenTimeout.Std())
	}
	if len(c.Nvim.Command) == 0 {
		return fmt.Errorf("nvim.command must not be empty")
	}
	return nil
}
