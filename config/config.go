// Package config loads the optional session-env configuration file.
//
// The file is YAML and every key is optional:
//
//	process: xfce4-session
//	match: substring
//	variables:
//	  - DISPLAY
//	  - WAYLAND_DISPLAY
//	  - DBUS_SESSION_BUS_ADDRESS
//	skipMissing: false
//
// It is read from $SESSION_ENV_CONFIG when set, otherwise from
// <user config dir>/session-env/config.yaml. A missing file yields Defaults.
// Command-line flags override whatever the file sets. A file that is group or
// world writable is refused.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jongio/session-env/env"
	"github.com/jongio/session-env/procutil"
	"github.com/jongio/session-env/security"
)

// EnvConfigPath overrides the configuration file location.
const EnvConfigPath = "SESSION_ENV_CONFIG"

// DefaultProcess is the session manager looked up when no target is given.
const DefaultProcess = "mate-session"

// Config is the resolved configuration for one run.
type Config struct {
	Process     string   `yaml:"process"`
	Match       string   `yaml:"match"`
	Variables   []string `yaml:"variables"`
	SkipMissing bool     `yaml:"skipMissing"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Process:   DefaultProcess,
		Match:     procutil.MatchExact.String(),
		Variables: env.DefaultVariables(),
	}
}

// DefaultPath returns the configuration file path that Load uses when path is empty.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "session-env", "config.yaml"), nil
}

// Load reads the configuration file at path, or at DefaultPath when path is
// empty. A missing file is not an error when path was not given explicitly.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			// No config dir (e.g. $HOME unset): run with defaults.
			return Defaults(), nil
		}
		path = p
		explicit = os.Getenv(EnvConfigPath) != ""
	}

	data, err := os.ReadFile(path) // #nosec G304 - path comes from the user
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return Defaults(), nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := security.ValidateFilePermissions(path); err != nil {
		return nil, fmt.Errorf("refusing config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML configuration over Defaults and validates it.
// Unknown keys are rejected so that typos do not pass silently.
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.Process == "" {
		return errors.New("process must not be empty")
	}
	if _, err := procutil.ParseMatchMode(c.Match); err != nil {
		return err
	}
	return env.ValidateNames(c.Variables)
}
