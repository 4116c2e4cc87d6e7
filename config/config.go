// Package config provides configuration management for wgctl.
// It handles loading, saving, and defaulting the tool settings.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yllada/wgctl/common"
)

// Config represents the application configuration.
// Settings are read from a YAML file; every field has a working default.
type Config struct {
	// ConfigDir is the canonical directory the tunnel tool reads configs from.
	ConfigDir string `yaml:"config_dir"`
	// PrimaryInterface is the interface name used for primary installs.
	PrimaryInterface string `yaml:"primary_interface"`
	// FlagToken is the literal a dialog emits for a checked box.
	FlagToken string `yaml:"flag_token"`
	// MaxConfigSize bounds freshly selected configuration files, in bytes.
	MaxConfigSize int64 `yaml:"max_config_size"`
	// StatusCommand is the argv used to query tunnel status.
	StatusCommand []string `yaml:"status_command"`
	// ControlCommand is the argv prefix for "<control...> up|down <interface>",
	// e.g. [pkexec, wg-quick] to run only the tunnel tool as root.
	ControlCommand []string `yaml:"control_command"`
	// DialogTitle is shown on every dialog.
	DialogTitle string `yaml:"dialog_title"`
	// Frontend selects the prompt layer: "auto", "tui" or "yad".
	Frontend string `yaml:"frontend"`
	// Notifications enables desktop notifications for connection events.
	Notifications bool `yaml:"notifications"`
	// HistoryPath is the sqlite history file; empty means the data dir, "off" disables.
	HistoryPath string `yaml:"history_path"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ConfigDir:        common.DefaultConfigDir,
		PrimaryInterface: common.DefaultPrimaryInterface,
		FlagToken:        common.DefaultFlagToken,
		MaxConfigSize:    common.DefaultMaxConfigSize,
		StatusCommand:    []string{common.DefaultStatusCommand},
		ControlCommand:   []string{common.DefaultControlCommand},
		DialogTitle:      common.DefaultDialogTitle,
		Frontend:         common.FrontendAuto,
		Notifications:    true,
		HistoryPath:      "",
		LogLevel:         "info",
	}
}

// DefaultPath returns ~/.config/wgctl/config.yaml.
func DefaultPath() (string, error) {
	dir, err := common.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, common.ConfigFileName), nil
}

// Load loads the configuration from path.
// A missing file is not an error: the defaults are returned.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, common.MarkError(common.ErrConfigLoad, fmt.Errorf("error opening configuration: %w", err))
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true) // Strict validation: reject unknown fields

	config := DefaultConfig()
	if err := decoder.Decode(config); err != nil {
		// An empty file decodes to io.EOF; keep the defaults.
		if errors.Is(err, io.EOF) {
			return config, nil
		}
		return nil, common.MarkError(common.ErrConfigLoad, fmt.Errorf("error parsing configuration: %w", err))
	}

	config.validate()
	return config, nil
}

// validate replaces unusable values with their defaults.
func (c *Config) validate() {
	defaults := DefaultConfig()

	if c.ConfigDir == "" || !filepath.IsAbs(c.ConfigDir) {
		common.LogWarn("config_dir %q is not an absolute path, using %s", c.ConfigDir, defaults.ConfigDir)
		c.ConfigDir = defaults.ConfigDir
	}
	c.ConfigDir = filepath.Clean(c.ConfigDir)

	if c.PrimaryInterface == "" {
		c.PrimaryInterface = defaults.PrimaryInterface
	}
	if c.FlagToken == "" {
		c.FlagToken = defaults.FlagToken
	}
	if c.MaxConfigSize <= 0 {
		c.MaxConfigSize = defaults.MaxConfigSize
	}
	if len(c.StatusCommand) == 0 || c.StatusCommand[0] == "" {
		c.StatusCommand = defaults.StatusCommand
	}
	if len(c.ControlCommand) == 0 || c.ControlCommand[0] == "" {
		c.ControlCommand = defaults.ControlCommand
	}
	if c.DialogTitle == "" {
		c.DialogTitle = defaults.DialogTitle
	}

	switch c.Frontend {
	case common.FrontendAuto, common.FrontendTUI, common.FrontendYad:
	default:
		common.LogWarn("unknown frontend %q, using %s", c.Frontend, common.FrontendAuto)
		c.Frontend = common.FrontendAuto
	}

	if _, err := common.ParseLogLevel(c.LogLevel); err != nil {
		c.LogLevel = defaults.LogLevel
	}
}

// Save writes the configuration to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return common.MarkError(common.ErrConfigSave, fmt.Errorf("error creating config directory: %w", err))
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return common.MarkError(common.ErrConfigSave, fmt.Errorf("error saving configuration: %w", err))
	}

	return nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, common.MarkError(common.ErrConfigSave, fmt.Errorf("error serializing configuration: %w", err))
	}
	return data, nil
}

// ResolveHistoryPath returns the sqlite file to use, or "" when history is off.
func (c *Config) ResolveHistoryPath() (string, error) {
	switch c.HistoryPath {
	case common.HistoryDisabled:
		return "", nil
	case "":
		dir, err := common.GetDataDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, common.HistoryFileName), nil
	default:
		return c.HistoryPath, nil
	}
}
