// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/popmenu/internal/gravity"
)

// Default configuration values.
const (
	DefaultGravity   = "start"
	DefaultStyleAttr = "popupMenuStyle"
)

// Config represents the popmenu configuration.
type Config struct {
	Popup     PopupConfig            `toml:"popup"`
	Menu      MenuConfig             `toml:"menu"`
	Clipboard ClipboardConfig        `toml:"clipboard"`
	Styles    map[string]StyleConfig `toml:"styles"`
}

// PopupConfig holds popup presentation settings.
type PopupConfig struct {
	CascadingSubmenus bool   `toml:"cascading_submenus"` // Read once per popup instance
	Gravity           string `toml:"gravity"`            // e.g. "start", "bottom|end"
	ForceShowIcon     bool   `toml:"force_show_icon"`
	OverflowOnly      bool   `toml:"overflow_only"`
	StyleAttr         string `toml:"style_attr"` // Key into [styles] or a theme name
	StyleRes          string `toml:"style_res"`  // Optional key overriding style_attr
}

// MenuConfig holds the menu source.
type MenuConfig struct {
	File string `toml:"file"` // YAML menu definition; empty = built-in sample
}

// ClipboardConfig holds clipboard settings.
type ClipboardConfig struct {
	Command string `toml:"command"` // e.g. "wl-copy"; empty = auto-detect
}

// StyleConfig describes the look of a popup. Colors are lipgloss color
// strings (ANSI index or hex); empty means terminal default.
type StyleConfig struct {
	Border             string `toml:"border"`
	BorderColor        string `toml:"border_color"`
	Foreground         string `toml:"foreground"`
	SelectedForeground string `toml:"selected_foreground"`
	SelectedBackground string `toml:"selected_background"`
	TitleForeground    string `toml:"title_foreground"`
	DisabledForeground string `toml:"disabled_foreground"`
}

// Border is a popup border name.
type Border string

const (
	BorderRounded Border = "rounded"
	BorderNormal  Border = "normal"
	BorderThick   Border = "thick"
	BorderDouble  Border = "double"
	BorderHidden  Border = "hidden"
)

// ValidBorders returns all valid border values.
func ValidBorders() []Border {
	return []Border{BorderRounded, BorderNormal, BorderThick, BorderDouble, BorderHidden}
}

// DefaultStyle returns the built-in popup style.
func DefaultStyle() StyleConfig {
	return StyleConfig{
		Border:             string(BorderRounded),
		BorderColor:        "63",
		Foreground:         "252",
		SelectedForeground: "229",
		SelectedBackground: "57",
		TitleForeground:    "205",
		DisabledForeground: "8",
	}
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Popup: PopupConfig{
			CascadingSubmenus: true,
			Gravity:           DefaultGravity,
			ForceShowIcon:     false,
			OverflowOnly:      false,
			StyleAttr:         DefaultStyleAttr,
		},
		Menu: MenuConfig{
			File: "", // Built-in sample
		},
		Styles: map[string]StyleConfig{
			DefaultStyleAttr: DefaultStyle(),
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "popmenu", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	// Start with defaults
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := gravity.Parse(c.Popup.Gravity); err != nil {
		return fmt.Errorf("popup.gravity: %w", err)
	}

	if c.Popup.StyleAttr == "" {
		return errors.New("popup.style_attr cannot be empty")
	}

	for name, s := range c.Styles {
		if s.Border != "" && !slices.Contains(ValidBorders(), Border(s.Border)) {
			return fmt.Errorf("styles.%s: invalid border %q, must be one of: %v", name, s.Border, ValidBorders())
		}
	}

	return nil
}

// GravityValue returns the parsed popup gravity, falling back to start
// when the configured value does not parse.
func (c *Config) GravityValue() gravity.Gravity {
	g, err := gravity.Parse(c.Popup.Gravity)
	if err != nil {
		return gravity.Start
	}
	return g
}

// LookupStyle returns the configured style with the given name.
func (c *Config) LookupStyle(name string) (StyleConfig, bool) {
	if name == "" {
		return StyleConfig{}, false
	}
	s, ok := c.Styles[name]
	return s, ok
}
