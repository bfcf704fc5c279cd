package theme

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/popmenu/internal/config"
)

// Theme is a named popup style loaded from a TOML file.
type Theme struct {
	Name    string             // Theme name (without .toml extension)
	Path    string             // Full path to the file (empty for bundled)
	Inherit string             // Theme whose fields this one extends
	Style   config.StyleConfig // Fields set by this file only
	ModTime time.Time          // Last modification time
	Bundled bool
}

// themeFile is the on-disk layout: style fields at the top level plus an
// optional inherit key.
type themeFile struct {
	Inherit string `toml:"inherit"`
}

// Parse decodes a theme file.
func Parse(name string, data []byte) (*Theme, error) {
	var tf themeFile
	if err := toml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("failed to parse theme %s: %w", name, err)
	}
	var style config.StyleConfig
	if err := toml.Unmarshal(data, &style); err != nil {
		return nil, fmt.Errorf("failed to parse theme %s: %w", name, err)
	}
	if style.Border != "" && !slices.Contains(config.ValidBorders(), config.Border(style.Border)) {
		return nil, fmt.Errorf("theme %s: invalid border %q, must be one of: %v", name, style.Border, config.ValidBorders())
	}
	return &Theme{Name: name, Inherit: tf.Inherit, Style: style}, nil
}

// NewTheme loads a theme from a file.
func NewTheme(name, path string) (*Theme, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	t, err := Parse(name, data)
	if err != nil {
		return nil, err
	}
	t.Path = path
	t.ModTime = info.ModTime()
	return t, nil
}

// NewBundledTheme loads an embedded theme.
func NewBundledTheme(name string) (*Theme, error) {
	data, found := GetEmbeddedTheme(name)
	if !found {
		return nil, fmt.Errorf("theme %s: %w", name, os.ErrNotExist)
	}
	t, err := Parse(name, data)
	if err != nil {
		return nil, err
	}
	t.Bundled = true
	return t, nil
}

// Reload re-reads the file if it changed since it was loaded.
// Returns true if the theme was reloaded.
func (t *Theme) Reload() (bool, error) {
	if t.Bundled {
		return false, nil
	}

	info, err := os.Stat(t.Path)
	if err != nil {
		return false, err
	}
	if !info.ModTime().After(t.ModTime) {
		return false, nil
	}

	next, err := NewTheme(t.Name, t.Path)
	if err != nil {
		return false, err
	}
	t.Inherit = next.Inherit
	t.Style = next.Style
	t.ModTime = next.ModTime
	return true, nil
}

// Merge returns base with every field set in over replacing it.
func Merge(base, over config.StyleConfig) config.StyleConfig {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&base.Border, over.Border)
	set(&base.BorderColor, over.BorderColor)
	set(&base.Foreground, over.Foreground)
	set(&base.SelectedForeground, over.SelectedForeground)
	set(&base.SelectedBackground, over.SelectedBackground)
	set(&base.TitleForeground, over.TitleForeground)
	set(&base.DisabledForeground, over.DisabledForeground)
	return base
}
