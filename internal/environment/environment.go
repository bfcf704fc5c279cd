// Package environment provides the popup.Context used by popmenu. It holds
// the cascading-submenus capability flag and resolves style names against
// the configuration and the theme loader. The configuration can be swapped
// while popups are live.
package environment

import (
	"log/slog"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/popmenu/internal/config"
	"github.com/jmylchreest/popmenu/internal/popup"
	"github.com/jmylchreest/popmenu/internal/theme"
)

// Environment implements popup.Context. Update may be called from any
// goroutine; popups read the new values the next time they are created.
type Environment struct {
	mu     sync.RWMutex
	cfg    *config.Config
	themes *theme.Loader
	logger *slog.Logger
}

var _ popup.Context = (*Environment)(nil)

// New creates an environment for cfg with themes from the user's themes
// directory. A nil cfg uses the defaults.
func New(cfg *config.Config, logger *slog.Logger) *Environment {
	if logger == nil {
		logger = slog.Default()
	}
	return NewWithThemes(cfg, theme.NewDefaultLoader(logger), logger)
}

// NewWithThemes creates an environment resolving theme names with themes.
// A nil themes only resolves styles from the configuration.
func NewWithThemes(cfg *config.Config, themes *theme.Loader, logger *slog.Logger) *Environment {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Environment{cfg: cfg, themes: themes, logger: logger}
}

// Themes returns the theme loader, which may be nil.
func (e *Environment) Themes() *theme.Loader {
	return e.themes
}

// Config returns the current configuration.
func (e *Environment) Config() *config.Config {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cfg
}

// Update replaces the configuration.
func (e *Environment) Update(cfg *config.Config) {
	if cfg == nil {
		return
	}
	e.mu.Lock()
	old := e.cfg.Popup.CascadingSubmenus
	e.cfg = cfg
	e.mu.Unlock()

	e.logger.Debug("environment updated",
		"old_cascading", old,
		"new_cascading", cfg.Popup.CascadingSubmenus,
	)
}

// SetCascadingSubmenus flips the capability flag, leaving the rest of the
// configuration untouched.
func (e *Environment) SetCascadingSubmenus(enabled bool) {
	e.mu.Lock()
	next := *e.cfg
	next.Popup.CascadingSubmenus = enabled
	e.cfg = &next
	e.mu.Unlock()
}

// CascadingSubmenusEnabled implements popup.Context.
func (e *Environment) CascadingSubmenusEnabled() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cfg.Popup.CascadingSubmenus
}

// Style implements popup.Context. res is tried before attr; each name is
// looked up in the configured [styles] and then as a theme. Unknown names
// fall back to the default style.
func (e *Environment) Style(attr, res string) popup.Style {
	cfg := e.Config()
	for _, name := range []string{res, attr} {
		if name == "" {
			continue
		}
		if sc, ok := cfg.LookupStyle(name); ok {
			return BuildStyle(sc)
		}
		if e.themes != nil {
			if sc, ok := e.themes.Lookup(name); ok {
				return BuildStyle(sc)
			}
		}
	}
	return BuildStyle(config.DefaultStyle())
}

// BuildStyle converts a configured style into lipgloss styles.
func BuildStyle(sc config.StyleConfig) popup.Style {
	s := popup.DefaultStyle()

	s.Box = lipgloss.NewStyle().Border(borderFor(sc.Border))
	if sc.BorderColor != "" {
		s.Box = s.Box.BorderForeground(lipgloss.Color(sc.BorderColor))
	}

	s.Item = lipgloss.NewStyle().Padding(0, 1)
	if sc.Foreground != "" {
		s.Item = s.Item.Foreground(lipgloss.Color(sc.Foreground))
	}

	s.Selected = lipgloss.NewStyle().Padding(0, 1)
	if sc.SelectedForeground != "" {
		s.Selected = s.Selected.Foreground(lipgloss.Color(sc.SelectedForeground))
	}
	if sc.SelectedBackground != "" {
		s.Selected = s.Selected.Background(lipgloss.Color(sc.SelectedBackground))
	} else {
		s.Selected = s.Selected.Reverse(true)
	}

	s.Title = lipgloss.NewStyle().Bold(true)
	if sc.TitleForeground != "" {
		s.Title = s.Title.Foreground(lipgloss.Color(sc.TitleForeground))
	}

	s.Disabled = lipgloss.NewStyle().Padding(0, 1).Faint(true)
	if sc.DisabledForeground != "" {
		s.Disabled = s.Disabled.Foreground(lipgloss.Color(sc.DisabledForeground))
	}

	return s
}

func borderFor(name string) lipgloss.Border {
	switch config.Border(name) {
	case config.BorderNormal:
		return lipgloss.NormalBorder()
	case config.BorderThick:
		return lipgloss.ThickBorder()
	case config.BorderDouble:
		return lipgloss.DoubleBorder()
	case config.BorderHidden:
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}
