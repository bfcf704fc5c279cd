package theme

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jmylchreest/popmenu/internal/config"
)

// Loader resolves theme names to styles and caches the parsed files.
type Loader struct {
	mu        sync.Mutex
	logger    *slog.Logger
	themesDir string
	themes    map[string]*Theme
	missing   map[string]bool
	failed    map[string]time.Time // user files that failed to parse, by mtime
}

// NewLoader creates a loader reading user themes from themesDir. An empty
// themesDir only serves bundled themes.
func NewLoader(themesDir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:    logger,
		themesDir: themesDir,
		themes:    make(map[string]*Theme),
		missing:   make(map[string]bool),
		failed:    make(map[string]time.Time),
	}
}

// NewDefaultLoader creates a loader for the user's themes directory.
func NewDefaultLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	dir, err := ThemesDir()
	if err != nil {
		logger.Warn("failed to get themes directory", "error", err)
		dir = ""
	}
	return NewLoader(dir, logger)
}

// ThemesDir returns the path to the user's themes directory.
func ThemesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "popmenu", "themes"), nil
}

// Dir returns the user themes directory.
func (l *Loader) Dir() string {
	return l.themesDir
}

// Lookup resolves a theme by name, following inherit chains.
// Resolution order for each name:
//  1. User themes directory (~/.config/popmenu/themes/<name>.toml)
//  2. Embedded/bundled themes
func (l *Loader) Lookup(name string) (config.StyleConfig, bool) {
	if name == "" {
		return config.StyleConfig{}, false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.resolve(name, make(map[string]bool))
}

func (l *Loader) resolve(name string, seen map[string]bool) (config.StyleConfig, bool) {
	t, ok := l.load(name)
	if !ok {
		return config.StyleConfig{}, false
	}
	seen[name] = true

	if t.Inherit == "" {
		return t.Style, true
	}
	if seen[t.Inherit] {
		l.logger.Warn("circular theme inherit ignored", "theme", name, "inherit", t.Inherit)
		return t.Style, true
	}
	base, ok := l.resolve(t.Inherit, seen)
	if !ok {
		l.logger.Warn("inherited theme not found", "theme", name, "inherit", t.Inherit)
		return t.Style, true
	}
	return Merge(base, t.Style), true
}

// load returns the cached theme or reads it. Must be called with mu held.
func (l *Loader) load(name string) (*Theme, bool) {
	if t, ok := l.themes[name]; ok {
		return t, true
	}
	if l.missing[name] {
		return nil, false
	}

	if path := l.userPath(name); path != "" {
		if info, err := os.Stat(path); err == nil && !l.brokenAt(name, info.ModTime()) {
			t, err := NewTheme(name, path)
			if err == nil {
				delete(l.failed, name)
				l.themes[name] = t
				l.logger.Debug("loaded user theme", "name", name, "path", path)
				return t, true
			}
			l.failed[name] = info.ModTime()
			l.logger.Warn("failed to load user theme, trying bundled", "theme", name, "error", err)
		}
	}

	t, err := NewBundledTheme(name)
	if err != nil {
		l.missing[name] = true
		return nil, false
	}
	l.themes[name] = t
	l.logger.Debug("loaded bundled theme", "name", name)
	return t, true
}

// brokenAt reports whether the user file for name already failed to parse
// at this modification time. Must be called with mu held.
func (l *Loader) brokenAt(name string, mod time.Time) bool {
	at, ok := l.failed[name]
	return ok && at.Equal(mod)
}

func (l *Loader) userPath(name string) string {
	if l.themesDir == "" || strings.ContainsAny(name, `/\`) {
		return ""
	}
	return filepath.Join(l.themesDir, name+".toml")
}

// Reload checks cached themes against the filesystem and returns the names
// that changed. A user file appearing over a bundled theme, or disappearing,
// counts as a change. A broken user file only counts again once it is
// modified.
func (l *Loader) Reload() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var changed []string
	for name, t := range l.themes {
		if t.Bundled {
			if path := l.userPath(name); path != "" {
				if info, err := os.Stat(path); err == nil && !l.brokenAt(name, info.ModTime()) {
					delete(l.themes, name)
					changed = append(changed, name)
				}
			}
			continue
		}

		ok, err := t.Reload()
		switch {
		case errors.Is(err, os.ErrNotExist):
			delete(l.themes, name)
			changed = append(changed, name)
		case err != nil:
			l.logger.Warn("failed to reload theme", "path", t.Path, "error", err)
		case ok:
			l.logger.Info("theme file changed, reloading", "path", t.Path)
			changed = append(changed, name)
		}
	}
	clear(l.missing)

	slices.Sort(changed)
	return changed
}

// Source describes where a theme name resolves from: the user file path,
// "bundled", or "" when it does not exist.
func (l *Loader) Source(name string) string {
	if path := l.userPath(name); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	if IsEmbeddedTheme(name) {
		return "bundled"
	}
	return ""
}

// List returns the names of all bundled and user themes, sorted.
func (l *Loader) List() []string {
	names := ListEmbeddedThemes()
	if l.themesDir != "" {
		entries, err := os.ReadDir(l.themesDir)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			l.logger.Warn("failed to read themes directory", "path", l.themesDir, "error", err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if ext := filepath.Ext(entry.Name()); ext == ".toml" {
				names = append(names, strings.TrimSuffix(entry.Name(), ext))
			}
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}
