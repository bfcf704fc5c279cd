package environment

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/popmenu/internal/config"
	"github.com/jmylchreest/popmenu/internal/menu"
	"github.com/jmylchreest/popmenu/internal/popup"
	"github.com/jmylchreest/popmenu/internal/theme"
	"github.com/jmylchreest/popmenu/internal/view"
)

func TestNew_Defaults(t *testing.T) {
	env := New(nil, nil)
	assert.True(t, env.CascadingSubmenusEnabled())
	assert.NotNil(t, env.Config())
}

func TestUpdate(t *testing.T) {
	env := New(config.DefaultConfig(), nil)

	cfg := config.DefaultConfig()
	cfg.Popup.CascadingSubmenus = false
	env.Update(cfg)
	assert.False(t, env.CascadingSubmenusEnabled())
	assert.Same(t, cfg, env.Config())

	env.Update(nil)
	assert.Same(t, cfg, env.Config(), "nil update is ignored")
}

func TestSetCascadingSubmenus_DoesNotMutateSharedConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	env := New(cfg, nil)

	env.SetCascadingSubmenus(false)
	assert.False(t, env.CascadingSubmenusEnabled())
	assert.True(t, cfg.Popup.CascadingSubmenus)
}

func TestStyle_Border(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Styles["boxy"] = config.StyleConfig{Border: string(config.BorderDouble)}
	env := NewWithThemes(cfg, nil, nil)

	s := env.Style("boxy", "")
	out := s.Box.Render("x")
	assert.True(t, strings.HasPrefix(out, "╔"), out)

	s = env.Style("missing", "")
	out = s.Box.Render("x")
	assert.True(t, strings.HasPrefix(out, "╭"), out)
}

func TestStyle_Resolution(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "heavy.toml"), []byte("border = \"thick\"\n"), 0644))

	cfg := config.DefaultConfig()
	cfg.Styles["boxy"] = config.StyleConfig{Border: string(config.BorderDouble)}
	// A configured style shadows a theme of the same name.
	cfg.Styles["minimal"] = config.StyleConfig{Border: string(config.BorderDouble)}
	env := NewWithThemes(cfg, theme.NewLoader(dir, nil), nil)

	tests := []struct {
		name      string
		attr, res string
		corner    string
	}{
		{"configured attr", "boxy", "", "╔"},
		{"user theme", "heavy", "", "┏"},
		{"bundled theme", "catppuccin", "", "╭"},
		{"res overrides attr", "boxy", "heavy", "┏"},
		{"unknown res falls back to attr", "heavy", "nope", "┏"},
		{"config shadows theme", "minimal", "", "╔"},
		{"unknown", "nope", "", "╭"},
		{"empty", "", "", "╭"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := env.Style(tt.attr, tt.res).Box.Render("x")
			assert.True(t, strings.HasPrefix(out, tt.corner), out)
		})
	}
}

func TestStyle_BundledMinimalReversesSelection(t *testing.T) {
	env := NewWithThemes(config.DefaultConfig(), theme.NewLoader("", nil), nil)
	s := env.Style("minimal", "")
	assert.True(t, s.Selected.GetReverse())
	out := s.Box.Render("x")
	assert.True(t, strings.HasPrefix(out, "┌"), out)
}

func TestNew_HasThemes(t *testing.T) {
	assert.NotNil(t, New(nil, nil).Themes())
	assert.Nil(t, NewWithThemes(nil, nil, nil).Themes())
}

func TestBorderFor(t *testing.T) {
	for _, b := range config.ValidBorders() {
		assert.NotEmpty(t, borderFor(string(b)).Left, b)
	}
}

// A popup created before a reload keeps its strategy; the next one picks up
// the reloaded flag.
func TestEnvironment_DrivesHelperStrategy(t *testing.T) {
	env := New(config.DefaultConfig(), nil)
	h := popup.NewHelper(env, menu.Sample(), popup.Options{Anchor: view.NewBox("a", 0, 0, 4, 1)})

	require.NoError(t, h.Show())
	_, cascading := h.Popup().(*popup.CascadingPopup)
	assert.True(t, cascading)

	next := config.DefaultConfig()
	next.Popup.CascadingSubmenus = false
	env.Update(next)

	_, cascading = h.Popup().(*popup.CascadingPopup)
	assert.True(t, cascading, "live popup keeps its strategy")

	h.Dismiss()
	require.NoError(t, h.Show())
	_, standard := h.Popup().(*popup.StandardPopup)
	assert.True(t, standard)
}
