package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/popmenu/internal/config"
	"github.com/jmylchreest/popmenu/internal/menu"
	"github.com/jmylchreest/popmenu/internal/theme"
)

func init() {
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseInts(t *testing.T) {
	v, err := parseInts("1, 2,-3", 3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, -3}, v)

	_, err = parseInts("1,2", 3)
	assert.Error(t, err)

	_, err = parseInts("1,x", 2)
	assert.Error(t, err)
}

func TestParseAnchor(t *testing.T) {
	b, err := parseAnchor("2,3,10,1")
	require.NoError(t, err)
	assert.Equal(t, 2, b.Bounds().Min.X)
	assert.Equal(t, 3, b.Bounds().Min.Y)
	assert.Equal(t, 10, b.Bounds().Dx())

	_, err = parseAnchor("0,0,0,1")
	assert.Error(t, err)
}

func renderLines(t *testing.T, rc *config.Config, at []int) []string {
	t.Helper()
	anchor, err := parseAnchor("2,0,10,1")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderFrame(&buf, rc, menu.Sample(), anchor, at, 60, 16))
	return strings.Split(strings.TrimSuffix(ansi.Strip(buf.String()), "\n"), "\n")
}

func TestRenderFrame_Show(t *testing.T) {
	lines := renderLines(t, config.DefaultConfig(), nil)

	require.Len(t, lines, 16)
	assert.Contains(t, lines[0], "anchor")
	// Box starts on the row below the anchor, aligned with its left edge.
	assert.Equal(t, 2, strings.Index(lines[1], "╭"))
	assert.Contains(t, strings.Join(lines, "\n"), "Open Recent")
	assert.NotContains(t, strings.Join(lines, "\n"), "Actions", "no title without an offset")
}

func TestRenderFrame_ShowAtShowsTitle(t *testing.T) {
	lines := renderLines(t, config.DefaultConfig(), []int{5, 2})

	assert.Equal(t, 7, strings.Index(lines[3], "╭"))
	assert.Contains(t, strings.Join(lines, "\n"), "Actions")
}

func TestRenderFrame_OverflowOnly(t *testing.T) {
	rc := config.DefaultConfig()
	rc.Popup.OverflowOnly = true
	out := strings.Join(renderLines(t, rc, nil), "\n")

	assert.Contains(t, out, "Settings")
	assert.NotContains(t, out, "Open Recent")
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "popmenu", "config.toml")

	require.NoError(t, writeDefaultConfig(path, false))
	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Popup, cfg.Popup)

	assert.Error(t, writeDefaultConfig(path, false), "refuses to overwrite")

	require.NoError(t, os.WriteFile(path, []byte("[popup]\ngravity = \"end\"\n"), 0644))
	require.NoError(t, writeDefaultConfig(path, true))
	cfg, err = config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "start", cfg.Popup.Gravity)
}

func TestListThemes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mine.toml"), []byte("border = \"thick\"\n"), 0644))

	var buf bytes.Buffer
	require.NoError(t, listThemes(&buf, theme.NewLoader(dir, nil)))

	out := buf.String()
	assert.Contains(t, out, "catppuccin  bundled")
	assert.Contains(t, out, "mine        "+filepath.Join(dir, "mine.toml"))
}
