package theme

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/popmenu/internal/config"
)

func TestParse(t *testing.T) {
	th, err := Parse("ocean", []byte("inherit = \"default\"\nborder = \"double\"\nborder_color = \"#0088ff\"\n"))
	require.NoError(t, err)

	assert.Equal(t, "ocean", th.Name)
	assert.Equal(t, "default", th.Inherit)
	assert.Equal(t, "double", th.Style.Border)
	assert.Equal(t, "#0088ff", th.Style.BorderColor)
	assert.Empty(t, th.Style.Foreground)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse("bad", []byte("border = "))
	assert.Error(t, err)

	_, err = Parse("bad", []byte("border = \"wavy\"\n"))
	assert.ErrorContains(t, err, "invalid border")
}

func TestMerge(t *testing.T) {
	base := config.DefaultStyle()
	got := Merge(base, config.StyleConfig{Border: "thick", TitleForeground: "1"})

	assert.Equal(t, "thick", got.Border)
	assert.Equal(t, "1", got.TitleForeground)
	assert.Equal(t, base.Foreground, got.Foreground)
	assert.Equal(t, base.SelectedBackground, got.SelectedBackground)
}

func writeTheme(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name+".toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestTheme_Reload(t *testing.T) {
	dir := t.TempDir()
	path := writeTheme(t, dir, "mine", "border = \"normal\"\n")

	th, err := NewTheme("mine", path)
	require.NoError(t, err)

	changed, err := th.Reload()
	require.NoError(t, err)
	assert.False(t, changed, "unchanged file should not reload")

	writeTheme(t, dir, "mine", "border = \"thick\"\n")
	future := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, future, future))

	changed, err = th.Reload()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "thick", th.Style.Border)
}

func TestTheme_ReloadBundled(t *testing.T) {
	th, err := NewBundledTheme("minimal")
	require.NoError(t, err)

	changed, err := th.Reload()
	require.NoError(t, err)
	assert.False(t, changed)
}
