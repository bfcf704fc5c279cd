package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/popmenu/internal/menu"
)

func testEntries() []menu.Entry {
	return menu.Sample().Flatten(false)
}

func lines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimSpace(buf.String()), "\n")
}

func TestNewFormatter(t *testing.T) {
	for _, format := range ValidFormats() {
		f, err := NewFormatter(format, DefaultFormatterOptions())
		require.NoError(t, err, format)
		assert.NotNil(t, f)
	}

	f, err := NewFormatter("", DefaultFormatterOptions())
	require.NoError(t, err)
	assert.IsType(t, &DmenuFormatter{}, f)

	_, err = NewFormatter("xml", DefaultFormatterOptions())
	assert.Error(t, err)
}

func TestDmenuFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	formatter, err := NewDmenuFormatter(DefaultFormatterOptions())
	require.NoError(t, err)
	require.NoError(t, formatter.Format(&buf, testEntries()))

	out := lines(&buf)
	// Leaves only, disabled items dropped.
	assert.Len(t, out, 7)
	assert.Equal(t, "1 | + | New", out[0])
	assert.Equal(t, "4 |   | Open Recent > notes.md", out[2])
	assert.NotContains(t, buf.String(), "About")
}

func TestDmenuFormatter_NoIndex(t *testing.T) {
	var buf bytes.Buffer

	opts := DefaultFormatterOptions()
	opts.ShowIndex = false
	opts.ShowIcon = false
	formatter, err := NewDmenuFormatter(opts)
	require.NoError(t, err)
	require.NoError(t, formatter.Format(&buf, testEntries()))

	assert.Equal(t, "New", lines(&buf)[0])
}

func TestDmenuFormatter_CustomTemplate(t *testing.T) {
	var buf bytes.Buffer

	opts := DefaultFormatterOptions()
	opts.Template = "{{.ID}}: {{join .Path \"/\"}}{{if .Path}}/{{end}}{{truncate .Title 6}}"
	formatter, err := NewDmenuFormatter(opts)
	require.NoError(t, err)
	require.NoError(t, formatter.Format(&buf, testEntries()))

	out := lines(&buf)
	assert.Equal(t, "new: New", out[0])
	assert.Equal(t, "recent-1: Open Recent/not...", out[2])
}

func TestDmenuFormatter_InvalidTemplate(t *testing.T) {
	opts := DefaultFormatterOptions()
	opts.Template = "{{.ID"
	_, err := NewDmenuFormatter(opts)
	assert.Error(t, err)
}

func TestDmenuFormatter_IncludeDisabledAndSubmenus(t *testing.T) {
	var buf bytes.Buffer

	opts := DefaultFormatterOptions()
	opts.IncludeDisabled = true
	opts.LeavesOnly = false
	formatter, err := NewDmenuFormatter(opts)
	require.NoError(t, err)
	require.NoError(t, formatter.Format(&buf, testEntries()))

	assert.Len(t, lines(&buf), 10)
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	formatter := NewJSONFormatter(DefaultFormatterOptions())
	require.NoError(t, formatter.Format(&buf, testEntries()))

	var decoded []menu.Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 7)
	assert.Equal(t, "recent-1", decoded[2].ID)
	assert.Equal(t, []string{"Open Recent"}, decoded[2].Path)
}

func TestIDsFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewIDsFormatter().Format(&buf, testEntries()))
	assert.Equal(t,
		[]string{"new", "open", "recent-1", "recent-2", "share-link", "share-mail", "settings"},
		lines(&buf))
}

func TestPlainFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	opts := DefaultFormatterOptions()
	opts.ShowIndex = false
	formatter, err := NewPlainFormatter(opts)
	require.NoError(t, err)
	require.NoError(t, formatter.Format(&buf, testEntries()))

	out := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, "+ New  <new>", out[0])
	assert.Equal(t, "Open Recent ▸  <recent>", out[2])
	assert.Equal(t, "  notes.md  <recent-1>", out[3])
	assert.NotContains(t, buf.String(), "About")
}
