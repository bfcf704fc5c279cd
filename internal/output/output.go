// Package output provides output formatters for flattened menus.
package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/popmenu/internal/menu"
)

// Formatter formats menu entries for output.
type Formatter interface {
	// Format writes formatted entries to the writer.
	Format(w io.Writer, entries []menu.Entry) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatDmenu FormatType = "dmenu"
	FormatJSON  FormatType = "json"
	FormatPlain FormatType = "plain"
	FormatIDs   FormatType = "ids"
)

// ValidFormats returns all valid format values.
func ValidFormats() []FormatType {
	return []FormatType{FormatDmenu, FormatJSON, FormatPlain, FormatIDs}
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) (Formatter, error) {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts), nil
	case FormatPlain:
		return NewPlainFormatter(opts)
	case FormatIDs:
		return NewIDsFormatter(), nil
	case FormatDmenu, "":
		return NewDmenuFormatter(opts)
	default:
		return nil, fmt.Errorf("unknown format %q, must be one of: %v", format, ValidFormats())
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template        string // Custom template for dmenu/plain format
	ShowIndex       bool   // Show 1-based index prefix
	ShowIcon        bool   // Show the icon column
	Separator       string // Field separator for dmenu format
	PathSeparator   string // Joins submenu titles in dmenu format
	IncludeDisabled bool   // Include disabled items
	LeavesOnly      bool   // Skip items that open a submenu
}

// DefaultFormatterOptions returns sensible defaults for dmenu output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowIndex:     true,
		ShowIcon:      true,
		Separator:     " | ",
		PathSeparator: " > ",
		LeavesOnly:    true,
	}
}

// filter applies the option-driven entry filters.
func filter(entries []menu.Entry, opts FormatterOptions) []menu.Entry {
	out := make([]menu.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Disabled && !opts.IncludeDisabled {
			continue
		}
		if e.HasSubmenu && opts.LeavesOnly {
			continue
		}
		out = append(out, e)
	}
	return out
}
