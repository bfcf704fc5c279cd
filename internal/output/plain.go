package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/popmenu/internal/menu"
)

// PlainFormatter formats entries as an indented tree.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) (*PlainFormatter, error) {
	f := &PlainFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs()).Parse(opts.Template)
		if err != nil {
			return nil, fmt.Errorf("invalid template: %w", err)
		}
		f.template = tmpl
	}

	return f, nil
}

// Format writes entries as plain text. Submenu items are always kept so
// the tree stays readable.
func (f *PlainFormatter) Format(w io.Writer, entries []menu.Entry) error {
	opts := f.opts
	opts.LeavesOnly = false

	for _, e := range filter(entries, opts) {
		if err := f.formatEntry(w, e); err != nil {
			return err
		}
	}
	return nil
}

// formatEntry formats a single entry.
func (f *PlainFormatter) formatEntry(w io.Writer, e menu.Entry) error {
	if f.template != nil {
		return f.template.Execute(w, e)
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat("  ", e.Depth))

	if f.opts.ShowIndex {
		sb.WriteString(fmt.Sprintf("[%d] ", e.Index))
	}
	if f.opts.ShowIcon && e.Icon != "" {
		sb.WriteString(e.Icon + " ")
	}

	sb.WriteString(e.Title)

	if e.HasSubmenu {
		sb.WriteString(" ▸")
	}
	if e.Disabled {
		sb.WriteString(" (disabled)")
	}
	sb.WriteString(fmt.Sprintf("  <%s>\n", e.ID))

	_, err := w.Write([]byte(sb.String()))
	return err
}
