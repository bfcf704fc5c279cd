package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/popmenu/internal/menu"
)

// DmenuFormatter formats entries for dmenu/rofi/fuzzel, one per line.
type DmenuFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewDmenuFormatter creates a new dmenu formatter.
func NewDmenuFormatter(opts FormatterOptions) (*DmenuFormatter, error) {
	f := &DmenuFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("dmenu").Funcs(templateFuncs()).Parse(opts.Template)
		if err != nil {
			return nil, fmt.Errorf("invalid template: %w", err)
		}
		f.template = tmpl
	}

	return f, nil
}

// Format writes entries in dmenu format.
func (f *DmenuFormatter) Format(w io.Writer, entries []menu.Entry) error {
	for _, e := range filter(entries, f.opts) {
		line, err := f.formatLine(e)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// formatLine formats a single entry line.
func (f *DmenuFormatter) formatLine(e menu.Entry) (string, error) {
	if f.template != nil {
		var buf strings.Builder
		if err := f.template.Execute(&buf, e); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	// Default format: index | icon | Submenu > Title
	sep := f.opts.Separator
	if sep == "" {
		sep = " | "
	}

	var parts []string
	if f.opts.ShowIndex {
		parts = append(parts, fmt.Sprintf("%d", e.Index))
	}
	if f.opts.ShowIcon {
		icon := e.Icon
		if icon == "" {
			icon = " "
		}
		parts = append(parts, icon)
	}
	parts = append(parts, qualifiedTitle(e, f.opts.PathSeparator))

	return strings.Join(parts, sep), nil
}

// qualifiedTitle prefixes the title with its submenu path.
func qualifiedTitle(e menu.Entry, pathSep string) string {
	if pathSep == "" {
		pathSep = " > "
	}
	return strings.Join(append(append([]string{}, e.Path...), e.Title), pathSep)
}

// templateFuncs returns template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"truncate": func(s string, maxLen int) string {
			if maxLen <= 0 || len(s) <= maxLen {
				return s
			}
			if maxLen <= 3 {
				return s[:maxLen]
			}
			return s[:maxLen-3] + "..."
		},
		"join": strings.Join,
		"indent": func(depth int) string {
			return strings.Repeat("  ", depth)
		},
	}
}
