package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/popmenu/internal/menu"
)

// IDsFormatter outputs just the item IDs of enabled leaf items, one per
// line. Useful for piping to other commands.
type IDsFormatter struct{}

// NewIDsFormatter creates a new IDs formatter.
func NewIDsFormatter() *IDsFormatter {
	return &IDsFormatter{}
}

// Format writes item IDs to the writer, one per line.
func (f *IDsFormatter) Format(w io.Writer, entries []menu.Entry) error {
	for _, e := range filter(entries, FormatterOptions{LeavesOnly: true}) {
		if _, err := fmt.Fprintln(w, e.ID); err != nil {
			return err
		}
	}
	return nil
}
