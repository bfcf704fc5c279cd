package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/jmylchreest/popmenu/internal/popup"
)

// placeOverlay draws fg over bg with its top-left corner at (x, y). Both
// strings may contain ANSI sequences. The result is clipped to bg's size;
// negative coordinates clip fg's top and left edges.
func placeOverlay(x, y int, fg, bg string) string {
	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")

	for i, fgLine := range fgLines {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		bgLines[row] = compositeLine(x, fgLine, bgLines[row])
	}
	return strings.Join(bgLines, "\n")
}

// compositeLine replaces the cells of bgLine starting at column x with
// fgLine, keeping the background on both sides.
func compositeLine(x int, fgLine, bgLine string) string {
	if x < 0 {
		fgLine = ansi.TruncateLeft(fgLine, -x, "")
		x = 0
	}
	fgWidth := ansi.StringWidth(fgLine)
	if fgWidth == 0 {
		return bgLine
	}

	bgWidth := ansi.StringWidth(bgLine)
	if x >= bgWidth {
		return bgLine
	}
	if x+fgWidth > bgWidth {
		fgLine = ansi.Truncate(fgLine, bgWidth-x, "")
		fgWidth = ansi.StringWidth(fgLine)
	}

	left := ansi.Truncate(bgLine, x, "")
	right := ansi.TruncateLeft(bgLine, x+fgWidth, "")
	return left + "\x1b[0m" + fgLine + "\x1b[0m" + right
}

// composeLayers draws each layer over bg in order, so later layers end up on
// top.
func composeLayers(bg string, layers []popup.Layer) string {
	for _, l := range layers {
		bg = placeOverlay(l.X, l.Y, l.Content, bg)
	}
	return bg
}

// canvas returns a blank width x height block.
func canvas(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	line := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// Compose draws layers over a blank width x height frame.
func Compose(width, height int, layers []popup.Layer) string {
	return composeLayers(canvas(width, height), layers)
}
