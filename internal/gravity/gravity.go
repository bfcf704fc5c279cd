// Package gravity describes how a popup is aligned against its anchor.
//
// Gravity values are bit flags. Each axis uses three bits (specified, pull
// before, pull after); the horizontal axis may additionally be expressed
// relative to the layout direction (Start/End) and must be resolved to an
// absolute value (Left/Right) before positioning.
package gravity

import (
	"fmt"
	"strings"
)

// Gravity is an alignment specifier.
type Gravity int

const (
	axisSpecified  = 0x0001
	axisPullBefore = 0x0002
	axisPullAfter  = 0x0004

	axisXShift = 0
	axisYShift = 4
)

// Gravity flags.
const (
	NoGravity Gravity = 0

	Left             Gravity = (axisPullBefore | axisSpecified) << axisXShift
	Right            Gravity = (axisPullAfter | axisSpecified) << axisXShift
	CenterHorizontal Gravity = axisSpecified << axisXShift
	FillHorizontal   Gravity = Left | Right

	Top            Gravity = (axisPullBefore | axisSpecified) << axisYShift
	Bottom         Gravity = (axisPullAfter | axisSpecified) << axisYShift
	CenterVertical Gravity = axisSpecified << axisYShift
	FillVertical   Gravity = Top | Bottom

	Center Gravity = CenterVertical | CenterHorizontal

	// RelativeLayoutDirection marks a horizontal gravity as relative to the
	// anchor's layout direction.
	RelativeLayoutDirection Gravity = 0x00800000

	Start Gravity = RelativeLayoutDirection | Left
	End   Gravity = RelativeLayoutDirection | Right

	HorizontalMask         Gravity = (axisSpecified | axisPullBefore | axisPullAfter) << axisXShift
	VerticalMask           Gravity = (axisSpecified | axisPullBefore | axisPullAfter) << axisYShift
	RelativeHorizontalMask Gravity = Start | End
)

// LayoutDirection is the reading direction of a view.
type LayoutDirection int

const (
	LTR LayoutDirection = iota
	RTL
)

// String returns "ltr" or "rtl".
func (d LayoutDirection) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// Absolute resolves Start/End against dir, returning a gravity that only
// uses Left/Right on the horizontal axis. Absolute gravities pass through
// unchanged.
func Absolute(g Gravity, dir LayoutDirection) Gravity {
	result := g
	if result&RelativeLayoutDirection == 0 {
		return result
	}

	switch {
	case result&Start == Start:
		result &^= Start
		if dir == RTL {
			result |= Right
		} else {
			result |= Left
		}
	case result&End == End:
		result &^= End
		if dir == RTL {
			result |= Left
		} else {
			result |= Right
		}
	}
	return result &^ RelativeLayoutDirection
}

// Horizontal returns the absolute horizontal component of g under dir.
func Horizontal(g Gravity, dir LayoutDirection) Gravity {
	return Absolute(g, dir) & HorizontalMask
}

// Vertical returns the vertical component of g.
func Vertical(g Gravity) Gravity {
	return g & VerticalMask
}

var names = map[string]Gravity{
	"none":              NoGravity,
	"left":              Left,
	"right":             Right,
	"start":             Start,
	"end":               End,
	"top":               Top,
	"bottom":            Bottom,
	"center":            Center,
	"center_horizontal": CenterHorizontal,
	"center_vertical":   CenterVertical,
	"fill_horizontal":   FillHorizontal,
	"fill_vertical":     FillVertical,
}

// Parse parses a gravity expression such as "end" or "bottom|start".
// Names are case-insensitive; "-" is accepted in place of "_".
func Parse(s string) (Gravity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NoGravity, fmt.Errorf("empty gravity")
	}

	var g Gravity
	for _, part := range strings.Split(s, "|") {
		name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(part)), "-", "_")
		v, ok := names[name]
		if !ok {
			return NoGravity, fmt.Errorf("unknown gravity %q", part)
		}
		g |= v
	}
	return g, nil
}

// String renders g as a "|"-joined expression that Parse accepts.
func (g Gravity) String() string {
	if g == NoGravity {
		return "none"
	}

	var parts []string

	switch {
	case g&Start == Start:
		parts = append(parts, "start")
	case g&End == End:
		parts = append(parts, "end")
	default:
		switch g & HorizontalMask {
		case Left:
			parts = append(parts, "left")
		case Right:
			parts = append(parts, "right")
		case CenterHorizontal:
			parts = append(parts, "center_horizontal")
		case FillHorizontal:
			parts = append(parts, "fill_horizontal")
		}
	}

	switch g & VerticalMask {
	case Top:
		parts = append(parts, "top")
	case Bottom:
		parts = append(parts, "bottom")
	case CenterVertical:
		parts = append(parts, "center_vertical")
	case FillVertical:
		parts = append(parts, "fill_vertical")
	}

	if len(parts) == 0 {
		return fmt.Sprintf("0x%x", int(g))
	}
	return strings.Join(parts, "|")
}
