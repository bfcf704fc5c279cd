// Package view defines the anchor capability popups are positioned against.
package view

import (
	"image"

	"github.com/jmylchreest/popmenu/internal/gravity"
)

// View is a laid-out UI element. Bounds are in screen cells.
type View interface {
	Bounds() image.Rectangle
	LayoutDirection() gravity.LayoutDirection
}

// Box is a View whose geometry is assigned by its owner, typically during
// the owner's own layout pass.
type Box struct {
	Name      string
	Rect      image.Rectangle
	Direction gravity.LayoutDirection
}

// NewBox creates a left-to-right box at (x, y) with the given size.
func NewBox(name string, x, y, width, height int) *Box {
	return &Box{
		Name: name,
		Rect: image.Rect(x, y, x+width, y+height),
	}
}

// Bounds implements View.
func (b *Box) Bounds() image.Rectangle {
	return b.Rect
}

// LayoutDirection implements View.
func (b *Box) LayoutDirection() gravity.LayoutDirection {
	return b.Direction
}

// SetBounds moves and resizes the box.
func (b *Box) SetBounds(r image.Rectangle) {
	b.Rect = r.Canon()
}

// Width returns the measured width of v, or 0 for a nil view.
func Width(v View) int {
	if v == nil {
		return 0
	}
	return v.Bounds().Dx()
}
