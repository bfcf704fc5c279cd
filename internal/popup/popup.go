// Package popup presents a menu as a small popup anchored to a view.
//
// Helper is the coordinator: it owns at most one popup instance at a time,
// picks the presentation strategy when that instance is created, resolves
// anchor-relative offsets and makes sure its own cleanup has finished before
// an external dismiss listener runs. StandardPopup and CascadingPopup are the
// two strategies it chooses between.
package popup

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/popmenu/internal/gravity"
	"github.com/jmylchreest/popmenu/internal/menu"
	"github.com/jmylchreest/popmenu/internal/view"
)

// DefaultStyleAttr is the style attribute used when none is configured.
const DefaultStyleAttr = "popupMenuStyle"

// DismissListener is called once a popup has been dismissed.
type DismissListener func()

// MenuPopup is the capability a presentation strategy provides.
type MenuPopup interface {
	AddMenu(m *menu.Menu)
	SetAnchor(v view.View)
	SetCallback(cb menu.Callback)
	SetForceShowIcon(force bool)
	SetGravity(g gravity.Gravity)
	SetHorizontalOffset(x int)
	SetVerticalOffset(y int)
	SetShowTitle(show bool)
	SetOnDismissListener(l DismissListener)
	Show()
	Dismiss()
	IsShowing() bool
}

// Context is the environment popups are created in.
type Context interface {
	// CascadingSubmenusEnabled selects the cascading strategy for newly
	// created popups.
	CascadingSubmenusEnabled() bool

	// Style resolves the styles for a popup from a style attribute and an
	// optional style resource that overrides it.
	Style(attr, res string) Style
}

// Style is the resolved look of a popup.
type Style struct {
	Box      lipgloss.Style
	Title    lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Disabled lipgloss.Style
}

// DefaultStyle returns the style used when a Context has nothing better.
func DefaultStyle() Style {
	return Style{
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")),
		Item: lipgloss.NewStyle().
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")),
		Disabled: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("8")),
	}
}

// Navigator is implemented by strategies that accept keyboard navigation.
type Navigator interface {
	MoveUp()
	MoveDown()

	// Select activates the highlighted item. It returns the item and true
	// when the activation ended the popup: a leaf item was invoked, or a
	// submenu was handed back to the caller to present.
	Select() (menu.Item, bool)

	// Back closes the innermost level, dismissing the popup when it was
	// the only one.
	Back()
}

// Layer is one rendered popup box at a screen position.
type Layer struct {
	X, Y    int
	Content string
}

// Renderer is implemented by strategies that can draw themselves.
type Renderer interface {
	Layers() []Layer
}
