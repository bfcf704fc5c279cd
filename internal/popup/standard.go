package popup

import (
	"image"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/popmenu/internal/gravity"
	"github.com/jmylchreest/popmenu/internal/menu"
	"github.com/jmylchreest/popmenu/internal/view"
)

// StandardPopup shows a single menu level as one box below its anchor.
// Selecting a submenu hands it back to the caller instead of nesting.
type StandardPopup struct {
	ctx          Context
	menu         *menu.Menu
	anchor       view.View
	styleAttr    string
	styleRes     string
	overflowOnly bool

	callback      menu.Callback
	forceShowIcon bool
	gravity       gravity.Gravity
	hOffset       int
	vOffset       int
	showTitle     bool
	onDismiss     DismissListener

	box     *listBox
	showing bool
}

// NewStandardPopup creates a single-level popup for m.
func NewStandardPopup(ctx Context, m *menu.Menu, anchor view.View, styleAttr, styleRes string, overflowOnly bool) *StandardPopup {
	return &StandardPopup{
		ctx:          ctx,
		menu:         m,
		anchor:       anchor,
		styleAttr:    styleAttr,
		styleRes:     styleRes,
		overflowOnly: overflowOnly,
		gravity:      gravity.Start,
	}
}

// AddMenu binds m when the popup was created without a menu. The menu
// given at construction is the only one a standard popup shows.
func (p *StandardPopup) AddMenu(m *menu.Menu) {
	if p.menu == nil {
		p.menu = m
	}
}

// Menu returns the menu shown by this popup.
func (p *StandardPopup) Menu() *menu.Menu { return p.menu }

func (p *StandardPopup) SetAnchor(v view.View) { p.anchor = v }
func (p *StandardPopup) SetCallback(cb menu.Callback) { p.callback = cb }
func (p *StandardPopup) SetForceShowIcon(force bool) { p.forceShowIcon = force }
func (p *StandardPopup) SetGravity(g gravity.Gravity) { p.gravity = g }
func (p *StandardPopup) SetHorizontalOffset(x int) { p.hOffset = x }
func (p *StandardPopup) SetVerticalOffset(y int) { p.vOffset = y }
func (p *StandardPopup) SetShowTitle(show bool) { p.showTitle = show }
func (p *StandardPopup) SetOnDismissListener(l DismissListener) { p.onDismiss = l }

// Show opens the popup. It is a no-op while showing or without an anchor.
func (p *StandardPopup) Show() {
	if p.showing || p.anchor == nil {
		return
	}
	p.box = newListBox(p.menu, p.overflowOnly)
	p.showing = true
}

// Dismiss closes the popup, tells the callback the menu is closing and
// then notifies the dismiss listener.
func (p *StandardPopup) Dismiss() {
	if !p.showing {
		return
	}
	p.showing = false
	p.box = nil

	if p.callback != nil {
		p.callback.OnCloseMenu(p.menu, true)
	}
	if p.onDismiss != nil {
		p.onDismiss()
	}
}

// IsShowing implements MenuPopup.
func (p *StandardPopup) IsShowing() bool {
	return p.showing
}

// MoveUp implements Navigator.
func (p *StandardPopup) MoveUp() {
	if p.box != nil {
		p.box.moveUp()
	}
}

// MoveDown implements Navigator.
func (p *StandardPopup) MoveDown() {
	if p.box != nil {
		p.box.moveDown()
	}
}

// Select implements Navigator. A submenu is offered to the callback and,
// unless vetoed, returned to the caller after this popup is dismissed.
func (p *StandardPopup) Select() (menu.Item, bool) {
	if p.box == nil {
		return menu.Item{}, false
	}
	it, ok := p.box.current()
	if !ok {
		return menu.Item{}, false
	}
	if it.HasSubmenu() && p.callback != nil && !p.callback.OnOpenSubMenu(it.Submenu) {
		return menu.Item{}, false
	}
	p.Dismiss()
	return it, true
}

// Back implements Navigator.
func (p *StandardPopup) Back() {
	p.Dismiss()
}

// Layers implements Renderer.
func (p *StandardPopup) Layers() []Layer {
	if !p.showing || p.box == nil {
		return nil
	}
	content := p.box.render(p.style(), p.showTitle, p.forceShowIcon)
	pt := p.origin(lipgloss.Width(content))
	return []Layer{{X: pt.X, Y: pt.Y, Content: content}}
}

// Bounds returns the screen rectangle of the popup, or an empty rectangle
// when it is not showing.
func (p *StandardPopup) Bounds() image.Rectangle {
	layers := p.Layers()
	if len(layers) == 0 {
		return image.Rectangle{}
	}
	l := layers[0]
	return image.Rect(l.X, l.Y, l.X+lipgloss.Width(l.Content), l.Y+lipgloss.Height(l.Content))
}

// origin places the box below the anchor. With absolute RIGHT gravity the
// box's right edge lines up with the anchor's right edge.
func (p *StandardPopup) origin(width int) image.Point {
	return dropDownOrigin(p.anchor, p.gravity, width, p.hOffset, p.vOffset)
}

func (p *StandardPopup) style() Style {
	if p.ctx == nil {
		return DefaultStyle()
	}
	return p.ctx.Style(p.styleAttr, p.styleRes)
}

func dropDownOrigin(anchor view.View, g gravity.Gravity, width, hOffset, vOffset int) image.Point {
	a := anchor.Bounds()
	x := a.Min.X + hOffset
	if gravity.Horizontal(g, anchor.LayoutDirection()) == gravity.Right {
		x = a.Max.X - width + hOffset
	}
	return image.Pt(x, a.Max.Y+vOffset)
}
