package popup

import (
	"image"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/popmenu/internal/gravity"
	"github.com/jmylchreest/popmenu/internal/menu"
	"github.com/jmylchreest/popmenu/internal/view"
)

// CascadingPopup shows submenus as a chain of boxes, each opened beside the
// row of its parent. Menus added before Show are queued and opened on Show.
type CascadingPopup struct {
	ctx          Context
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

	pending []*menu.Menu
	levels  []*listBox
	showing bool
}

// NewCascadingPopup creates a popup with no menus. Menus are supplied
// through AddMenu.
func NewCascadingPopup(ctx Context, anchor view.View, styleAttr, styleRes string, overflowOnly bool) *CascadingPopup {
	return &CascadingPopup{
		ctx:          ctx,
		anchor:       anchor,
		styleAttr:    styleAttr,
		styleRes:     styleRes,
		overflowOnly: overflowOnly,
		gravity:      gravity.Start,
	}
}

// AddMenu queues m until Show, or opens it as a new innermost level when
// the popup is already showing.
func (p *CascadingPopup) AddMenu(m *menu.Menu) {
	if m == nil {
		return
	}
	if p.showing {
		p.levels = append(p.levels, newListBox(m, p.overflowOnly))
		return
	}
	p.pending = append(p.pending, m)
}

func (p *CascadingPopup) SetAnchor(v view.View) { p.anchor = v }
func (p *CascadingPopup) SetCallback(cb menu.Callback) { p.callback = cb }
func (p *CascadingPopup) SetForceShowIcon(force bool) { p.forceShowIcon = force }
func (p *CascadingPopup) SetGravity(g gravity.Gravity) { p.gravity = g }
func (p *CascadingPopup) SetHorizontalOffset(x int) { p.hOffset = x }
func (p *CascadingPopup) SetVerticalOffset(y int) { p.vOffset = y }
func (p *CascadingPopup) SetShowTitle(show bool) { p.showTitle = show }
func (p *CascadingPopup) SetOnDismissListener(l DismissListener) { p.onDismiss = l }

// Show opens every queued menu. It is a no-op while showing or without an
// anchor.
func (p *CascadingPopup) Show() {
	if p.showing || p.anchor == nil {
		return
	}
	p.showing = true
	for _, m := range p.pending {
		p.levels = append(p.levels, newListBox(m, p.overflowOnly))
	}
	p.pending = nil
}

// Dismiss closes every level, tells the callback the root menu is closing
// and then notifies the dismiss listener.
func (p *CascadingPopup) Dismiss() {
	if !p.showing {
		return
	}

	var root *menu.Menu
	if len(p.levels) > 0 {
		root = p.levels[0].menu
	}
	p.showing = false
	p.levels = nil

	if p.callback != nil && root != nil {
		p.callback.OnCloseMenu(root, true)
	}
	if p.onDismiss != nil {
		p.onDismiss()
	}
}

// IsShowing implements MenuPopup.
func (p *CascadingPopup) IsShowing() bool {
	return p.showing
}

// Depth returns the number of open levels.
func (p *CascadingPopup) Depth() int {
	return len(p.levels)
}

func (p *CascadingPopup) top() *listBox {
	if len(p.levels) == 0 {
		return nil
	}
	return p.levels[len(p.levels)-1]
}

// MoveUp implements Navigator.
func (p *CascadingPopup) MoveUp() {
	if lb := p.top(); lb != nil {
		lb.moveUp()
	}
}

// MoveDown implements Navigator.
func (p *CascadingPopup) MoveDown() {
	if lb := p.top(); lb != nil {
		lb.moveDown()
	}
}

// Select implements Navigator. A submenu opens as a nested level unless the
// callback vetoes it; the popup stays open in that case.
func (p *CascadingPopup) Select() (menu.Item, bool) {
	lb := p.top()
	if lb == nil {
		return menu.Item{}, false
	}
	it, ok := lb.current()
	if !ok {
		return menu.Item{}, false
	}
	if it.HasSubmenu() {
		if p.callback == nil || p.callback.OnOpenSubMenu(it.Submenu) {
			p.AddMenu(it.Submenu)
		}
		return menu.Item{}, false
	}
	p.Dismiss()
	return it, true
}

// Back closes the innermost level, or dismisses the popup at the root.
func (p *CascadingPopup) Back() {
	if len(p.levels) <= 1 {
		p.Dismiss()
		return
	}
	closed := p.levels[len(p.levels)-1]
	p.levels = p.levels[:len(p.levels)-1]
	if p.callback != nil {
		p.callback.OnCloseMenu(closed.menu, false)
	}
}

// Layers implements Renderer. The first level drops down from the anchor;
// each further level opens beside the highlighted row of its parent, to
// the right, or to the left when the popup has RIGHT gravity.
func (p *CascadingPopup) Layers() []Layer {
	if !p.showing || len(p.levels) == 0 {
		return nil
	}

	style := p.style()
	toLeft := gravity.Horizontal(p.gravity, p.anchor.LayoutDirection()) == gravity.Right

	layers := make([]Layer, 0, len(p.levels))
	var prev image.Rectangle
	var prevRow int
	for i, lb := range p.levels {
		showTitle := p.showTitle && i == 0
		content := lb.render(style, showTitle, p.forceShowIcon)
		w, h := lipgloss.Width(content), lipgloss.Height(content)

		var pt image.Point
		switch {
		case i == 0:
			pt = dropDownOrigin(p.anchor, p.gravity, w, p.hOffset, p.vOffset)
		case toLeft:
			pt = image.Pt(prev.Min.X-w, prev.Min.Y+prevRow-1)
		default:
			pt = image.Pt(prev.Max.X, prev.Min.Y+prevRow-1)
		}

		layers = append(layers, Layer{X: pt.X, Y: pt.Y, Content: content})
		prev = image.Rect(pt.X, pt.Y, pt.X+w, pt.Y+h)
		prevRow = lb.rowOffset(showTitle)
	}
	return layers
}

func (p *CascadingPopup) style() Style {
	if p.ctx == nil {
		return DefaultStyle()
	}
	return p.ctx.Style(p.styleAttr, p.styleRes)
}
