package popup

import (
	"log/slog"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/popmenu/internal/gravity"
	"github.com/jmylchreest/popmenu/internal/menu"
	"github.com/jmylchreest/popmenu/internal/view"
)

// Options configures a Helper. Everything except Anchor is fixed for the
// helper's lifetime.
type Options struct {
	Anchor       view.View
	OverflowOnly bool
	StyleAttr    string // Defaults to DefaultStyleAttr
	StyleRes     string
	Logger       *slog.Logger
}

// Helper shows a menu in a popup anchored to a view.
//
// Anchor, gravity and force-show-icon are captured when a popup instance is
// created; changing them while a popup exists only affects the next one.
// The callback is the exception and is forwarded to a live popup at once.
//
// Helper is not safe for concurrent use. Drive it from the UI goroutine.
type Helper struct {
	ctx    Context
	logger *slog.Logger

	// Immutable popup properties.
	menu         *menu.Menu
	overflowOnly bool
	styleAttr    string
	styleRes     string

	// Mutable properties, applied when the next popup is created.
	anchor        view.View
	gravity       gravity.Gravity
	forceShowIcon bool
	callback      menu.Callback

	popup     MenuPopup
	popupID   string
	onDismiss DismissListener
	teardown  func()

	newStandard  func(ctx Context, m *menu.Menu, anchor view.View, styleAttr, styleRes string, overflowOnly bool) MenuPopup
	newCascading func(ctx Context, anchor view.View, styleAttr, styleRes string, overflowOnly bool) MenuPopup
}

// NewHelper creates a helper for m in ctx.
func NewHelper(ctx Context, m *menu.Menu, opts Options) *Helper {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	styleAttr := opts.StyleAttr
	if styleAttr == "" {
		styleAttr = DefaultStyleAttr
	}

	return &Helper{
		ctx:          ctx,
		logger:       logger,
		menu:         m,
		overflowOnly: opts.OverflowOnly,
		styleAttr:    styleAttr,
		styleRes:     opts.StyleRes,
		anchor:       opts.Anchor,
		gravity:      gravity.Start,
		newStandard: func(ctx Context, m *menu.Menu, anchor view.View, styleAttr, styleRes string, overflowOnly bool) MenuPopup {
			return NewStandardPopup(ctx, m, anchor, styleAttr, styleRes, overflowOnly)
		},
		newCascading: func(ctx Context, anchor view.View, styleAttr, styleRes string, overflowOnly bool) MenuPopup {
			return NewCascadingPopup(ctx, anchor, styleAttr, styleRes, overflowOnly)
		},
	}
}

// Menu returns the menu this helper presents.
func (h *Helper) Menu() *menu.Menu {
	return h.menu
}

// SetOnDismissListener sets the listener called after a popup is dismissed
// and the helper has released it.
func (h *Helper) SetOnDismissListener(l DismissListener) {
	h.onDismiss = l
}

// SetTeardown sets extra cleanup to run when a popup is dismissed. It runs
// before the helper releases the popup and before the dismiss listener, so
// the listener always observes a fully torn down helper.
func (h *Helper) SetTeardown(fn func()) {
	h.teardown = fn
}

// SetAnchor sets the view the next popup is anchored to.
func (h *Helper) SetAnchor(v view.View) {
	h.anchor = v
}

// Anchor returns the current anchor, or nil.
func (h *Helper) Anchor() view.View {
	return h.anchor
}

// SetForceShowIcon forces an icon column on the next popup.
func (h *Helper) SetForceShowIcon(force bool) {
	h.forceShowIcon = force
}

// SetGravity sets the gravity of the next popup relative to its anchor.
func (h *Helper) SetGravity(g gravity.Gravity) {
	h.gravity = g
}

// Gravity returns the configured gravity. Defaults to gravity.Start.
func (h *Helper) Gravity() gravity.Gravity {
	return h.gravity
}

// SetCallback sets the presenter callback, updating the live popup if any.
func (h *Helper) SetCallback(cb menu.Callback) {
	h.callback = cb
	if h.popup != nil {
		h.popup.SetCallback(cb)
	}
}

// Show shows the popup at the anchor. It fails with ErrNoAnchor when no
// anchor is bound.
func (h *Helper) Show() error {
	if !h.TryShow() {
		return &StateError{Op: "show", Err: ErrNoAnchor}
	}
	return nil
}

// ShowAt shows the popup with its corner at (x, y) relative to the anchor.
// It fails with ErrNoAnchor when no anchor is bound.
func (h *Helper) ShowAt(x, y int) error {
	if !h.TryShowAt(x, y) {
		return &StateError{Op: "show", Err: ErrNoAnchor}
	}
	return nil
}

// Popup returns the current popup instance, creating it if needed.
func (h *Helper) Popup() MenuPopup {
	if h.popup == nil {
		h.popup = h.createPopup()
	}
	return h.popup
}

// PopupID returns the id of the current popup instance, or "" if none.
func (h *Helper) PopupID() string {
	return h.popupID
}

// TryShow shows the popup at the anchor with no offset and no title.
// It returns true if the popup is showing afterwards, including when it was
// already showing, and false without side effects when no anchor is bound.
func (h *Helper) TryShow() bool {
	if h.IsShowing() {
		return true
	}
	if h.anchor == nil {
		return false
	}

	h.showPopup(0, 0, false, false)
	return true
}

// TryShowAt is TryShow with an offset of (x, y) from the anchor, resolved
// against the gravity, and the menu title shown.
func (h *Helper) TryShowAt(x, y int) bool {
	if h.IsShowing() {
		return true
	}
	if h.anchor == nil {
		return false
	}

	h.showPopup(x, y, true, true)
	return true
}

// createPopup builds a popup for the current snapshot. The strategy is
// chosen here, once, and stays with the instance.
func (h *Helper) createPopup() MenuPopup {
	cascading := h.ctx.CascadingSubmenusEnabled()

	var p MenuPopup
	if cascading {
		p = h.newCascading(h.ctx, h.anchor, h.styleAttr, h.styleRes, h.overflowOnly)
	} else {
		p = h.newStandard(h.ctx, h.menu, h.anchor, h.styleAttr, h.styleRes, h.overflowOnly)
	}

	// Immutable properties. Standard already has the menu from its
	// constructor; it is added here for both variants regardless.
	p.AddMenu(h.menu)
	p.SetOnDismissListener(h.internalOnDismiss)

	// Mutable properties. These may be reassigned later.
	p.SetAnchor(h.anchor)
	p.SetCallback(h.callback)
	p.SetForceShowIcon(h.forceShowIcon)
	p.SetGravity(h.gravity)

	h.popupID = ulid.Make().String()
	h.logger.Debug("created popup",
		"id", h.popupID,
		"cascading", cascading,
		"gravity", h.gravity.String(),
	)
	return p
}

func (h *Helper) showPopup(xOffset, yOffset int, resolveOffsets, showTitle bool) {
	if resolveOffsets {
		// With RIGHT gravity the popup's right edge is aligned with the
		// anchor, so shift by the anchor width to put the top-right corner
		// at the requested x offset.
		hgrav := gravity.Horizontal(h.gravity, h.anchor.LayoutDirection())
		if hgrav == gravity.Right {
			xOffset -= view.Width(h.anchor)
		}
	}

	p := h.Popup()
	p.SetHorizontalOffset(xOffset)
	p.SetVerticalOffset(yOffset)
	p.SetShowTitle(showTitle)
	p.Show()

	h.logger.Debug("showed popup",
		"id", h.popupID,
		"x_offset", xOffset,
		"y_offset", yOffset,
		"show_title", showTitle,
	)
}

// Dismiss dismisses the popup if it is showing.
func (h *Helper) Dismiss() {
	if h.IsShowing() {
		h.popup.Dismiss()
	}
}

// IsShowing reports whether a popup exists and is showing.
func (h *Helper) IsShowing() bool {
	return h.popup != nil && h.popup.IsShowing()
}

// OnDismiss releases the popup and notifies the dismiss listener. It is
// called by the popup once it has finished its own dismissal.
func (h *Helper) OnDismiss() {
	if h.teardown != nil {
		h.teardown()
	}

	id := h.popupID
	h.popup = nil
	h.popupID = ""
	h.logger.Debug("popup dismissed", "id", id)

	if h.onDismiss != nil {
		h.onDismiss()
	}
}

// internalOnDismiss is the listener installed on every popup. External
// listeners are never installed on a popup directly.
func (h *Helper) internalOnDismiss() {
	h.OnDismiss()
}
