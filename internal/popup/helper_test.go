package popup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/popmenu/internal/gravity"
	"github.com/jmylchreest/popmenu/internal/menu"
	"github.com/jmylchreest/popmenu/internal/view"
)

type fakeContext struct {
	cascading bool
	reads     int
}

func (c *fakeContext) CascadingSubmenusEnabled() bool {
	c.reads++
	return c.cascading
}

func (c *fakeContext) Style(attr, res string) Style {
	return DefaultStyle()
}

// fakePopup records everything the helper does to it.
type fakePopup struct {
	variant   string
	ctorMenu  *menu.Menu
	added     []*menu.Menu
	styleAttr string

	anchor        view.View
	callback      menu.Callback
	forceShowIcon bool
	gravity       gravity.Gravity
	hOffset       int
	vOffset       int
	showTitle     bool
	onDismiss     DismissListener

	showing   bool
	showCalls int
}

func (p *fakePopup) AddMenu(m *menu.Menu) { p.added = append(p.added, m) }
func (p *fakePopup) SetAnchor(v view.View) { p.anchor = v }
func (p *fakePopup) SetCallback(cb menu.Callback) { p.callback = cb }
func (p *fakePopup) SetForceShowIcon(force bool) { p.forceShowIcon = force }
func (p *fakePopup) SetGravity(g gravity.Gravity) { p.gravity = g }
func (p *fakePopup) SetHorizontalOffset(x int) { p.hOffset = x }
func (p *fakePopup) SetVerticalOffset(y int) { p.vOffset = y }
func (p *fakePopup) SetShowTitle(show bool) { p.showTitle = show }
func (p *fakePopup) SetOnDismissListener(l DismissListener) { p.onDismiss = l }
func (p *fakePopup) IsShowing() bool { return p.showing }

func (p *fakePopup) Show() {
	p.showCalls++
	p.showing = true
}

func (p *fakePopup) Dismiss() {
	p.showing = false
	if p.onDismiss != nil {
		p.onDismiss()
	}
}

// newTestHelper returns a helper whose strategies are fakePopups, and the
// list of popups it has created so far.
func newTestHelper(ctx *fakeContext, opts Options) (*Helper, *[]*fakePopup) {
	created := &[]*fakePopup{}
	h := NewHelper(ctx, menu.Sample(), opts)
	h.newStandard = func(_ Context, m *menu.Menu, _ view.View, styleAttr, _ string, _ bool) MenuPopup {
		p := &fakePopup{variant: "standard", ctorMenu: m, styleAttr: styleAttr}
		*created = append(*created, p)
		return p
	}
	h.newCascading = func(_ Context, _ view.View, styleAttr, _ string, _ bool) MenuPopup {
		p := &fakePopup{variant: "cascading", styleAttr: styleAttr}
		*created = append(*created, p)
		return p
	}
	return h, created
}

func TestHelper_Defaults(t *testing.T) {
	h, _ := newTestHelper(&fakeContext{}, Options{})
	assert.Equal(t, gravity.Start, h.Gravity())
	assert.False(t, h.IsShowing())
	assert.Nil(t, h.Anchor())
	assert.Empty(t, h.PopupID())
	assert.NotNil(t, h.Menu())
}

func TestHelper_TryShowWithoutAnchor(t *testing.T) {
	h, created := newTestHelper(&fakeContext{}, Options{})

	assert.False(t, h.TryShow())
	assert.False(t, h.TryShowAt(3, 4))
	assert.False(t, h.IsShowing())
	assert.Empty(t, *created, "no popup may be created without an anchor")
	assert.Empty(t, h.PopupID())
}

func TestHelper_ShowWithoutAnchor(t *testing.T) {
	h, created := newTestHelper(&fakeContext{}, Options{})

	err := h.Show()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoAnchor)

	var stateErr *StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "show", stateErr.Op)

	assert.ErrorIs(t, h.ShowAt(1, 1), ErrNoAnchor)
	assert.Empty(t, *created)
}

func TestHelper_TryShowIsIdempotent(t *testing.T) {
	h, created := newTestHelper(&fakeContext{}, Options{Anchor: view.NewBox("a", 0, 0, 5, 1)})

	require.True(t, h.TryShow())
	first := h.Popup()
	id := h.PopupID()

	assert.True(t, h.TryShow())
	assert.True(t, h.TryShowAt(50, 50), "showing popup must not be moved")
	assert.Same(t, first, h.Popup())
	assert.Equal(t, id, h.PopupID())

	require.Len(t, *created, 1)
	p := (*created)[0]
	assert.Equal(t, 1, p.showCalls)
	assert.Equal(t, 0, p.hOffset)
	assert.Equal(t, 0, p.vOffset)
}

func TestHelper_TryShowUsesZeroOffsetsWithoutTitle(t *testing.T) {
	anchor := view.NewBox("a", 10, 0, 8, 1)
	h, created := newTestHelper(&fakeContext{}, Options{Anchor: anchor})
	h.SetGravity(gravity.Right)

	require.NoError(t, h.Show())

	p := (*created)[0]
	assert.Equal(t, 0, p.hOffset, "offset-less path skips gravity resolution")
	assert.Equal(t, 0, p.vOffset)
	assert.False(t, p.showTitle)
}

func TestHelper_TryShowAtResolvesGravity(t *testing.T) {
	tests := []struct {
		name    string
		gravity gravity.Gravity
		dir     gravity.LayoutDirection
		wantX   int
	}{
		{"right", gravity.Right, gravity.LTR, 17 - 6},
		{"end ltr", gravity.End, gravity.LTR, 17 - 6},
		{"start rtl", gravity.Start, gravity.RTL, 17 - 6},
		{"bottom end", gravity.Bottom | gravity.End, gravity.LTR, 17 - 6},
		{"start ltr", gravity.Start, gravity.LTR, 17},
		{"end rtl", gravity.End, gravity.RTL, 17},
		{"left", gravity.Left, gravity.RTL, 17},
		{"center", gravity.Center, gravity.LTR, 17},
		{"fill", gravity.FillHorizontal, gravity.LTR, 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anchor := view.NewBox("a", 4, 2, 6, 1)
			anchor.Direction = tt.dir

			h, created := newTestHelper(&fakeContext{}, Options{Anchor: anchor})
			h.SetGravity(tt.gravity)

			require.NoError(t, h.ShowAt(17, 3))

			p := (*created)[0]
			assert.Equal(t, tt.wantX, p.hOffset)
			assert.Equal(t, 3, p.vOffset)
			assert.True(t, p.showTitle)
			assert.Equal(t, tt.gravity, p.gravity)
		})
	}
}

func TestHelper_FactoryAppliesSnapshot(t *testing.T) {
	anchor := view.NewBox("a", 0, 0, 4, 1)
	cb := menu.CallbackFuncs{}

	h, created := newTestHelper(&fakeContext{}, Options{Anchor: anchor, StyleAttr: "customStyle"})
	h.SetGravity(gravity.End)
	h.SetForceShowIcon(true)
	h.SetCallback(cb)

	p := h.Popup().(*fakePopup)
	require.Len(t, *created, 1)
	assert.False(t, h.IsShowing(), "materializing does not show")

	assert.Equal(t, "standard", p.variant)
	assert.Same(t, h.Menu(), p.ctorMenu)
	require.Len(t, p.added, 1, "standard receives the menu through AddMenu as well")
	assert.Same(t, h.Menu(), p.added[0])
	assert.Same(t, anchor, p.anchor)
	assert.Equal(t, gravity.End, p.gravity)
	assert.True(t, p.forceShowIcon)
	assert.Equal(t, cb, p.callback)
	assert.Equal(t, "customStyle", p.styleAttr)
	assert.NotNil(t, p.onDismiss)
	assert.NotEmpty(t, h.PopupID())

	// A materialized popup is reused by the next show.
	require.True(t, h.TryShow())
	assert.Same(t, p, h.Popup())
	assert.Len(t, *created, 1)
}

func TestHelper_CascadingReceivesMenuOnlyThroughAddMenu(t *testing.T) {
	h, _ := newTestHelper(&fakeContext{cascading: true}, Options{Anchor: view.NewBox("a", 0, 0, 4, 1)})

	p := h.Popup().(*fakePopup)
	assert.Equal(t, "cascading", p.variant)
	assert.Nil(t, p.ctorMenu)
	require.Len(t, p.added, 1)
	assert.Same(t, h.Menu(), p.added[0])
	assert.Equal(t, DefaultStyleAttr, p.styleAttr)
}

func TestHelper_DismissClearsBeforeListener(t *testing.T) {
	h, _ := newTestHelper(&fakeContext{}, Options{Anchor: view.NewBox("a", 0, 0, 4, 1)})

	var order []string
	h.SetTeardown(func() {
		order = append(order, "teardown")
		assert.NotEmpty(t, h.PopupID(), "teardown runs before the popup is released")
	})

	require.NoError(t, h.Show())

	// Set after show: the listener in effect at dismiss time is used.
	h.SetOnDismissListener(func() {
		order = append(order, "listener")
		assert.False(t, h.IsShowing())
		assert.Empty(t, h.PopupID())
	})

	h.Dismiss()
	assert.Equal(t, []string{"teardown", "listener"}, order)
	assert.False(t, h.IsShowing())
}

func TestHelper_DismissWhenNotShowingIsNoop(t *testing.T) {
	h, _ := newTestHelper(&fakeContext{}, Options{Anchor: view.NewBox("a", 0, 0, 4, 1)})

	calls := 0
	h.SetOnDismissListener(func() { calls++ })

	h.Dismiss()
	assert.Zero(t, calls)

	// A materialized but hidden popup is not dismissed either.
	p := h.Popup()
	h.Dismiss()
	assert.Zero(t, calls)
	assert.Same(t, p, h.Popup())
}

func TestHelper_StrategyDismissNotifiesOncePerInstance(t *testing.T) {
	h, created := newTestHelper(&fakeContext{}, Options{Anchor: view.NewBox("a", 0, 0, 4, 1)})

	calls := 0
	h.SetOnDismissListener(func() { calls++ })

	require.NoError(t, h.Show())
	// Dismissal initiated by the popup itself, e.g. a click outside.
	(*created)[0].Dismiss()
	assert.Equal(t, 1, calls)
	assert.False(t, h.IsShowing())

	require.NoError(t, h.Show())
	h.Dismiss()
	assert.Equal(t, 2, calls)
	assert.Len(t, *created, 2)
}

func TestHelper_NextShowUsesNewSnapshot(t *testing.T) {
	anchor := view.NewBox("a", 0, 0, 4, 1)
	h, created := newTestHelper(&fakeContext{}, Options{Anchor: anchor})

	require.NoError(t, h.Show())
	first := h.Popup()
	h.Dismiss()
	require.False(t, h.IsShowing())

	other := view.NewBox("b", 10, 0, 4, 1)
	h.SetGravity(gravity.End)
	h.SetAnchor(other)
	h.SetForceShowIcon(true)

	require.NoError(t, h.Show())
	second := h.Popup()
	assert.NotSame(t, first, second)
	require.Len(t, *created, 2)

	p := (*created)[1]
	assert.Equal(t, gravity.End, p.gravity)
	assert.Same(t, other, p.anchor)
	assert.True(t, p.forceShowIcon)
}

func TestHelper_ChangesWhileShowing(t *testing.T) {
	anchor := view.NewBox("a", 0, 0, 4, 1)
	h, created := newTestHelper(&fakeContext{}, Options{Anchor: anchor})

	require.NoError(t, h.Show())
	p := (*created)[0]

	h.SetAnchor(view.NewBox("b", 9, 9, 1, 1))
	h.SetGravity(gravity.Right)
	h.SetForceShowIcon(true)

	assert.Same(t, anchor, p.anchor)
	assert.Equal(t, gravity.Start, p.gravity)
	assert.False(t, p.forceShowIcon)
	assert.Equal(t, gravity.Right, h.Gravity(), "snapshot still records the change")

	var closed bool
	cb := menu.CallbackFuncs{CloseMenu: func(*menu.Menu, bool) { closed = true }}
	h.SetCallback(cb)
	require.NotNil(t, p.callback)
	p.callback.OnCloseMenu(nil, true)
	assert.True(t, closed, "callback reaches the live popup immediately")
}

func TestHelper_StrategyChoiceIsFrozenPerInstance(t *testing.T) {
	ctx := &fakeContext{cascading: false}
	h, created := newTestHelper(ctx, Options{Anchor: view.NewBox("a", 0, 0, 4, 1)})

	require.NoError(t, h.Show())
	assert.Equal(t, 1, ctx.reads)

	ctx.cascading = true
	require.True(t, h.TryShow())
	assert.Equal(t, "standard", h.Popup().(*fakePopup).variant)
	assert.Equal(t, 1, ctx.reads, "flag is not re-read for a live instance")

	h.Dismiss()
	require.NoError(t, h.Show())
	require.Len(t, *created, 2)
	assert.Equal(t, "cascading", (*created)[1].variant)
	assert.Equal(t, 2, ctx.reads)
}
