package menu

// Callback receives presenter events from a popup showing a menu.
type Callback interface {
	// OnCloseMenu is called when a menu is closing. allMenusAreClosing is
	// true when the whole chain, not just one submenu level, is going away.
	OnCloseMenu(m *Menu, allMenusAreClosing bool)

	// OnOpenSubMenu is called before a submenu is presented. Returning false
	// vetoes the submenu.
	OnOpenSubMenu(sub *Menu) bool
}

// CallbackFuncs adapts plain functions to Callback. Nil fields are ignored;
// a nil OpenSubMenu allows every submenu.
type CallbackFuncs struct {
	CloseMenu   func(m *Menu, allMenusAreClosing bool)
	OpenSubMenu func(sub *Menu) bool
}

// OnCloseMenu implements Callback.
func (c CallbackFuncs) OnCloseMenu(m *Menu, allMenusAreClosing bool) {
	if c.CloseMenu != nil {
		c.CloseMenu(m, allMenusAreClosing)
	}
}

// OnOpenSubMenu implements Callback.
func (c CallbackFuncs) OnOpenSubMenu(sub *Menu) bool {
	if c.OpenSubMenu != nil {
		return c.OpenSubMenu(sub)
	}
	return true
}
