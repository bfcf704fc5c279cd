package menu

// Entry is one item of a flattened menu tree.
type Entry struct {
	Index      int      `json:"index"` // 1-based, in depth-first order
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Icon       string   `json:"icon,omitempty"`
	Path       []string `json:"path,omitempty"` // Titles of the enclosing submenus
	Depth      int      `json:"depth"`
	Overflow   bool     `json:"overflow,omitempty"`
	Disabled   bool     `json:"disabled,omitempty"`
	HasSubmenu bool     `json:"has_submenu,omitempty"`
}

// Flatten walks the tree depth first and returns every item the popup would
// list, honoring overflowOnly the same way Visible does.
func (m *Menu) Flatten(overflowOnly bool) []Entry {
	var entries []Entry
	m.flatten(overflowOnly, nil, &entries)
	return entries
}

func (m *Menu) flatten(overflowOnly bool, path []string, out *[]Entry) {
	for _, it := range m.Visible(overflowOnly) {
		*out = append(*out, Entry{
			Index:      len(*out) + 1,
			ID:         it.ID,
			Title:      it.Title,
			Icon:       it.Icon,
			Path:       path,
			Depth:      len(path),
			Overflow:   it.Overflow,
			Disabled:   it.Disabled,
			HasSubmenu: it.HasSubmenu(),
		})
		if it.HasSubmenu() {
			sub := append(append([]string{}, path...), it.Title)
			it.Submenu.flatten(overflowOnly, sub, out)
		}
	}
}

// LookupByID finds an entry by item id.
func LookupByID(entries []Entry, id string) (Entry, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// LookupByIndex finds an entry by its 1-based Index.
func LookupByIndex(entries []Entry, index int) (Entry, bool) {
	for _, e := range entries {
		if e.Index == index {
			return e, true
		}
	}
	return Entry{}, false
}
