// Package menu holds the menu model shown by popups.
package menu

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Validation errors.
var (
	ErrEmptyItemID    = errors.New("item id cannot be empty")
	ErrEmptyItemTitle = errors.New("item title cannot be empty")
	ErrDuplicateID    = errors.New("duplicate item id")
)

// Item is a single menu entry. An item with a Submenu opens it instead of
// being invoked.
type Item struct {
	ID       string `yaml:"id" json:"id"`
	Title    string `yaml:"title" json:"title"`
	Icon     string `yaml:"icon,omitempty" json:"icon,omitempty"`
	Overflow bool   `yaml:"overflow,omitempty" json:"overflow,omitempty"` // Did not fit in the toolbar
	Disabled bool   `yaml:"disabled,omitempty" json:"disabled,omitempty"`
	Submenu  *Menu  `yaml:"-" json:"submenu,omitempty"`
}

// HasSubmenu reports whether the item opens a nested menu.
func (i Item) HasSubmenu() bool {
	return i.Submenu != nil && len(i.Submenu.Items) > 0
}

// Menu is an ordered list of items with an optional header title.
type Menu struct {
	Title string `json:"title,omitempty"`
	Items []Item `json:"items"`

	parent *Menu
}

// New creates a menu with the given title and items.
func New(title string, items ...Item) *Menu {
	m := &Menu{Title: title, Items: items}
	m.link()
	return m
}

// link sets parent pointers for nested menus.
func (m *Menu) link() {
	for i := range m.Items {
		if sub := m.Items[i].Submenu; sub != nil {
			sub.parent = m
			sub.link()
		}
	}
}

// Parent returns the menu this one is a submenu of, or nil for a root.
func (m *Menu) Parent() *Menu {
	return m.parent
}

// Root returns the outermost menu.
func (m *Menu) Root() *Menu {
	root := m
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// Visible returns the items shown in a popup. When overflowOnly is set only
// items flagged as overflow are included. Submenu items never sit in a
// toolbar, so the flag only filters a root menu.
func (m *Menu) Visible(overflowOnly bool) []Item {
	if !overflowOnly || m.parent != nil {
		return m.Items
	}
	items := make([]Item, 0, len(m.Items))
	for _, it := range m.Items {
		if it.Overflow {
			items = append(items, it)
		}
	}
	return items
}

// HasIcons reports whether any item carries an icon.
func (m *Menu) HasIcons() bool {
	for _, it := range m.Items {
		if it.Icon != "" {
			return true
		}
	}
	return false
}

// Find returns the item with the given id, searching submenus depth first.
func (m *Menu) Find(id string) (Item, bool) {
	for _, it := range m.Items {
		if it.ID == id {
			return it, true
		}
		if it.Submenu != nil {
			if found, ok := it.Submenu.Find(id); ok {
				return found, true
			}
		}
	}
	return Item{}, false
}

// Validate checks ids and titles across the whole tree.
func (m *Menu) Validate() error {
	seen := make(map[string]bool)
	return m.validate(seen)
}

func (m *Menu) validate(seen map[string]bool) error {
	for _, it := range m.Items {
		if strings.TrimSpace(it.ID) == "" {
			return ErrEmptyItemID
		}
		if strings.TrimSpace(it.Title) == "" {
			return fmt.Errorf("%w: %s", ErrEmptyItemTitle, it.ID)
		}
		if seen[it.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, it.ID)
		}
		seen[it.ID] = true
		if it.Submenu != nil {
			if err := it.Submenu.validate(seen); err != nil {
				return err
			}
		}
	}
	return nil
}

// yamlMenu and yamlItem mirror the on-disk format, where a submenu is written
// as a nested items list.
type yamlMenu struct {
	Title string     `yaml:"title"`
	Items []yamlItem `yaml:"items"`
}

type yamlItem struct {
	ID       string     `yaml:"id"`
	Title    string     `yaml:"title"`
	Icon     string     `yaml:"icon"`
	Overflow bool       `yaml:"overflow"`
	Disabled bool       `yaml:"disabled"`
	Items    []yamlItem `yaml:"items"`
}

func (y yamlItem) toItem() Item {
	it := Item{
		ID:       y.ID,
		Title:    y.Title,
		Icon:     y.Icon,
		Overflow: y.Overflow,
		Disabled: y.Disabled,
	}
	if len(y.Items) > 0 {
		sub := &Menu{Title: y.Title}
		for _, child := range y.Items {
			sub.Items = append(sub.Items, child.toItem())
		}
		it.Submenu = sub
	}
	return it
}

// Parse decodes a YAML menu definition.
func Parse(data []byte) (*Menu, error) {
	var ym yamlMenu
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return nil, fmt.Errorf("failed to parse menu: %w", err)
	}

	items := make([]Item, 0, len(ym.Items))
	for _, y := range ym.Items {
		items = append(items, y.toItem())
	}

	m := New(ym.Title, items...)
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid menu: %w", err)
	}
	return m, nil
}

// Load reads a YAML menu definition from path.
func Load(path string) (*Menu, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu file: %w", err)
	}
	return Parse(data)
}

// Sample returns the built-in menu used when no menu file is configured.
func Sample() *Menu {
	return New("Actions",
		Item{ID: "new", Title: "New", Icon: "+"},
		Item{ID: "open", Title: "Open…", Icon: "o"},
		Item{ID: "recent", Title: "Open Recent", Submenu: New("Open Recent",
			Item{ID: "recent-1", Title: "notes.md"},
			Item{ID: "recent-2", Title: "todo.txt"},
		)},
		Item{ID: "share", Title: "Share", Overflow: true, Submenu: New("Share",
			Item{ID: "share-link", Title: "Copy link"},
			Item{ID: "share-mail", Title: "Email"},
		)},
		Item{ID: "settings", Title: "Settings", Icon: "*", Overflow: true},
		Item{ID: "about", Title: "About", Overflow: true, Disabled: true},
	)
}
