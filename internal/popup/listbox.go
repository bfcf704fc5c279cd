package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/popmenu/internal/menu"
)

// listBox is one visible menu level: the items of a menu and the
// highlighted row.
type listBox struct {
	menu     *menu.Menu
	items    []menu.Item
	selected int
}

func newListBox(m *menu.Menu, overflowOnly bool) *listBox {
	lb := &listBox{menu: m}
	if m != nil {
		lb.items = m.Visible(overflowOnly)
	}
	lb.selected = lb.next(-1, 1)
	return lb
}

// next returns the first enabled index after from in direction dir,
// wrapping around. It returns from when nothing is selectable.
func (lb *listBox) next(from, dir int) int {
	n := len(lb.items)
	if n == 0 {
		return -1
	}
	i := from
	for step := 0; step < n; step++ {
		i = ((i+dir)%n + n) % n
		if !lb.items[i].Disabled {
			return i
		}
	}
	return from
}

func (lb *listBox) moveUp() {
	lb.selected = lb.next(lb.selected, -1)
}

func (lb *listBox) moveDown() {
	lb.selected = lb.next(lb.selected, 1)
}

func (lb *listBox) current() (menu.Item, bool) {
	if lb.selected < 0 || lb.selected >= len(lb.items) {
		return menu.Item{}, false
	}
	it := lb.items[lb.selected]
	if it.Disabled {
		return menu.Item{}, false
	}
	return it, true
}

// render draws the box. The title row is included only when showTitle is
// set and the menu has a title.
func (lb *listBox) render(style Style, showTitle, forceShowIcon bool) string {
	icons := forceShowIcon || (lb.menu != nil && lb.menu.HasIcons())

	var rows []string
	if showTitle && lb.menu != nil && lb.menu.Title != "" {
		rows = append(rows, style.Title.Render(lb.menu.Title))
	}

	for i, it := range lb.items {
		var b strings.Builder
		if icons {
			icon := it.Icon
			if icon == "" {
				icon = " "
			}
			b.WriteString(icon)
			b.WriteString(" ")
		}
		b.WriteString(it.Title)
		if it.HasSubmenu() {
			b.WriteString(" ▸")
		}

		rowStyle := style.Item
		switch {
		case it.Disabled:
			rowStyle = style.Disabled
		case i == lb.selected:
			rowStyle = style.Selected
		}
		rows = append(rows, rowStyle.Render(b.String()))
	}

	if len(rows) == 0 {
		rows = append(rows, style.Disabled.Render("(empty)"))
	}

	// Pad rows to a common width so highlights span the box.
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r))
	}
	for i, r := range rows {
		if pad := width - lipgloss.Width(r); pad > 0 {
			rows[i] = r + strings.Repeat(" ", pad)
		}
	}

	return style.Box.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// rowOffset returns the line of the selected row inside the rendered box,
// counting the top border and the title row.
func (lb *listBox) rowOffset(showTitle bool) int {
	off := 1
	if showTitle && lb.menu != nil && lb.menu.Title != "" {
		off++
	}
	return off + max(lb.selected, 0)
}
