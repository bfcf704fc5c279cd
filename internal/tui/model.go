// Package tui provides the BubbleTea-based terminal host for popup menus.
package tui

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/popmenu/internal/config"
	"github.com/jmylchreest/popmenu/internal/environment"
	"github.com/jmylchreest/popmenu/internal/gravity"
	"github.com/jmylchreest/popmenu/internal/menu"
	"github.com/jmylchreest/popmenu/internal/popup"
	"github.com/jmylchreest/popmenu/internal/theme"
	"github.com/jmylchreest/popmenu/internal/view"
)

// gravities is the cycle for the gravity key. It steps the horizontal part
// only; vertical flags from the config are kept.
var gravities = []gravity.Gravity{
	gravity.Start,
	gravity.End,
	gravity.Left,
	gravity.Right,
	gravity.CenterHorizontal,
}

// Anchor indexes into Model.anchors.
const (
	anchorMenu = iota
	anchorOverflow
)

// activity is shared with helper callbacks, which outlive any single copy
// of Model.
type activity struct {
	now         func() time.Time
	lastDismiss time.Time
	dismissals  int
	lastClosed  string
}

// Model is the main TUI model.
type Model struct {
	// Configuration
	env    *environment.Environment
	logger *slog.Logger
	root   *menu.Menu

	// Anchors and the helpers bound to them
	anchors []*view.Box
	helpers []*popup.Helper
	focus   int
	canvas  *view.Box
	context *popup.Helper

	// Helper whose popup is (or was last) showing
	active *popup.Helper

	// Settings applied to the next popup
	grav      gravity.Gravity
	forceIcon bool
	rtl       bool

	// State
	activity *activity
	lastItem menu.Item
	width    int
	height   int
	ready    bool

	// Components
	keys     KeyMap
	help     help.Model
	showHelp bool

	// Status message
	statusMsg string
	statusErr bool
}

// New creates a new TUI model presenting root.
func New(env *environment.Environment, root *menu.Menu, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	if env == nil {
		env = environment.New(nil, logger)
	}
	if root == nil {
		root = menu.Sample()
	}

	m := Model{
		env:      env,
		logger:   logger,
		root:     root,
		activity: &activity{now: time.Now},
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}

	pc := env.Config().Popup
	m.anchors = []*view.Box{
		view.NewBox("menu", 0, 0, 0, 1),
		view.NewBox("overflow", 0, 0, 0, 1),
	}
	m.helpers = []*popup.Helper{
		m.newHelper(root, m.anchors[anchorMenu], pc.OverflowOnly),
		m.newHelper(root, m.anchors[anchorOverflow], true),
	}
	m.canvas = view.NewBox("canvas", 0, 1, 0, 0)
	m.context = m.newHelper(root, m.canvas, pc.OverflowOnly)

	m.applyConfig(env.Config())
	return m
}

// newHelper creates a helper reporting into the model's shared activity.
func (m Model) newHelper(mn *menu.Menu, anchor view.View, overflowOnly bool) *popup.Helper {
	pc := m.env.Config().Popup
	h := popup.NewHelper(m.env, mn, popup.Options{
		Anchor:       anchor,
		OverflowOnly: overflowOnly,
		StyleAttr:    pc.StyleAttr,
		StyleRes:     pc.StyleRes,
		Logger:       m.logger,
	})

	act := m.activity
	h.SetCallback(menu.CallbackFuncs{
		CloseMenu: func(closed *menu.Menu, all bool) {
			if all {
				act.lastClosed = closed.Title
			}
		},
	})
	h.SetOnDismissListener(func() {
		act.lastDismiss = act.now()
		act.dismissals++
	})
	return h
}

// applyConfig resets the per-popup settings from cfg.
func (m *Model) applyConfig(cfg *config.Config) {
	m.grav = cfg.GravityValue()
	m.forceIcon = cfg.Popup.ForceShowIcon
	m.applySettings()
}

// applySettings pushes gravity, icon and direction settings to every
// helper. Live popups keep the values they were created with.
func (m *Model) applySettings() {
	dir := gravity.LTR
	if m.rtl {
		dir = gravity.RTL
	}
	for _, b := range m.anchors {
		b.Direction = dir
	}
	m.canvas.Direction = dir

	for _, h := range m.allHelpers() {
		h.SetGravity(m.gravity())
		h.SetForceShowIcon(m.forceIcon)
	}
}

func (m Model) allHelpers() []*popup.Helper {
	hs := append([]*popup.Helper{}, m.helpers...)
	hs = append(hs, m.context)
	if m.active != nil && !containsHelper(hs, m.active) {
		hs = append(hs, m.active)
	}
	return hs
}

func containsHelper(hs []*popup.Helper, h *popup.Helper) bool {
	for _, x := range hs {
		if x == h {
			return true
		}
	}
	return false
}

func (m Model) gravity() gravity.Gravity {
	return m.grav
}

// nextGravity moves g's horizontal part to the next entry of the cycle.
// A horizontal value outside the cycle moves to its first entry.
func nextGravity(g gravity.Gravity) gravity.Gravity {
	horizontal := g & (gravity.HorizontalMask | gravity.RelativeLayoutDirection)
	vertical := g &^ horizontal

	next := gravities[0]
	for i, candidate := range gravities {
		if candidate == horizontal {
			next = gravities[(i+1)%len(gravities)]
			break
		}
	}
	return next | vertical
}

// showing reports whether a popup is currently open.
func (m Model) showing() bool {
	return m.active != nil && m.active.IsShowing()
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return nil
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

type copyResultMsg struct {
	id  string
	err error
}

// configReloadedMsg is sent by the config watcher.
type configReloadedMsg struct {
	cfg *config.Config
}

// themesReloadedMsg is sent by the theme watcher.
type themesReloadedMsg struct {
	names []string
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case configReloadedMsg:
		m.env.Update(msg.cfg)
		m.applyConfig(msg.cfg)
		return m, func() tea.Msg {
			return statusMsg{text: "Config reloaded"}
		}

	case themesReloadedMsg:
		text := "Theme reloaded: " + strings.Join(msg.names, ", ")
		return m, func() tea.Msg {
			return statusMsg{text: text}
		}

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			return m, func() tea.Msg {
				return statusMsg{text: "Copy failed: " + msg.err.Error(), isErr: true}
			}
		}
		text := fmt.Sprintf("Copied item id %q", msg.id)
		return m, func() tea.Msg {
			return statusMsg{text: text}
		}
	}

	return m, nil
}

// layout assigns anchor bounds for the current window size. The menu
// button sits at the left of the toolbar, the overflow button at the right
// and the canvas fills the space between the toolbar and the status lines.
func (m *Model) layout() {
	menuLabel := m.anchorLabel(anchorMenu)
	overflowLabel := m.anchorLabel(anchorOverflow)

	mw := lipgloss.Width(menuLabel)
	ow := lipgloss.Width(overflowLabel)

	m.anchors[anchorMenu].SetBounds(image.Rect(1, 0, 1+mw, 1))
	m.anchors[anchorOverflow].SetBounds(image.Rect(m.width-1-ow, 0, m.width-1, 1))
	m.canvas.SetBounds(image.Rect(0, 1, m.width, max(1, m.bodyHeight())))
}

// bodyHeight is the number of rows above the status and help lines.
func (m Model) bodyHeight() int {
	return max(0, m.height-2)
}

func (m Model) anchorLabel(i int) string {
	if i == anchorOverflow {
		return " ⋮ "
	}
	return " " + m.root.Title + " ▾ "
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.CycleGravity):
		m.grav = nextGravity(m.grav)
		m.applySettings()
		return m, nil

	case key.Matches(msg, m.keys.ToggleCascading):
		m.env.SetCascadingSubmenus(!m.env.CascadingSubmenusEnabled())
		return m, nil

	case key.Matches(msg, m.keys.ToggleIcons):
		m.forceIcon = !m.forceIcon
		m.applySettings()
		return m, nil

	case key.Matches(msg, m.keys.ToggleRTL):
		m.rtl = !m.rtl
		m.applySettings()
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyLastItem()
	}

	if m.showing() {
		return m.handlePopupKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Left):
		m.focus = (m.focus + len(m.anchors) - 1) % len(m.anchors)
	case key.Matches(msg, m.keys.Right):
		m.focus = (m.focus + 1) % len(m.anchors)
	case key.Matches(msg, m.keys.Open):
		return m.open(m.helpers[m.focus])
	}
	return m, nil
}

// handlePopupKey drives the showing popup's navigator.
func (m Model) handlePopupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	nav, ok := m.active.Popup().(popup.Navigator)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		nav.MoveUp()
	case key.Matches(msg, m.keys.Down):
		nav.MoveDown()
	case key.Matches(msg, m.keys.Select):
		if item, done := nav.Select(); done {
			return m.activate(item)
		}
	case key.Matches(msg, m.keys.Back):
		nav.Back()
	}
	return m, nil
}

// activate handles an item returned by a popup that has just closed. A
// submenu handed back by a single-level popup is opened in its own popup on
// the same anchor.
func (m Model) activate(item menu.Item) (tea.Model, tea.Cmd) {
	if item.HasSubmenu() {
		sub := m.newHelper(item.Submenu, m.active.Anchor(), false)
		sub.SetGravity(m.gravity())
		sub.SetForceShowIcon(m.forceIcon)
		return m.open(sub)
	}

	m.lastItem = item
	m.logger.Debug("menu item activated", "id", item.ID)
	text := fmt.Sprintf("Activated %q", item.Title)
	return m, func() tea.Msg {
		return statusMsg{text: text}
	}
}

// open shows h's popup at its anchor.
func (m Model) open(h *popup.Helper) (tea.Model, tea.Cmd) {
	if m.showing() {
		m.active.Dismiss()
	}
	m.active = h
	if err := h.Show(); err != nil {
		return m, func() tea.Msg {
			return statusMsg{text: err.Error(), isErr: true}
		}
	}
	return m, nil
}

// handleMouse opens a context popup on right click and dismisses the
// showing popup when clicking outside it.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	pt := image.Pt(msg.X, msg.Y)

	switch msg.Button {
	case tea.MouseButtonLeft:
		if m.showing() && m.popupContains(pt) {
			return m, nil
		}
		for i, b := range m.anchors {
			if pt.In(b.Bounds()) {
				m.focus = i
				if m.showing() && m.active == m.helpers[i] {
					m.active.Dismiss()
					return m, nil
				}
				return m.open(m.helpers[i])
			}
		}
		if m.showing() {
			m.active.Dismiss()
		}

	case tea.MouseButtonRight:
		if !pt.In(m.canvas.Bounds()) {
			return m, nil
		}
		if m.showing() {
			m.active.Dismiss()
		}
		m.active = m.context
		a := m.canvas.Bounds()
		if err := m.context.ShowAt(pt.X-a.Min.X, pt.Y-a.Max.Y); err != nil {
			return m, func() tea.Msg {
				return statusMsg{text: err.Error(), isErr: true}
			}
		}
	}
	return m, nil
}

func (m Model) popupContains(pt image.Point) bool {
	r, ok := m.active.Popup().(popup.Renderer)
	if !ok {
		return false
	}
	for _, l := range r.Layers() {
		box := image.Rect(l.X, l.Y, l.X+lipgloss.Width(l.Content), l.Y+lipgloss.Height(l.Content))
		if pt.In(box) {
			return true
		}
	}
	return false
}

func (m Model) copyLastItem() tea.Cmd {
	if m.lastItem.ID == "" {
		return func() tea.Msg {
			return statusMsg{text: "Nothing activated yet", isErr: true}
		}
	}
	id := m.lastItem.ID
	cfg := m.env.Config()
	return func() tea.Msg {
		return copyResultMsg{id: id, err: copyText(id, cfg)}
	}
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	body := canvas(m.width, m.bodyHeight())
	body = m.renderToolbar(body)
	if m.showing() {
		if r, ok := m.active.Popup().(popup.Renderer); ok {
			body = composeLayers(body, r.Layers())
		}
	}

	return body + "\n" + m.renderStatus() + "\n" + m.renderHelp()
}

func (m Model) renderToolbar(body string) string {
	normal := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	focused := lipgloss.NewStyle().Reverse(true)

	for i, b := range m.anchors {
		st := normal
		if i == m.focus {
			st = focused
		}
		r := b.Bounds()
		body = placeOverlay(r.Min.X, r.Min.Y, st.Render(m.anchorLabel(i)), body)
	}
	return body
}

func (m Model) renderStatus() string {
	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		return statusStyle.Render(m.statusMsg)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.statusLine())
}

// statusLine describes the settings the next popup will use.
func (m Model) statusLine() string {
	dir := gravity.LTR
	if m.rtl {
		dir = gravity.RTL
	}
	parts := []string{
		"gravity " + m.gravity().String(),
		"cascading " + onOff(m.env.CascadingSubmenusEnabled()),
		"icons " + onOff(m.forceIcon),
		dir.String(),
	}
	if m.lastItem.ID != "" {
		parts = append(parts, "last "+m.lastItem.ID)
	}
	if act := m.activity; act.dismissals > 0 {
		parts = append(parts, fmt.Sprintf("closed %q %s",
			act.lastClosed, humanize.RelTime(act.lastDismiss, act.now(), "ago", "from now")))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderHelp() string {
	if m.showing() && !m.showHelp {
		return m.help.ShortHelpView(m.keys.PopupHelp())
	}
	return m.help.View(m.keys)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// RunOptions configures the TUI.
type RunOptions struct {
	Environment *environment.Environment
	Menu        *menu.Menu
	Logger      *slog.Logger
	ConfigPath  string // Path to watch for changes (empty = no watching)
	WatchThemes bool   // Reload user themes when their files change
}

// Run starts the TUI with the given options.
func Run(opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := New(opts.Environment, opts.Menu, logger)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	// Start config watcher if a path was provided
	var watcher *config.Watcher
	if opts.ConfigPath != "" {
		var err error
		watcher, err = config.NewWatcher(opts.ConfigPath, func(cfg *config.Config) {
			p.Send(configReloadedMsg{cfg: cfg})
		}, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to create config watcher: %v\n", err)
		} else if err := watcher.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to start config watcher: %v\n", err)
		}
	}

	var themeWatcher *theme.Watcher
	if opts.WatchThemes && m.env.Themes() != nil {
		themeWatcher = theme.NewWatcher(m.env.Themes(), logger)
		themeWatcher.SetChangeCallback(func(names []string) {
			p.Send(themesReloadedMsg{names: names})
		})
		if err := themeWatcher.Start(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to start theme watcher: %v\n", err)
		}
	}

	_, err := p.Run()

	// Stop watchers on exit
	if watcher != nil {
		_ = watcher.Stop()
	}
	if themeWatcher != nil {
		themeWatcher.Stop()
	}

	return err
}
