package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/popmenu/internal/config"
	"github.com/jmylchreest/popmenu/internal/environment"
	"github.com/jmylchreest/popmenu/internal/gravity"
	"github.com/jmylchreest/popmenu/internal/menu"
	"github.com/jmylchreest/popmenu/internal/popup"
	"github.com/jmylchreest/popmenu/internal/tui"
	"github.com/jmylchreest/popmenu/internal/view"
)

var renderOpts struct {
	anchor    string
	at        string
	gravity   string
	rtl       bool
	cascading bool
	icons     bool
	overflow  bool
	width     int
	height    int
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a single popup frame to stdout",
	Long: `Render one frame with the menu's popup open against an anchor.

The anchor is given as X,Y,W,H in cells. Without --at the popup opens below
the anchor; with --at x,y it opens at that offset from the anchor's
bottom-left corner and shows the menu title.

Examples:
  # Popup below a 10 cell wide button at the top left
  popmenu render --anchor 2,0,10,1

  # Right-aligned popup with the top-right corner at the offset
  popmenu render --anchor 0,0,60,1 --at 40,2 --gravity right`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVar(&renderOpts.anchor, "anchor", "0,0,10,1",
		"Anchor bounds as X,Y,W,H")
	renderCmd.Flags().StringVar(&renderOpts.at, "at", "",
		"Show at an x,y offset from the anchor")
	renderCmd.Flags().StringVar(&renderOpts.gravity, "gravity", "",
		"Popup gravity, e.g. start, end, right (default: [popup] gravity)")
	renderCmd.Flags().BoolVar(&renderOpts.rtl, "rtl", false,
		"Lay the anchor out right-to-left")
	renderCmd.Flags().BoolVar(&renderOpts.cascading, "cascading", false,
		"Use cascading submenus (default: [popup] cascading_submenus)")
	renderCmd.Flags().BoolVar(&renderOpts.icons, "icons", false,
		"Force the icon column")
	renderCmd.Flags().BoolVar(&renderOpts.overflow, "overflow", false,
		"Show only overflow items")
	renderCmd.Flags().IntVar(&renderOpts.width, "width", 80,
		"Frame width in cells")
	renderCmd.Flags().IntVar(&renderOpts.height, "height", 24,
		"Frame height in cells")
}

func runRender(cmd *cobra.Command, args []string) error {
	m, err := loadMenu()
	if err != nil {
		return err
	}

	// Flags override the config file
	rc := *cfg
	if cmd.Flags().Changed("gravity") {
		rc.Popup.Gravity = renderOpts.gravity
	}
	if cmd.Flags().Changed("cascading") {
		rc.Popup.CascadingSubmenus = renderOpts.cascading
	}
	if cmd.Flags().Changed("icons") {
		rc.Popup.ForceShowIcon = renderOpts.icons
	}
	if cmd.Flags().Changed("overflow") {
		rc.Popup.OverflowOnly = renderOpts.overflow
	}
	if err := rc.Validate(); err != nil {
		return err
	}

	anchor, err := parseAnchor(renderOpts.anchor)
	if err != nil {
		return err
	}
	if renderOpts.rtl {
		anchor.Direction = gravity.RTL
	}

	var at []int
	if renderOpts.at != "" {
		at, err = parseInts(renderOpts.at, 2)
		if err != nil {
			return fmt.Errorf("invalid --at: %w", err)
		}
	}

	return renderFrame(os.Stdout, &rc, m, anchor, at, renderOpts.width, renderOpts.height)
}

// renderFrame writes one frame with m's popup open against anchor. A nil at
// shows the popup with Show, otherwise with ShowAt(at[0], at[1]).
func renderFrame(w io.Writer, rc *config.Config, m *menu.Menu, anchor *view.Box, at []int, width, height int) error {
	env := environment.New(rc, logger)
	h := popup.NewHelper(env, m, popup.Options{
		Anchor:       anchor,
		OverflowOnly: rc.Popup.OverflowOnly,
		StyleAttr:    rc.Popup.StyleAttr,
		StyleRes:     rc.Popup.StyleRes,
		Logger:       logger,
	})
	h.SetGravity(rc.GravityValue())
	h.SetForceShowIcon(rc.Popup.ForceShowIcon)

	var err error
	if at != nil {
		err = h.ShowAt(at[0], at[1])
	} else {
		err = h.Show()
	}
	if err != nil {
		return err
	}
	defer h.Dismiss()

	layers := []popup.Layer{anchorLayer(anchor)}
	if r, ok := h.Popup().(popup.Renderer); ok {
		layers = append(layers, r.Layers()...)
	}

	_, err = fmt.Fprintln(w, tui.Compose(width, height, layers))
	return err
}

// anchorLayer draws the anchor as a labelled block.
func anchorLayer(b *view.Box) popup.Layer {
	r := b.Bounds()
	content := lipgloss.NewStyle().
		Reverse(true).
		Width(r.Dx()).
		Height(r.Dy()).
		MaxWidth(r.Dx()).
		MaxHeight(r.Dy()).
		Render(b.Name)
	return popup.Layer{X: r.Min.X, Y: r.Min.Y, Content: content}
}

func parseAnchor(s string) (*view.Box, error) {
	v, err := parseInts(s, 4)
	if err != nil {
		return nil, fmt.Errorf("invalid --anchor: %w", err)
	}
	if v[2] <= 0 || v[3] <= 0 {
		return nil, fmt.Errorf("invalid --anchor: width and height must be positive")
	}
	return view.NewBox("anchor", v[0], v[1], v[2], v[3]), nil
}

// parseInts parses exactly n comma separated integers.
func parseInts(s string, n int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma separated values, got %q", n, s)
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", p)
		}
		out[i] = v
	}
	return out, nil
}
