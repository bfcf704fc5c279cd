package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/popmenu/internal/environment"
	"github.com/jmylchreest/popmenu/internal/tui"
)

var tuiOpts struct {
	noWatch bool
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive popup menu demo",
	Long: `Launch the interactive terminal user interface.

The toolbar holds a menu button on the left and an overflow button on the
right. Right-clicking anywhere below the toolbar opens a context popup at
the pointer.

Changes to the config file and to user themes are picked up while running
and apply to the next popup that opens.

Key bindings:
  ←/→         Move between toolbar buttons
  enter       Open the focused button's menu
  j/k, ↑/↓    Move within a popup
  enter       Select (opens submenus)
  esc         Close the innermost popup level
  g           Cycle gravity
  c           Toggle cascading submenus
  i           Toggle forced icon column
  r           Toggle right-to-left layout
  y           Copy the last selected item id
  ?           Show help
  q           Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	// The root command runs the TUI too, so it takes the same flags.
	for _, flags := range []*pflag.FlagSet{tuiCmd.Flags(), rootCmd.Flags()} {
		flags.BoolVar(&tuiOpts.noWatch, "no-watch", false,
			"Do not reload the config file or themes when they change")
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	m, err := loadMenu()
	if err != nil {
		return err
	}

	watchPath := configPath()
	if tuiOpts.noWatch {
		watchPath = ""
	}

	return tui.Run(tui.RunOptions{
		Environment: environment.New(cfg, logger),
		Menu:        m,
		Logger:      logger,
		ConfigPath:  watchPath,
		WatchThemes: !tuiOpts.noWatch,
	})
}
