// Package main provides the CLI entrypoint for popmenu.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/popmenu/internal/config"
	"github.com/jmylchreest/popmenu/internal/menu"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		menuFile   string
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "popmenu",
	Short: "Anchored popup menus for the terminal",
	Long: `popmenu shows menus as popups anchored to a point on screen.

Menus open below their anchor, aligned by a gravity (start, end, left, right,
center), either as a single box or as a cascade of submenus.

Running popmenu without a subcommand launches the interactive TUI.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Setup logging
		setupLogger()

		// Load configuration
		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
	// Default to TUI when no subcommand is provided
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/popmenu/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&globalOpts.menuFile, "menu", "m", "",
		"Path to a YAML menu definition (default: [menu] file, or the built-in sample)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// configPath returns the config file in use.
func configPath() string {
	if globalOpts.configPath != "" {
		return globalOpts.configPath
	}
	return config.ConfigPath()
}

// loadMenu returns the menu named by --menu, then by the config, falling
// back to the built-in sample.
func loadMenu() (*menu.Menu, error) {
	path := globalOpts.menuFile
	if path == "" && cfg != nil {
		path = cfg.Menu.File
	}
	if path == "" {
		return menu.Sample(), nil
	}

	m, err := menu.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded menu", "path", path, "items", len(m.Items))
	return m, nil
}
