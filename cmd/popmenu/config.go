package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/popmenu/internal/config"
	"github.com/jmylchreest/popmenu/internal/theme"
)

var configInitOpts struct {
	force bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the config file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), configPath())
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeDefaultConfig(configPath(), configInitOpts.force)
	},
}

var configThemesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List bundled and user themes",
	Long: `List the themes that style_attr and style_res can name.

Themes are TOML files with the same keys as a [styles] table, plus an
optional inherit key naming a theme to extend. Files in the user themes
directory override bundled themes of the same name.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listThemes(cmd.OutOrStdout(), theme.NewDefaultLoader(logger))
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configInitCmd, configThemesCmd)

	configInitCmd.Flags().BoolVarP(&configInitOpts.force, "force", "f", false,
		"Overwrite an existing config file")
}

// writeDefaultConfig writes the default config to path, refusing to
// overwrite an existing file unless force is set.
func writeDefaultConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	logger.Info("wrote default config", "path", path)
	return nil
}

// listThemes writes one line per theme with where it resolves from.
func listThemes(w io.Writer, l *theme.Loader) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, name := range l.List() {
		fmt.Fprintf(tw, "%s\t%s\n", name, l.Source(name))
	}
	return tw.Flush()
}
