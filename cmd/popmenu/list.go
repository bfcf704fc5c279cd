package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/popmenu/internal/output"
)

var listOpts struct {
	format          string
	template        string
	overflow        bool
	noIndex         bool
	noIcon          bool
	includeDisabled bool
	submenus        bool
	separator       string
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the menu as a flat list",
	Long: `Print every item of the menu, submenus included, one per line.

The default dmenu format is suitable for fuzzel, walker, rofi, etc. Items
inside submenus are prefixed with their submenu titles.

Examples:
  # Pick an item with fuzzel and print its id
  popmenu list --format ids

  # Only the items an overflow button would show
  popmenu list --overflow

  # Custom line template
  popmenu list --template '{{.Index}} {{join .Path "/"}} {{.Title}}'`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listOpts.format, "format", "f", "dmenu",
		"Output format (dmenu, json, plain, ids)")
	listCmd.Flags().StringVar(&listOpts.template, "template", "",
		"Go template for dmenu/plain lines")
	listCmd.Flags().BoolVar(&listOpts.overflow, "overflow", false,
		"Only list overflow items")
	listCmd.Flags().BoolVar(&listOpts.noIndex, "no-index", false,
		"Hide the index column")
	listCmd.Flags().BoolVar(&listOpts.noIcon, "no-icon", false,
		"Hide the icon column")
	listCmd.Flags().BoolVar(&listOpts.includeDisabled, "disabled", false,
		"Include disabled items")
	listCmd.Flags().BoolVar(&listOpts.submenus, "submenus", false,
		"Include items that open a submenu")
	listCmd.Flags().StringVar(&listOpts.separator, "separator", " | ",
		"Field separator for dmenu format")
}

func runList(cmd *cobra.Command, args []string) error {
	m, err := loadMenu()
	if err != nil {
		return err
	}

	opts := output.DefaultFormatterOptions()
	opts.Template = listOpts.template
	opts.ShowIndex = !listOpts.noIndex
	opts.ShowIcon = !listOpts.noIcon
	opts.IncludeDisabled = listOpts.includeDisabled
	opts.LeavesOnly = !listOpts.submenus
	opts.Separator = listOpts.separator

	formatter, err := output.NewFormatter(output.FormatType(listOpts.format), opts)
	if err != nil {
		return err
	}

	overflowOnly := listOpts.overflow
	if !cmd.Flags().Changed("overflow") && cfg != nil {
		overflowOnly = cfg.Popup.OverflowOnly
	}

	return formatter.Format(os.Stdout, m.Flatten(overflowOnly))
}
