package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/popmenu/internal/menu"
)

var getOpts struct {
	field    string
	overflow bool
}

var getCmd = &cobra.Command{
	Use:   "get [index|id|line]",
	Short: "Resolve a menu item by index, id or list line",
	Long: `Resolve a single menu item and print one of its fields.

The argument may be a 1-based index, an item id, or a whole line as printed
by "popmenu list" (the leading index is used). Without an argument the
first line of stdin is read, so the output of a launcher can be piped in.

Examples:
  popmenu list | fuzzel --dmenu | popmenu get
  popmenu get 4 --field title
  popmenu get share-mail --field json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringVar(&getOpts.field, "field", "id",
		"Field to print (id, title, path, icon, json)")
	getCmd.Flags().BoolVar(&getOpts.overflow, "overflow", false,
		"Resolve against the overflow-only list")
}

func runGet(cmd *cobra.Command, args []string) error {
	m, err := loadMenu()
	if err != nil {
		return err
	}

	key := ""
	if len(args) > 0 {
		key = args[0]
	} else {
		key, err = readFirstLine(os.Stdin)
		if err != nil {
			return err
		}
	}

	e, err := resolveEntry(m.Flatten(getOpts.overflow), key)
	if err != nil {
		return err
	}
	return printField(os.Stdout, e, getOpts.field)
}

func readFirstLine(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("no selection on stdin")
}

// resolveEntry finds the entry named by key: an id, an index, or a list
// line whose first field is the index.
func resolveEntry(entries []menu.Entry, key string) (menu.Entry, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return menu.Entry{}, fmt.Errorf("empty selection")
	}

	if e, ok := menu.LookupByID(entries, key); ok {
		return e, nil
	}

	first := key
	if i := strings.IndexAny(key, " |\t"); i >= 0 {
		first = key[:i]
	}
	if idx, err := strconv.Atoi(first); err == nil {
		if e, ok := menu.LookupByIndex(entries, idx); ok {
			return e, nil
		}
		return menu.Entry{}, fmt.Errorf("no menu item at index %d", idx)
	}

	return menu.Entry{}, fmt.Errorf("no menu item matches %q", key)
}

func printField(w io.Writer, e menu.Entry, field string) error {
	var out string
	switch strings.ToLower(field) {
	case "id":
		out = e.ID
	case "title":
		out = e.Title
	case "icon":
		out = e.Icon
	case "path":
		out = strings.Join(append(append([]string{}, e.Path...), e.Title), " > ")
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(e)
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	_, err := fmt.Fprintln(w, out)
	return err
}
