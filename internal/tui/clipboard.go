package tui

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/jmylchreest/popmenu/internal/config"
)

// ErrNoClipboard is returned when no clipboard command is configured or
// found on PATH.
var ErrNoClipboard = errors.New("no clipboard command found; set [clipboard] command in the config")

const clipboardTimeout = 5 * time.Second

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// candidates are tried in order when [clipboard] command is empty.
var clipboardCandidates = []struct {
	bin     string
	command string
}{
	{"wl-copy", "wl-copy"},
	{"xclip", "xclip -selection clipboard"},
	{"xsel", "xsel --clipboard --input"},
}

// copyText pipes an item id into the clipboard command.
func copyText(text string, cfg *config.Config) error {
	command := detectClipboardCommand(cfg)
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return ErrNoClipboard
	}

	ctx, cancel := context.WithTimeout(context.Background(), clipboardTimeout)
	defer cancel()

	c := exec.CommandContext(ctx, parts[0], parts[1:]...)
	c.Stdin = strings.NewReader(text)
	if err := c.Run(); err != nil {
		return fmt.Errorf("clipboard command %q: %w", command, err)
	}
	return nil
}

// detectClipboardCommand returns [clipboard] command, or the first of
// wl-copy, xclip and xsel found on PATH.
func detectClipboardCommand(cfg *config.Config) string {
	if cfg != nil && strings.TrimSpace(cfg.Clipboard.Command) != "" {
		return cfg.Clipboard.Command
	}
	for _, c := range clipboardCandidates {
		if _, err := lookPath(c.bin); err == nil {
			return c.command
		}
	}
	return ""
}
