package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoWatchFlag(t *testing.T) {
	t.Cleanup(func() { tuiOpts.noWatch = false })

	tests := []struct {
		name string
		set  func() error
	}{
		{"root", func() error { return rootCmd.Flags().Parse([]string{"--no-watch"}) }},
		{"tui", func() error { return tuiCmd.Flags().Parse([]string{"--no-watch"}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tuiOpts.noWatch = false
			require.NoError(t, tt.set())
			assert.True(t, tuiOpts.noWatch)
		})
	}
}
