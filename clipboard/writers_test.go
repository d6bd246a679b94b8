// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package clipboard

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSC52Writer(t *testing.T) {
	var buf bytes.Buffer
	w := &OSC52Writer{Out: &buf, IsTerminal: func() bool { return true }}

	require.NoError(t, w.Write(context.Background(), exampleURL))
	want := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(exampleURL)) + "\a"
	assert.Equal(t, want, buf.String())
}

func TestOSC52Writer_NotTerminal(t *testing.T) {
	var buf bytes.Buffer
	w := &OSC52Writer{Out: &buf}

	err := w.Write(context.Background(), exampleURL)
	assert.ErrorIs(t, err, ErrNotTerminal)
	assert.Empty(t, buf.String())
}

func TestOSC52Writer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w := &OSC52Writer{Out: &bytes.Buffer{}, IsTerminal: func() bool { return true }}
	assert.ErrorIs(t, w.Write(ctx, exampleURL), context.Canceled)
}

func TestDefaultCommands(t *testing.T) {
	tests := []struct {
		goos  string
		first string
		count int
	}{
		{"darwin", "pbcopy", 1},
		{"windows", "clip", 1},
		{"linux", "wl-copy", 3},
		{"freebsd", "wl-copy", 3},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			cmds := DefaultCommands(tt.goos)
			require.Len(t, cmds, tt.count)
			assert.Equal(t, tt.first, cmds[0].Name)
		})
	}
}

func TestCommandWriter_Resolve(t *testing.T) {
	w := &CommandWriter{
		Commands: DefaultCommands("linux"),
		LookPath: func(name string) (string, error) {
			if name == "xsel" {
				return "/usr/bin/xsel", nil
			}
			return "", exec.ErrNotFound
		},
	}

	c, path, err := w.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "xsel", c.Name)
	assert.Equal(t, "/usr/bin/xsel", path)
}

func TestCommandWriter_NoneAvailable(t *testing.T) {
	w := &CommandWriter{
		Commands: DefaultCommands("linux"),
		LookPath: func(string) (string, error) { return "", exec.ErrNotFound },
	}

	err := w.Write(context.Background(), exampleURL)
	assert.True(t, errors.Is(err, ErrNoWriter))
}
