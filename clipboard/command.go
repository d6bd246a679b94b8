// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package clipboard

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/jongio/escapehatch/pathutil"
)

// DefaultCommandTimeout bounds a single clipboard command.
const DefaultCommandTimeout = 5 * time.Second

// Command is a clipboard program that reads the text on stdin.
type Command struct {
	Name string
	Args []string
}

// DefaultCommands returns the candidates for goos in preference order.
func DefaultCommands(goos string) []Command {
	switch goos {
	case "darwin":
		return []Command{{Name: "pbcopy"}}
	case "windows":
		return []Command{{Name: "clip"}}
	default:
		return []Command{
			{Name: "wl-copy"},
			{Name: "xclip", Args: []string{"-selection", "clipboard"}},
			{Name: "xsel", Args: []string{"--clipboard", "--input"}},
		}
	}
}

// CommandWriter pipes text into the first available clipboard program.
type CommandWriter struct {
	Commands []Command
	// LookPath resolves a program name; nil uses pathutil.LookPath, which
	// also checks common install directories.
	LookPath func(string) (string, error)
	Timeout  time.Duration
}

// NewCommandWriter returns a writer with the candidates for the running OS.
func NewCommandWriter() *CommandWriter {
	return &CommandWriter{Commands: DefaultCommands(runtime.GOOS)}
}

// Resolve returns the first candidate found on PATH.
func (w *CommandWriter) Resolve() (Command, string, error) {
	lookPath := w.LookPath
	if lookPath == nil {
		lookPath = pathutil.LookPath
	}
	for _, c := range w.Commands {
		if path, err := lookPath(c.Name); err == nil {
			return c, path, nil
		}
	}
	return Command{}, "", ErrNoWriter
}

// Write runs the resolved program with text on stdin and waits for it.
func (w *CommandWriter) Write(ctx context.Context, text string) error {
	c, path, err := w.Resolve()
	if err != nil {
		return err
	}

	timeout := w.Timeout
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, c.Args...)
	cmd.Stdin = strings.NewReader(text)
	cmd.Env = os.Environ()

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s failed: %w (%s)", c.Name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
