// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package clipboard

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrNotTerminal is returned by OSC52Writer when its output is not a
// terminal.
var ErrNotTerminal = errors.New("output is not a terminal")

// OSC52Writer sets the clipboard through the OSC 52 terminal escape
// sequence. It works over SSH in most modern terminal emulators.
type OSC52Writer struct {
	Out io.Writer
	// IsTerminal overrides terminal detection; nil checks Out's descriptor.
	IsTerminal func() bool
}

// NewOSC52Writer returns a writer that targets stdout.
func NewOSC52Writer() *OSC52Writer {
	return &OSC52Writer{Out: os.Stdout}
}

// Write emits the escape sequence carrying text.
func (w *OSC52Writer) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.Out == nil || !w.isTerminal() {
		return ErrNotTerminal
	}

	seq := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\a"
	if _, err := io.WriteString(w.Out, seq); err != nil {
		return fmt.Errorf("failed to write OSC 52 sequence: %w", err)
	}
	return nil
}

func (w *OSC52Writer) isTerminal() bool {
	if w.IsTerminal != nil {
		return w.IsTerminal()
	}
	f, ok := w.Out.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
