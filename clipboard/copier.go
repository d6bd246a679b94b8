// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package clipboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jongio/escapehatch/clock"
	"github.com/jongio/escapehatch/logutil"
)

// DefaultAckDuration is how long Copied reports true after a copy.
const DefaultAckDuration = 2 * time.Second

// ErrNoWriter is returned when no clipboard mechanism is available.
var ErrNoWriter = errors.New("no clipboard writer available")

// Writer places text on a clipboard.
type Writer interface {
	Write(ctx context.Context, text string) error
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(ctx context.Context, text string) error

// Write calls f.
func (f WriterFunc) Write(ctx context.Context, text string) error {
	return f(ctx, text)
}

// Copier writes text through a primary and a fallback Writer.
type Copier struct {
	Primary  Writer
	Fallback Writer
	// Clock drives the acknowledgment window. Nil means the real clock.
	Clock clock.Clock
	// AckDuration defaults to DefaultAckDuration.
	AckDuration time.Duration

	mu     sync.Mutex
	copied bool
	ack    clock.Timer
	gen    int
}

// Copy writes text and reports whether either path succeeded.
func (c *Copier) Copy(ctx context.Context, text string) bool {
	log := logutil.NewLogger("clipboard")

	err := write(ctx, c.Primary, text)
	if err != nil {
		log.Debug("primary clipboard write failed", "error", err)
		err = write(ctx, c.Fallback, text)
	}
	if err != nil {
		log.Debug("fallback clipboard write failed", "error", err)
		return false
	}

	c.acknowledge()
	return true
}

// Copied reports whether a copy succeeded within the acknowledgment window.
func (c *Copier) Copied() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copied
}

// acknowledge raises the flag and restarts the window.
func (c *Copier) acknowledge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clk := c.Clock
	if clk == nil {
		clk = clock.Real()
	}
	d := c.AckDuration
	if d <= 0 {
		d = DefaultAckDuration
	}

	if c.ack != nil {
		c.ack.Stop()
	}
	c.copied = true
	c.gen++
	gen := c.gen
	c.ack = clk.AfterFunc(d, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.gen == gen {
			c.copied = false
			c.ack = nil
		}
	})
}

func write(ctx context.Context, w Writer, text string) error {
	if w == nil {
		return ErrNoWriter
	}
	return w.Write(ctx, text)
}
