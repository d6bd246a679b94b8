// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package clipboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jongio/escapehatch/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleURL = "https://example.com/?code=ABC"

type memWriter struct {
	got []string
	err error
}

func (m *memWriter) Write(_ context.Context, text string) error {
	if m.err != nil {
		return m.err
	}
	m.got = append(m.got, text)
	return nil
}

func TestCopier_Primary(t *testing.T) {
	c := clock.NewFake(time.Unix(0, 0))
	primary, fallback := &memWriter{}, &memWriter{}
	copier := &Copier{Primary: primary, Fallback: fallback, Clock: c}

	require.True(t, copier.Copy(context.Background(), exampleURL))
	assert.Equal(t, []string{exampleURL}, primary.got)
	assert.Empty(t, fallback.got)
	assert.True(t, copier.Copied())

	c.Advance(1999 * time.Millisecond)
	assert.True(t, copier.Copied())
	c.Advance(time.Millisecond)
	assert.False(t, copier.Copied())
}

func TestCopier_ForcedFallback(t *testing.T) {
	c := clock.NewFake(time.Unix(0, 0))
	primary := &memWriter{err: errors.New("clipboard API unavailable")}
	fallback := &memWriter{}
	copier := &Copier{Primary: primary, Fallback: fallback, Clock: c}

	require.True(t, copier.Copy(context.Background(), exampleURL))
	assert.Empty(t, primary.got)
	assert.Equal(t, []string{exampleURL}, fallback.got)
	assert.True(t, copier.Copied())

	c.Advance(2 * time.Second)
	assert.False(t, copier.Copied())
}

func TestCopier_BothFail(t *testing.T) {
	c := clock.NewFake(time.Unix(0, 0))
	copier := &Copier{
		Primary:  &memWriter{err: errors.New("denied")},
		Fallback: &memWriter{err: errors.New("denied")},
		Clock:    c,
	}

	assert.False(t, copier.Copy(context.Background(), exampleURL))
	assert.False(t, copier.Copied())
	assert.Zero(t, c.Pending())
}

func TestCopier_NilWriters(t *testing.T) {
	copier := &Copier{Clock: clock.NewFake(time.Unix(0, 0))}
	assert.False(t, copier.Copy(context.Background(), exampleURL))
}

func TestCopier_RepeatRestartsWindow(t *testing.T) {
	c := clock.NewFake(time.Unix(0, 0))
	copier := &Copier{Primary: &memWriter{}, Clock: c, AckDuration: time.Second}

	require.True(t, copier.Copy(context.Background(), exampleURL))
	c.Advance(800 * time.Millisecond)
	require.True(t, copier.Copy(context.Background(), exampleURL))

	c.Advance(800 * time.Millisecond)
	assert.True(t, copier.Copied(), "second copy restarts the window")
	c.Advance(200 * time.Millisecond)
	assert.False(t, copier.Copied())
	assert.Zero(t, c.Pending())
}

func TestWriterFunc(t *testing.T) {
	var got string
	w := WriterFunc(func(_ context.Context, text string) error {
		got = text
		return nil
	})
	require.NoError(t, w.Write(context.Background(), exampleURL))
	assert.Equal(t, exampleURL, got)
}
