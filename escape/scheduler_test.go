// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package escape

import (
	"testing"
	"time"

	"github.com/jongio/escapehatch/clock"
	"github.com/stretchr/testify/assert"
)

func TestScheduler_Schedule(t *testing.T) {
	c := clock.NewFake(time.Unix(0, 0))
	s := NewScheduler(c)

	var got []string
	record := func(name string) func() { return func() { got = append(got, name) } }

	h := s.Schedule([]Entry{
		{Action: record("a"), Delay: 100 * time.Millisecond},
		{Action: record("b"), Delay: 50 * time.Millisecond},
		{Action: record("c"), Delay: 10 * time.Millisecond},
	}, record("done"))

	assert.Equal(t, []string{"a"}, got)
	c.Advance(100 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, got)
	c.Advance(59 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.False(t, h.Done())
	c.Advance(1 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c", "done"}, got)
	assert.True(t, h.Done())
}

func TestScheduler_Cancel(t *testing.T) {
	c := clock.NewFake(time.Unix(0, 0))
	s := NewScheduler(c)

	var got []string
	h := s.Schedule([]Entry{
		{Action: func() { got = append(got, "a") }, Delay: time.Second},
		{Action: func() { got = append(got, "b") }, Delay: time.Second},
	}, func() { got = append(got, "done") })

	h.Cancel()
	h.Cancel()
	c.Advance(time.Minute)

	assert.Equal(t, []string{"a"}, got)
	assert.True(t, h.Cancelled())
	assert.False(t, h.Done())
	assert.Zero(t, c.Pending())
}

func TestScheduler_After(t *testing.T) {
	c := clock.NewFake(time.Unix(0, 0))
	s := NewScheduler(c)

	fired := 0
	h := s.After(time.Second, func() { fired++ })
	c.Advance(999 * time.Millisecond)
	assert.Zero(t, fired)
	c.Advance(time.Millisecond)
	assert.Equal(t, 1, fired)
	assert.True(t, h.Done())

	cancelled := s.After(time.Second, func() { fired++ })
	cancelled.Cancel()
	c.Advance(time.Hour)
	assert.Equal(t, 1, fired)
}

func TestScheduler_EmptySequence(t *testing.T) {
	s := NewScheduler(clock.NewFake(time.Unix(0, 0)))
	done := false
	h := s.Schedule(nil, func() { done = true })
	assert.True(t, done)
	assert.True(t, h.Done())
}
