// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package clock abstracts timer scheduling so that timer-driven code can be
// driven deterministically in tests.
package clock

import "time"

// Timer is a pending callback. Stop prevents it from firing and reports
// whether it was still pending.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks after a delay.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Real returns a Clock backed by the time package. Callbacks run on their
// own goroutine, as with time.AfterFunc.
func Real() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
