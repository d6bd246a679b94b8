// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package escape

import (
	"errors"
	"fmt"
)

// Phase is what the user currently sees.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseDetecting   Phase = "detecting"
	PhaseRedirecting Phase = "redirecting"
	PhaseImmediate   Phase = "immediate"
	PhaseManual      Phase = "manual"
)

// ErrInvalidTransition is returned when an operation would move the phase
// machine backwards or out of a terminal phase.
var ErrInvalidTransition = errors.New("invalid phase transition")

// transitions lists the allowed moves. Manual -> Redirecting exists only for
// an explicit user retry.
var transitions = map[Phase][]Phase{
	PhaseIdle:        {PhaseDetecting},
	PhaseDetecting:   {PhaseRedirecting, PhaseImmediate},
	PhaseRedirecting: {PhaseManual},
	PhaseManual:      {PhaseRedirecting},
}

// CanTransition reports whether from -> to is a legal move.
func CanTransition(from, to Phase) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether automatic flow stops in p.
func (p Phase) IsTerminal() bool {
	return p == PhaseImmediate || p == PhaseManual
}

func checkTransition(from, to Phase) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// ManualReason records why the manual phase was entered.
type ManualReason string

const (
	ReasonNone ManualReason = ""
	// ReasonTimeout means the fallback timer fired first.
	ReasonTimeout ManualReason = "timeout"
	// ReasonExhausted means every step fired and the page is still here.
	ReasonExhausted ManualReason = "exhausted"
)
