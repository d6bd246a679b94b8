// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package escape

import (
	"errors"
	"sync"
	"time"

	"github.com/jongio/escapehatch/clock"
	"github.com/jongio/escapehatch/logutil"
	"github.com/jongio/escapehatch/target"
	"github.com/jongio/escapehatch/uaclass"
)

// ErrStopped is returned by operations on an orchestrator that was torn down.
var ErrStopped = errors.New("orchestrator stopped")

// Navigator executes steps. Implementations must not block; a step is
// fire-and-forget.
type Navigator interface {
	// Perform executes one escape step.
	Perform(step Step)
	// Navigate sends the user straight to url.
	Navigate(url string)
}

// Fired records a step that was performed.
type Fired struct {
	Step Step `json:"step"`
	// Offset is the time since Start (or the latest Retry).
	Offset time.Duration `json:"offset"`
}

// Options configures an Orchestrator.
type Options struct {
	Navigator   Navigator
	Clock       clock.Clock
	Timings     Timings
	PlanOptions PlanOptions
	// OnPhase is called after each phase change, outside the internal lock.
	OnPhase func(Phase)
	Logger  *logutil.ComponentLogger
}

// Orchestrator drives one page load through the phase machine.
type Orchestrator struct {
	nav     Navigator
	sched   *Scheduler
	timings Timings
	planOpt PlanOptions
	onPhase func(Phase)
	log     *logutil.ComponentLogger

	mu       sync.Mutex
	phase    Phase
	reason   ManualReason
	env      uaclass.Environment
	target   target.Target
	plan     Plan
	started  time.Time
	fired    []Fired
	handles  []*Handle
	stopped  bool
	attempts int
}

// New returns an idle Orchestrator. Zero Timings fall back to
// DefaultTimings.
func New(opts Options) *Orchestrator {
	if opts.Timings == (Timings{}) {
		opts.Timings = DefaultTimings()
	}
	if opts.Logger == nil {
		opts.Logger = logutil.NewLogger("escape")
	}
	return &Orchestrator{
		nav:     opts.Navigator,
		sched:   NewScheduler(opts.Clock),
		timings: opts.Timings,
		planOpt: opts.PlanOptions,
		onPhase: opts.OnPhase,
		log:     opts.Logger,
		phase:   PhaseIdle,
	}
}

// Start classifies the page load and either navigates immediately or begins
// the escape plan. It may be called once.
func (o *Orchestrator) Start(env uaclass.Environment, tgt target.Target) error {
	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		return ErrStopped
	}
	var notes []Phase
	if err := o.setPhase(PhaseDetecting, &notes); err != nil {
		o.mu.Unlock()
		return err
	}
	o.env = env
	o.target = tgt

	if Decide(env) == DecisionImmediate {
		_ = o.setPhase(PhaseImmediate, &notes)
		o.mu.Unlock()

		o.log.Debug("navigating immediately", "platform", env.Platform, "browser", env.Browser, "url", tgt.URL)
		o.notify(notes)
		if o.nav != nil {
			o.nav.Navigate(tgt.URL)
		}
		return nil
	}

	o.plan = BuildPlan(env, tgt, o.timings, o.planOpt)
	_ = o.setPhase(PhaseRedirecting, &notes)
	o.mu.Unlock()

	o.log.Debug("starting escape", "platform", env.Platform, "host", env.Host, "steps", len(o.plan.Steps))
	o.notify(notes)
	o.launch()
	return nil
}

// Retry reruns the escape plan from the manual phase.
func (o *Orchestrator) Retry() error {
	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		return ErrStopped
	}
	var notes []Phase
	if err := o.setPhase(PhaseRedirecting, &notes); err != nil {
		o.mu.Unlock()
		return err
	}
	o.reason = ReasonNone
	o.mu.Unlock()

	o.log.Debug("retrying escape", "platform", o.plan.Platform)
	o.notify(notes)
	o.launch()
	return nil
}

// Stop tears the orchestrator down. Pending timers are cancelled and no
// further phase changes or steps happen.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.stopped = true
	o.cancelAll()
}

// Phase returns the current phase.
func (o *Orchestrator) Phase() Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase
}

// ManualReason returns why the manual phase was entered, or ReasonNone.
func (o *Orchestrator) ManualReason() ManualReason {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.reason
}

// Plan returns the plan built by Start. It is empty for immediate loads.
func (o *Orchestrator) Plan() Plan {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.plan
}

// Fired returns a copy of the steps performed so far.
func (o *Orchestrator) Fired() []Fired {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]Fired, len(o.fired))
	copy(out, o.fired)
	return out
}

// Attempts returns how many times the plan has been launched.
func (o *Orchestrator) Attempts() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.attempts
}

// launch starts the timeout and the step sequence. The first step runs
// synchronously, so the lock must not be held here.
func (o *Orchestrator) launch() {
	o.mu.Lock()
	if o.stopped || o.phase != PhaseRedirecting {
		o.mu.Unlock()
		return
	}
	o.attempts++
	o.started = o.sched.Clock().Now()
	plan := o.plan
	timeout := o.sched.After(plan.Timeout, func() { o.toManual(ReasonTimeout) })
	o.handles = append(o.handles, timeout)
	o.mu.Unlock()

	entries := make([]Entry, len(plan.Steps))
	for i, step := range plan.Steps {
		step := step // per-iteration copy; module targets go 1.21 loop semantics
		entries[i] =Entry{Action: func() { o.perform(step) }, Delay: plan.StepDelay}
	}
	var done func()
	if plan.ManualOnExhaustion {
		done = func() { o.toManual(ReasonExhausted) }
	}
	seq := o.sched.Schedule(entries, done)

	o.mu.Lock()
	if o.stopped || o.phase != PhaseRedirecting {
		seq.Cancel()
	} else {
		o.handles = append(o.handles, seq)
	}
	o.mu.Unlock()
}

func (o *Orchestrator) perform(step Step) {
	o.mu.Lock()
	if o.stopped || o.phase != PhaseRedirecting {
		o.mu.Unlock()
		return
	}
	o.fired = append(o.fired, Fired{Step: step, Offset: o.sched.Clock().Now().Sub(o.started)})
	o.mu.Unlock()

	o.log.Debug("performing step", "step", step.Name, "kind", step.Kind)
	if o.nav != nil {
		o.nav.Perform(step)
	}
}

// toManual is the single exit from redirecting. Whichever of timeout and
// exhaustion arrives first wins; the other finds the phase already moved.
func (o *Orchestrator) toManual(reason ManualReason) {
	o.mu.Lock()
	if o.stopped || o.phase != PhaseRedirecting {
		o.mu.Unlock()
		return
	}
	var notes []Phase
	_ = o.setPhase(PhaseManual, &notes)
	o.reason = reason
	o.cancelAll()
	o.mu.Unlock()

	o.log.Debug("showing manual instructions", "reason", reason)
	o.notify(notes)
}

// cancelAll cancels every outstanding handle. Caller must hold mu.
func (o *Orchestrator) cancelAll() {
	for _, h := range o.handles {
		h.Cancel()
	}
	o.handles = nil
}

// setPhase validates and applies a transition. Caller must hold mu.
func (o *Orchestrator) setPhase(to Phase, notes *[]Phase) error {
	if err := checkTransition(o.phase, to); err != nil {
		return err
	}
	o.phase = to
	*notes = append(*notes, to)
	return nil
}

func (o *Orchestrator) notify(phases []Phase) {
	if o.onPhase == nil {
		return
	}
	for _, p := range phases {
		o.onPhase(p)
	}
}
