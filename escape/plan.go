// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package escape

import (
	"strings"
	"time"

	"github.com/jongio/escapehatch/target"
	"github.com/jongio/escapehatch/uaclass"
	"github.com/jongio/escapehatch/urlutil"
)

// Decision is the top-level branch taken after classification.
type Decision string

const (
	// DecisionImmediate navigates straight to the target.
	DecisionImmediate Decision = "immediate"
	// DecisionEscape runs the escape plan.
	DecisionEscape Decision = "escape"
)

// Decide navigates immediately on desktop and in the platform default
// browser; anything else on mobile (in-app or a non-default browser) tries
// to escape.
func Decide(env uaclass.Environment) Decision {
	if !env.IsMobile() || env.DefaultBrowser {
		return DecisionImmediate
	}
	return DecisionEscape
}

// StepKind says how a step is executed by the page.
type StepKind string

const (
	// KindLocation assigns the URL to the top-level location.
	KindLocation StepKind = "location"
	// KindAnchorBlank clicks a synthesised <a target="_blank"
	// rel="noopener noreferrer"> element.
	KindAnchorBlank StepKind = "anchor-blank"
	// KindWindowOpenSystem calls window.open(url, "_system").
	KindWindowOpenSystem StepKind = "window-open-system"
)

// Step is one fire-and-forget escape attempt. None of them report success;
// the page being unloaded is the only sign one worked.
type Step struct {
	Name string   `json:"name"`
	Kind StepKind `json:"kind"`
	URL  string   `json:"url"`
}

// Plan is the ordered escape sequence for one page load.
type Plan struct {
	Platform uaclass.Platform `json:"platform"`
	Steps    []Step           `json:"steps"`
	// StepDelay separates consecutive steps, and the last step from the
	// exhaustion signal.
	StepDelay time.Duration `json:"stepDelay"`
	// Timeout forces the manual phase regardless of sequence progress.
	Timeout time.Duration `json:"timeout"`
	// ManualOnExhaustion moves to manual once every step has fired.
	ManualOnExhaustion bool `json:"manualOnExhaustion"`
}

// Empty reports whether the plan has nothing to try.
func (p Plan) Empty() bool {
	return len(p.Steps) == 0
}

// Timings holds the delays that drive the page.
type Timings struct {
	IOSStepDelay   time.Duration `json:"iosStepDelay" yaml:"iosStepDelay" toml:"iosStepDelay"`
	IOSTimeout     time.Duration `json:"iosTimeout" yaml:"iosTimeout" toml:"iosTimeout"`
	AndroidTimeout time.Duration `json:"androidTimeout" yaml:"androidTimeout" toml:"androidTimeout"`
	CopiedAck      time.Duration `json:"copiedAck" yaml:"copiedAck" toml:"copiedAck"`
}

// DefaultTimings returns the production delays.
func DefaultTimings() Timings {
	return Timings{
		IOSStepDelay:   250 * time.Millisecond,
		IOSTimeout:     2 * time.Second,
		AndroidTimeout: 1500 * time.Millisecond,
		CopiedAck:      2 * time.Second,
	}
}

// PlanOptions tunes the generated steps.
type PlanOptions struct {
	// ShortcutName is the iOS Shortcuts automation invoked by the shortcut
	// deep link.
	ShortcutName string
	// AndroidPackage is the browser package named in the intent URL.
	AndroidPackage string
}

const (
	DefaultShortcutName   = "Open in Safari"
	DefaultAndroidPackage = "com.android.chrome"
)

func (o PlanOptions) withDefaults() PlanOptions {
	if o.ShortcutName == "" {
		o.ShortcutName = DefaultShortcutName
	}
	if o.AndroidPackage == "" {
		o.AndroidPackage = DefaultAndroidPackage
	}
	return o
}

// BuildPlan returns the escape sequence for env. Desktop environments get an
// empty plan.
func BuildPlan(env uaclass.Environment, tgt target.Target, timings Timings, opts PlanOptions) Plan {
	opts = opts.withDefaults()

	switch env.Platform {
	case uaclass.PlatformIOS:
		return Plan{
			Platform:           env.Platform,
			Steps:              iosSteps(tgt, opts),
			StepDelay:          timings.IOSStepDelay,
			Timeout:            timings.IOSTimeout,
			ManualOnExhaustion: true,
		}
	case uaclass.PlatformAndroid:
		return Plan{
			Platform: env.Platform,
			Steps:    []Step{{Name: "intent", Kind: KindLocation, URL: IntentURL(tgt, opts.AndroidPackage)}},
			Timeout:  timings.AndroidTimeout,
		}
	default:
		return Plan{Platform: env.Platform}
	}
}

// iOS has no dependable way to force Safari open from an embedded view.
// These are tried in order; most are no-ops on current iOS versions.
func iosSteps(tgt target.Target, opts PlanOptions) []Step {
	return []Step{
		{Name: "x-safari-https", Kind: KindLocation, URL: "x-safari-https://" + tgt.HostAndPath},
		{Name: "x-safari", Kind: KindLocation, URL: "x-safari-" + tgt.URL},
		{Name: "shortcuts", Kind: KindLocation, URL: ShortcutURL(tgt, opts.ShortcutName)},
		{Name: "anchor-blank", Kind: KindAnchorBlank, URL: tgt.URL},
		{Name: "window-open-system", Kind: KindWindowOpenSystem, URL: tgt.URL},
	}
}

// IntentURL builds an Android intent URL asking pkg to open the target.
func IntentURL(tgt target.Target, pkg string) string {
	scheme := "https"
	if strings.HasPrefix(tgt.URL, "http://") {
		scheme = "http"
	}
	return "intent://" + tgt.HostAndPath + "#Intent;scheme=" + scheme + ";package=" + pkg + ";end"
}

// ShortcutURL builds the Shortcuts x-callback deep link that runs the named
// shortcut with the target URL as text input.
func ShortcutURL(tgt target.Target, shortcut string) string {
	return "shortcuts://x-callback-url/run-shortcut?name=" + urlutil.EncodeURIComponent(shortcut) +
		"&input=text&text=" + urlutil.EncodeURIComponent(tgt.URL)
}

// DestinationStep is the plain navigation used for immediate redirects and
// the "continue anyway" link.
func DestinationStep(tgt target.Target) Step {
	return Step{Name: "destination", Kind: KindLocation, URL: tgt.URL}
}
