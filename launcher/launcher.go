// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package launcher

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/browser"

	"github.com/jongio/escapehatch/logutil"
	"github.com/jongio/escapehatch/urlutil"
)

// Target selects where a URL is opened.
type Target string

const (
	// TargetDefault uses the system default browser
	TargetDefault Target = "default"
	// TargetSystem uses the system default browser (alias for TargetDefault)
	TargetSystem Target = "system"
	// TargetNone disables browser launching
	TargetNone Target = "none"
)

// openURL is swapped in tests.
var openURL = browser.OpenURL

func init() {
	// Keep xdg-open and friends from writing into the server's terminal.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

// ValidTargets returns all valid browser target values.
func ValidTargets() []Target {
	return []Target{TargetDefault, TargetSystem, TargetNone}
}

// IsValid checks if a target string is valid.
func IsValid(target string) bool {
	t := Target(target)
	for _, valid := range ValidTargets() {
		if t == valid {
			return true
		}
	}
	return false
}

// ResolveTarget maps default to system and keeps none.
func ResolveTarget(target Target) Target {
	if target == TargetNone {
		return TargetNone
	}
	return TargetSystem
}

// LaunchOptions contains options for launching a browser.
type LaunchOptions struct {
	URL    string
	Target Target
	// Timeout bounds how long the launch may take before it is reported as
	// failed (default 5 seconds). The browser itself keeps running.
	Timeout time.Duration
}

// Launch opens the URL without blocking. Only http and https URLs are
// accepted; failures are logged, not returned, once validation passes.
func Launch(opts LaunchOptions) error {
	if opts.Timeout == 0 {
		opts.Timeout = 5 * time.Second
	}
	if err := urlutil.Validate(opts.URL); err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if ResolveTarget(opts.Target) == TargetNone {
		return nil
	}

	go func() {
		if err := launchSync(opts.URL, opts.Timeout); err != nil {
			logutil.Warn("could not open browser automatically", "url", opts.URL, "error", err)
		}
	}()
	return nil
}

func launchSync(url string, timeout time.Duration) error {
	done := make(chan error, 1)
	go func() { done <- openURL(url) }()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return fmt.Errorf("timed out after %s", timeout)
	}
}

// GetTargetDisplayName returns a human-readable name for the browser target.
func GetTargetDisplayName(target Target) string {
	if ResolveTarget(target) == TargetNone {
		return "none"
	}
	return "default browser"
}

// FormatValidTargets returns a comma-separated list of valid targets.
func FormatValidTargets() string {
	targets := ValidTargets()
	strs := make([]string, len(targets))
	for i, t := range targets {
		strs[i] = string(t)
	}
	return strings.Join(strs, ", ")
}
