// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package escape

import (
	"fmt"

	"github.com/jongio/escapehatch/uaclass"
)

// Manual is the copy shown when automatic escape did not take.
type Manual struct {
	// Browser is the browser the user is asked to open, "Safari" or "Chrome".
	Browser  string   `json:"browser"`
	Tagline  string   `json:"tagline"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Steps    []string `json:"steps"`
	Hint     string   `json:"hint"`
	// CopyLabel and CopiedLabel are the two states of the copy button.
	CopyLabel   string `json:"copyLabel"`
	CopiedLabel string `json:"copiedLabel"`
}

// Instructions returns the manual instructions tailored to env.
func Instructions(env uaclass.Environment) Manual {
	browser := "Chrome"
	steps := []string{
		"Tap ⋮ in the top right corner",
		`Select "Open in Chrome"`,
	}
	if env.Platform == uaclass.PlatformIOS {
		browser = "Safari"
		steps = []string{
			"Tap the ••• or Share button",
			`Select "Open in Safari"`,
		}
	}

	return Manual{
		Browser:     browser,
		Tagline:     "One more step",
		Title:       "Open in " + browser,
		Subtitle:    fmt.Sprintf("%s doesn't support all features. Open in %s for the best experience.", currentBrowser(env), browser),
		Steps:       steps,
		Hint:        fmt.Sprintf("Paste in %s to continue", browser),
		CopyLabel:   "Copy",
		CopiedLabel: "Copied!",
	}
}

// currentBrowser names what the user is looking at right now.
func currentBrowser(env uaclass.Environment) string {
	if env.Host.Named() {
		return env.Host.DisplayName() + "'s browser"
	}
	if !env.InApp && env.Browser != uaclass.BrowserUnknown && env.Browser != uaclass.BrowserInApp {
		return env.Browser.DisplayName()
	}
	return "This browser"
}
