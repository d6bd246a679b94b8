// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package uaclass

import (
	"strings"

	"github.com/jongio/escapehatch/logutil"
)

// Hints carries secondary identification sources.
type Hints struct {
	// Vendor is the browser vendor string (navigator.vendor). It is used
	// only when the user-agent string is empty.
	Vendor string
}

// Classify derives the Environment for a user-agent string.
// Unknown and empty strings classify as Desktop/Unknown with every in-app
// flag false.
func Classify(userAgent string) Environment {
	return ClassifyWithHints(userAgent, Hints{})
}

// ClassifyWithHints is Classify with fallback identification sources.
func ClassifyWithHints(userAgent string, hints Hints) Environment {
	ua := strings.TrimSpace(userAgent)
	if ua == "" {
		ua = strings.TrimSpace(hints.Vendor)
	}

	sig := detectSignals(ua)

	env := Environment{
		UserAgent: userAgent,
		Platform:  PlatformDesktop,
		Product:   detectProduct(ua, sig),
		Signals:   sig,
	}
	switch {
	case sig.IOS:
		env.Platform = PlatformIOS
	case sig.Android:
		env.Platform = PlatformAndroid
	}

	switch {
	case len(sig.Hosts) > 0:
		env.Host = sig.Hosts[0]
	case sig.WebView || sig.IOSWebView:
		env.Host = HostWebView
	}

	env.InApp = env.Host != HostNone
	if env.InApp {
		env.Browser = BrowserInApp
	} else {
		env.Browser = env.Product
	}

	if env.IsMobile() {
		expected := env.ExpectedDefault()
		env.NonDefault = env.Product != expected
		env.DefaultBrowser = !env.InApp && env.Browser == expected
	}

	logutil.Debug("classified user agent",
		"platform", env.Platform,
		"browser", env.Browser,
		"product", env.Product,
		"host", env.Host,
		"inApp", env.InApp,
		"nonDefault", env.NonDefault,
	)

	return env
}

func detectSignals(ua string) Signals {
	var sig Signals
	if ua == "" {
		return sig
	}

	if !windowsPhonePattern.MatchString(ua) {
		sig.IOS = iosPattern.MatchString(ua)
		sig.Android = !sig.IOS && androidPattern.MatchString(ua)
	}

	sig.WebView = androidWebViewPattern.MatchString(ua)
	// iOS embedded views usually drop the Safari token and carry no other
	// distinguishing mark.
	sig.IOSWebView = sig.IOS && !safariTokenPattern.MatchString(ua)

	for _, hp := range hostPatterns {
		if hp.pattern.MatchString(ua) {
			sig.Hosts = append(sig.Hosts, hp.host)
		}
	}

	return sig
}

func detectProduct(ua string, sig Signals) Browser {
	for _, pp := range productPatterns {
		if !pp.pattern.MatchString(ua) {
			continue
		}
		// A bare Safari token on Android is the legacy stock browser or a
		// WebView, not Safari.
		if pp.browser == BrowserSafari && sig.Android {
			return BrowserUnknown
		}
		return pp.browser
	}
	return BrowserUnknown
}
