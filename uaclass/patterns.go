// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package uaclass

import "regexp"

var (
	iosPattern     = regexp.MustCompile(`iPad|iPhone|iPod`)
	androidPattern = regexp.MustCompile(`(?i)android`)
	// Windows Phone user agents impersonate both iOS and Android.
	windowsPhonePattern = regexp.MustCompile(`Windows Phone|IEMobile`)

	androidWebViewPattern = regexp.MustCompile(`\bwv\b|(?i:WebView)`)
	safariTokenPattern    = regexp.MustCompile(`(?i)Safari`)
)

type hostPattern struct {
	host    Host
	pattern *regexp.Regexp
}

// hostPatterns is checked in order; the first match names the host.
// Messenger precedes Facebook because Messenger user agents also carry the
// FBAN/FBAV tokens.
var hostPatterns = []hostPattern{
	{HostInstagram, regexp.MustCompile(`(?i)Instagram|IGWC`)},
	{HostMessenger, regexp.MustCompile(`(?i)MessengerForiOS|MessengerLiteForiOS|FBAV.*Messenger|Orca-Android|\bMessenger\b`)},
	{HostFacebook, regexp.MustCompile(`(?i)FBAN|FBAV|FB_IAB|FBIOS|FBSS`)},
	{HostTwitter, regexp.MustCompile(`(?i)Twitter`)},
	{HostLinkedIn, regexp.MustCompile(`(?i)LinkedInApp`)},
	{HostTikTok, regexp.MustCompile(`(?i)BytedanceWebview|TikTok|musical_ly`)},
	{HostSnapchat, regexp.MustCompile(`(?i)Snapchat`)},
	{HostPinterest, regexp.MustCompile(`(?i)Pinterest`)},
	{HostLine, regexp.MustCompile(`(?i)\bLine/`)},
	{HostWeChat, regexp.MustCompile(`MicroMessenger`)},
}

type productPattern struct {
	browser Browser
	pattern *regexp.Regexp
}

// productPatterns is checked in order. Chromium derivatives advertise the
// Chrome token too, so they must precede Chrome; everything advertises
// Safari, so it comes last.
var productPatterns = []productPattern{
	{BrowserSamsung, regexp.MustCompile(`SamsungBrowser/`)},
	{BrowserEdge, regexp.MustCompile(`EdgiOS/|EdgA/|Edg/|Edge/`)},
	{BrowserOpera, regexp.MustCompile(`OPiOS/|OPR/|OPT/|Opera`)},
	{BrowserFirefox, regexp.MustCompile(`FxiOS/|Firefox/`)},
	{BrowserBrave, regexp.MustCompile(`Brave`)},
	{BrowserChrome, regexp.MustCompile(`CriOS/|Chrome/|Chromium/`)},
	{BrowserSafari, regexp.MustCompile(`Safari/`)},
}
