// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package uaclass

// Platform is the operating system family a request came from.
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformDesktop Platform = "desktop"
)

// Browser identifies the browser the page is running in.
type Browser string

const (
	BrowserSafari  Browser = "safari"
	BrowserChrome  Browser = "chrome"
	BrowserFirefox Browser = "firefox"
	BrowserEdge    Browser = "edge"
	BrowserOpera   Browser = "opera"
	BrowserBrave   Browser = "brave"
	BrowserSamsung Browser = "samsung"
	// BrowserInApp means the page is inside a host app's embedded view.
	// Environment.Host names the app.
	BrowserInApp   Browser = "in-app"
	BrowserUnknown Browser = "unknown"
)

var browserDisplayNames = map[Browser]string{
	BrowserSafari:  "Safari",
	BrowserChrome:  "Chrome",
	BrowserFirefox: "Firefox",
	BrowserEdge:    "Edge",
	BrowserOpera:   "Opera",
	BrowserBrave:   "Brave",
	BrowserSamsung: "Samsung Internet",
	BrowserInApp:   "In-app browser",
	BrowserUnknown: "Unknown",
}

// DisplayName returns a human-readable browser name.
func (b Browser) DisplayName() string {
	if name, ok := browserDisplayNames[b]; ok {
		return name
	}
	return string(b)
}

// Host identifies the native app hosting an in-app browser.
type Host string

const (
	HostNone      Host = ""
	HostInstagram Host = "instagram"
	HostFacebook  Host = "facebook"
	HostMessenger Host = "messenger"
	HostTwitter   Host = "twitter"
	HostLinkedIn  Host = "linkedin"
	HostTikTok    Host = "tiktok"
	HostSnapchat  Host = "snapchat"
	HostPinterest Host = "pinterest"
	HostLine      Host = "line"
	HostWeChat    Host = "wechat"
	// HostWebView is an embedded view whose host app could not be named.
	HostWebView Host = "webview"
)

var hostDisplayNames = map[Host]string{
	HostInstagram: "Instagram",
	HostFacebook:  "Facebook",
	HostMessenger: "Messenger",
	HostTwitter:   "Twitter",
	HostLinkedIn:  "LinkedIn",
	HostTikTok:    "TikTok",
	HostSnapchat:  "Snapchat",
	HostPinterest: "Pinterest",
	HostLine:      "LINE",
	HostWeChat:    "WeChat",
}

// Named reports whether h is a recognised host app rather than a generic
// WebView or no host at all.
func (h Host) Named() bool {
	_, ok := hostDisplayNames[h]
	return ok
}

// DisplayName returns the app name, or "this app" when the host is unnamed.
func (h Host) DisplayName() string {
	if name, ok := hostDisplayNames[h]; ok {
		return name
	}
	return "this app"
}

// Signals holds every predicate that matched. Several can be true at once
// (an Android Instagram user agent is both Instagram and a WebView); the
// resolved Environment fields apply the priority order.
type Signals struct {
	IOS        bool   `json:"ios"`
	Android    bool   `json:"android"`
	WebView    bool   `json:"webView"`
	IOSWebView bool   `json:"iosWebView"`
	Hosts      []Host `json:"hosts,omitempty"`
}

// Environment is the classification of a single page load. It is computed
// once from the user-agent string and never changes afterwards.
type Environment struct {
	UserAgent string   `json:"userAgent"`
	Platform  Platform `json:"platform"`
	// Browser is the identity shown to the user. Named hosts take
	// precedence over generic WebView detection, which takes precedence
	// over the browser product.
	Browser Browser `json:"browser"`
	// Product is the browser product detected from the user-agent tokens,
	// ignoring any host app.
	Product Browser `json:"product"`
	Host    Host    `json:"host,omitempty"`
	// InApp is true inside a recognised host app or a generic WebView.
	InApp bool `json:"inApp"`
	// DefaultBrowser is true when running in the platform default browser
	// outside any host app.
	DefaultBrowser bool `json:"defaultBrowser"`
	// NonDefault is true on mobile when the browser product is not the
	// platform default. It is independent of InApp so that, for example,
	// Firefox on Android is redirected too.
	NonDefault bool    `json:"nonDefault"`
	Signals    Signals `json:"signals"`
}

// IsMobile reports whether the platform is iOS or Android.
func (e Environment) IsMobile() bool {
	return e.Platform == PlatformIOS || e.Platform == PlatformAndroid
}

// ExpectedDefault returns the browser the platform opens links in by default:
// Safari on iOS, Chrome on Android, BrowserUnknown elsewhere.
func (e Environment) ExpectedDefault() Browser {
	return ExpectedDefault(e.Platform)
}

// AppName returns the host app display name, or "this app".
func (e Environment) AppName() string {
	return e.Host.DisplayName()
}

// BrowserName returns what the user is browsing in: the host app name for
// named in-app browsers, otherwise the browser display name.
func (e Environment) BrowserName() string {
	if e.Host.Named() {
		return e.Host.DisplayName()
	}
	return e.Browser.DisplayName()
}

// ExpectedDefault returns the default browser for a platform.
func ExpectedDefault(p Platform) Browser {
	switch p {
	case PlatformIOS:
		return BrowserSafari
	case PlatformAndroid:
		return BrowserChrome
	default:
		return BrowserUnknown
	}
}
