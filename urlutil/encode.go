package urlutil

import (
	neturl "net/url"
	"strings"
)

// EncodeURIComponent escapes s the way a browser's encodeURIComponent does:
// everything except A-Z a-z 0-9 and - _ . ! ~ * ' ( ) is percent-encoded,
// and a space becomes %20 rather than '+'.
//
// Target URLs built here are shown to the user and copied verbatim, so they
// must match what the page would have produced client-side.
func EncodeURIComponent(s string) string {
	escaped := neturl.QueryEscape(s)
	return uriComponentFixups.Replace(escaped)
}

var uriComponentFixups = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
	"%7E", "~",
)

// AppendQueryParam appends key=EncodeURIComponent(value) to rawURL, joining
// with '?' or '&' depending on whether rawURL already carries a query.
// A fragment, if present, stays at the end.
func AppendQueryParam(rawURL, key, value string) string {
	fragment := ""
	if i := strings.IndexByte(rawURL, '#'); i >= 0 {
		rawURL, fragment = rawURL[:i], rawURL[i:]
	}

	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
		if strings.HasSuffix(rawURL, "?") || strings.HasSuffix(rawURL, "&") {
			sep = ""
		}
	}

	return rawURL + sep + EncodeURIComponent(key) + "=" + EncodeURIComponent(value) + fragment
}

// StripScheme removes a leading "scheme://" from rawURL, leaving host, path,
// query and fragment untouched. Strings without a scheme are returned as-is.
func StripScheme(rawURL string) string {
	if i := strings.Index(rawURL, "://"); i > 0 && !strings.ContainsAny(rawURL[:i], "/?#") {
		return rawURL[i+3:]
	}
	return rawURL
}
