// Package urlutil provides URL validation, parsing and encoding helpers.
//
// Validation wraps net/url.Parse with the rules a redirect destination must
// satisfy:
//   - URL must not be empty or only whitespace
//   - URL must use http:// or https:// (rejects javascript:, intent:, file:, ...)
//   - URL must have a host
//   - URL must not exceed 2048 characters
//
// ValidateHTTPSOnly additionally requires https outside localhost.
//
// The encoding helpers reproduce browser semantics so that URLs assembled on
// the server are byte-identical to what client-side code would build:
//
//	urlutil.EncodeURIComponent("a b")                           // "a%20b"
//	urlutil.AppendQueryParam("https://peak.app/", "code", "X")  // "https://peak.app/?code=X"
//	urlutil.StripScheme("https://peak.app/?code=X")             // "peak.app/?code=X"
package urlutil
