package urlutil

import (
	"fmt"
	neturl "net/url"
	"strings"
)

const (
	// MaxURLLength is the RFC 2616 practical limit for URL length
	MaxURLLength = 2048
)

// Validate performs HTTP/HTTPS URL validation using net/url.Parse.
// It validates that the URL:
//   - Is not empty or only whitespace
//   - Uses http:// or https:// protocol
//   - Has a valid host/domain
//   - Does not exceed MaxURLLength (2048 characters)
//
// Example:
//
//	if err := urlutil.Validate(cfg.Destination.BaseURL); err != nil {
//		return fmt.Errorf("invalid destination: %w", err)
//	}
func Validate(rawURL string) error {
	_, err := Parse(rawURL)
	return err
}

// ValidateHTTPSOnly enforces HTTPS-only URLs.
// HTTP is accepted for localhost (127.0.0.1, ::1, localhost) so a destination
// can be pointed at a local dev server, but rejected everywhere else: the
// iOS x-safari-https scheme and the Android intent both assume https.
func ValidateHTTPSOnly(rawURL string) error {
	parsed, err := Parse(rawURL)
	if err != nil {
		return err
	}

	if parsed.Scheme == "https" {
		return nil
	}
	if parsed.Scheme == "http" && isLocalhost(parsed.Hostname()) {
		return nil
	}

	return fmt.Errorf("url must use https:// (http:// only allowed for localhost)")
}

// Parse trims, validates and parses an http(s) URL.
//
// Example:
//
//	parsed, err := urlutil.Parse(userInput)
//	if err != nil {
//		return err
//	}
//	fmt.Printf("Host: %s\n", parsed.Host)
func Parse(rawURL string) (*neturl.URL, error) {
	rawURL = strings.TrimSpace(rawURL)

	if rawURL == "" {
		return nil, fmt.Errorf("url cannot be empty")
	}
	if len(rawURL) > MaxURLLength {
		return nil, fmt.Errorf("url exceeds maximum length of %d characters", MaxURLLength)
	}

	parsed, err := neturl.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL format: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		if parsed.Scheme == "" {
			return nil, fmt.Errorf("url must use http:// or https://")
		}
		return nil, fmt.Errorf("url must use http:// or https://, got: %s", parsed.Scheme)
	}

	if parsed.Host == "" {
		return nil, fmt.Errorf("url missing host/domain")
	}

	return parsed, nil
}

// NormalizeScheme ensures URL has http:// or https:// prefix.
// If the URL already has a valid scheme (http:// or https://), it is returned unchanged.
// Otherwise defaultScheme ("http" or "https", without "://") is prepended.
//
// Example:
//
//	normalized := urlutil.NormalizeScheme("peak.app/", "https")
//	// Returns: "https://peak.app/"
func NormalizeScheme(rawURL, defaultScheme string) string {
	rawURL = strings.TrimSpace(rawURL)

	parsed, err := neturl.Parse(rawURL)
	if err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") {
		return rawURL
	}

	return defaultScheme + "://" + rawURL
}

// isLocalhost checks if the hostname is a localhost address
func isLocalhost(hostname string) bool {
	hostname = strings.ToLower(hostname)

	return hostname == "localhost" ||
		hostname == "127.0.0.1" ||
		hostname == "::1" ||
		hostname == "[::1]"
}
