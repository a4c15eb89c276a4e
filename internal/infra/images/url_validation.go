// Package images resolves a best-effort representative image URL for raw
// feed items using a cascading fallback chain: enclosure metadata, inline
// markup in the feed content, and finally a bounded fetch of the article
// page itself.
package images

import (
	"errors"
	"fmt"
	"net"
	"net/url"
)

// Sentinel errors for page fetching operations.
var (
	// ErrInvalidURL indicates the URL format is invalid or uses an
	// unsupported scheme. Only http and https are accepted.
	ErrInvalidURL = errors.New("invalid URL or unsupported scheme")

	// ErrPrivateIP indicates the URL resolves to a private IP address.
	// This prevents Server-Side Request Forgery attacks.
	ErrPrivateIP = errors.New("private IP access denied (SSRF prevention)")

	// ErrTooManyRedirects indicates the redirect chain exceeded the
	// configured maximum.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrBodyTooLarge indicates the response body exceeded the size limit.
	ErrBodyTooLarge = errors.New("response body too large")
)

// validateURL validates a URL for security before making an HTTP request.
// It checks the scheme, then resolves DNS and rejects hostnames that point
// at loopback, private, or link-local addresses when denyPrivateIPs is set.
func validateURL(urlStr string, denyPrivateIPs bool) error {
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("%w: parse error: %v", ErrInvalidURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme '%s' not allowed (only http/https)", ErrInvalidURL, u.Scheme)
	}

	hostname := u.Hostname()
	if hostname == "" {
		return fmt.Errorf("%w: empty hostname", ErrInvalidURL)
	}

	if !denyPrivateIPs {
		return nil
	}

	ips, err := net.LookupIP(hostname)
	if err != nil {
		return fmt.Errorf("%w: DNS lookup failed for %s: %v", ErrInvalidURL, hostname, err)
	}

	for _, ip := range ips {
		if isPrivateIP(ip) {
			return fmt.Errorf("%w: hostname '%s' resolves to private IP %s", ErrPrivateIP, hostname, ip.String())
		}
	}

	return nil
}

// isPrivateIP checks if an IP address is loopback, private, or link-local.
// Supports both IPv4 and IPv6.
func isPrivateIP(ip net.IP) bool {
	if ip.IsLoopback() {
		return true
	}
	if ip.IsPrivate() {
		return true
	}
	if ip.IsLinkLocalUnicast() {
		return true
	}
	return false
}

// isAbsoluteHTTPURL reports whether a candidate image URL is a well-formed
// absolute http(s) URL. Relative paths and other schemes are rejected so the
// resolver falls through to the next step instead of emitting them.
func isAbsoluteHTTPURL(urlStr string) bool {
	u, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
