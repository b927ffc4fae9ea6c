// Package useragent summarises who is on the other end of a request, for logs.
package useragent

import (
	"net"
	"net/http"
	"strings"
)

// Describe returns "ip (client)", e.g. "10.0.0.7 (Firefox on Linux)".
func Describe(r *http.Request) string {
	return RemoteIP(r) + " (" + Client(r.Header.Get("User-Agent")) + ")"
}

// Client names the program behind a User-Agent header.
func Client(ua string) string {
	switch {
	case ua == "":
		return "unknown client"
	case strings.HasPrefix(ua, "Go-http-client"):
		return "console client"
	}

	browser := "Unknown Browser"
	switch {
	case strings.Contains(ua, "Edg/"):
		browser = "Edge"
	case strings.Contains(ua, "Chrome/"):
		browser = "Chrome"
	case strings.Contains(ua, "Firefox/"):
		browser = "Firefox"
	case strings.Contains(ua, "Safari/"):
		browser = "Safari"
	}

	// iOS and Android agents also mention Mac OS X and Linux
	os := "Unknown OS"
	switch {
	case strings.Contains(ua, "iPhone"), strings.Contains(ua, "iPad"):
		os = "iOS"
	case strings.Contains(ua, "Android"):
		os = "Android"
	case strings.Contains(ua, "Windows"):
		os = "Windows"
	case strings.Contains(ua, "Mac OS X"):
		os = "macOS"
	case strings.Contains(ua, "Linux"):
		os = "Linux"
	}

	return browser + " on " + os
}

// RemoteIP prefers proxy headers over the socket address.
func RemoteIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
