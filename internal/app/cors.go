package app

import (
	"net/url"
	"strings"
)

// extractOriginHost reduces an Origin header value to its host[:port] part.
// Values that do not parse as a URL are compared as-is.
func extractOriginHost(origin string) string {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return origin
	}
	return u.Host
}

// matchOriginPattern matches a request host against one allowed-origin
// pattern: "*" admits any host, "*.example.com" any subdomain, and
// "localhost:*" any port on that host.
func matchOriginPattern(pattern, host string) bool {
	switch {
	case pattern == "*" || pattern == host:
		return true
	case strings.HasPrefix(pattern, "*."):
		return strings.HasSuffix(host, pattern[1:])
	case strings.HasSuffix(pattern, ":*"):
		return strings.HasPrefix(host, pattern[:len(pattern)-1])
	}
	return false
}
