// Package netutil provides network-related utility functions.
package netutil

import (
	"fmt"
	"net/url"
	"strconv"
)

// ValidURL reports whether s is an absolute URL with both a scheme and a host.
// Any scheme is accepted.
func ValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != "" && u.Hostname() != ""
}

// HostPort returns the host name and port of u, falling back to defaultPort
// when the URL carries none.
func HostPort(u *url.URL, defaultPort int) (host string, port int, err error) {
	host = u.Hostname()
	if host == "" {
		return "", 0, fmt.Errorf("url %q has no host", u.Redacted())
	}
	portStr := u.Port()
	if portStr == "" {
		return host, defaultPort, nil
	}
	port, err = strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return "", 0, fmt.Errorf("url %q has invalid port %q", u.Redacted(), portStr)
	}
	return host, port, nil
}
