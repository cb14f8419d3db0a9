package target

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Info contains a normalized scan target
type Info struct {
	// Target is the input as it will be sent to the service, without surrounding whitespace
	Target string `json:"target"`
	// Host is the lower-cased host name or IP address of the target
	Host string `json:"host"`
	// Domain is the registrable domain of Host, empty for IP addresses
	Domain string `json:"domain,omitempty"`
	// Subdomain is the part of Host left of Domain
	Subdomain string `json:"subdomain,omitempty"`
	// TLD is the public suffix of Host
	TLD string `json:"tld,omitempty"`
	// IsIP reports whether Host is an IP address
	IsIP bool `json:"is_ip"`
}

// Parse validates a scan target given as a URL, host name or IP address
func Parse(input string) (*Info, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return nil, ErrEmptyTarget
	}

	host, err := extractHost(raw)
	if err != nil {
		return nil, err
	}

	info := &Info{
		Target: raw,
		Host:   host,
	}

	if net.ParseIP(host) != nil {
		info.IsIP = true

		return info, nil
	}

	if !strings.Contains(host, ".") || strings.HasPrefix(host, ".") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTarget, input)
	}

	etld1, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}

	info.Domain = etld1
	info.TLD, _ = publicsuffix.PublicSuffix(host)

	if etld1 != host {
		info.Subdomain = strings.TrimSuffix(host, "."+etld1)
	}

	return info, nil
}

// extractHost returns the lower-cased host of a URL or host[:port][/path] string
func extractHost(raw string) (string, error) {
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
		}

		if u.Scheme != "http" && u.Scheme != "https" {
			return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
		}

		if u.Hostname() == "" {
			return "", fmt.Errorf("%w: missing host in %q", ErrInvalidURL, raw)
		}

		return strings.ToLower(u.Hostname()), nil
	}

	hostPort := raw
	if idx := strings.IndexAny(hostPort, "/?#"); idx != -1 {
		hostPort = hostPort[:idx]
	}

	// bare IPv6 addresses contain colons but no port
	if net.ParseIP(hostPort) != nil {
		return strings.ToLower(hostPort), nil
	}

	if host, _, err := net.SplitHostPort(hostPort); err == nil {
		hostPort = host
	}

	return strings.ToLower(strings.Trim(hostPort, "[]")), nil
}
