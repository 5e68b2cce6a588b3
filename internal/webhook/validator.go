package webhook

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
)

var (
	// ErrInvalidScheme is returned when the URL scheme is not HTTPS.
	ErrInvalidScheme = errors.New("only HTTPS allowed")
	// ErrPrivateIP is returned when the host resolves to a private address.
	ErrPrivateIP = errors.New("private IP addresses not allowed")
	// ErrLocalhostBlocked is returned for loopback host names.
	ErrLocalhostBlocked = errors.New("localhost not allowed")
	// ErrInvalidPort is returned for any port other than 443.
	ErrInvalidPort = errors.New("only port 443 allowed")
	// ErrInvalidURL is returned when URL parsing fails.
	ErrInvalidURL = errors.New("invalid URL format")
	// ErrEmptyHost is returned when the URL has no host.
	ErrEmptyHost = errors.New("URL must have a host")
)

// BlockedCIDRs lists private and internal ranges a notification may not target.
var BlockedCIDRs = []string{
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"127.0.0.0/8",
	"169.254.0.0/16",
	"0.0.0.0/8",
	"::1/128",
	"fc00::/7",
	"fe80::/10",
}

var blockedNetworks = func() []*net.IPNet {
	nets := make([]*net.IPNet, 0, len(BlockedCIDRs))
	for _, cidr := range BlockedCIDRs {
		if _, n, err := net.ParseCIDR(cidr); err == nil {
			nets = append(nets, n)
		}
	}
	return nets
}()

// lookupIP is replaced in tests.
var lookupIP = func(ctx context.Context, host string) ([]net.IP, error) {
	return net.DefaultResolver.LookupIP(ctx, "ip", host)
}

// ValidateTargetURL rejects notification URLs that could reach internal services.
// Unresolvable hosts pass; delivery fails later instead.
func ValidateTargetURL(ctx context.Context, target string) error {
	parsed, err := url.Parse(target)
	if err != nil {
		return ErrInvalidURL
	}
	if parsed.Scheme != "https" {
		return ErrInvalidScheme
	}

	host := parsed.Hostname()
	if host == "" {
		return ErrEmptyHost
	}
	if isLocalhostHostname(host) {
		return ErrLocalhostBlocked
	}
	if port := parsed.Port(); port != "" && port != "443" {
		return ErrInvalidPort
	}

	if ip := net.ParseIP(host); ip != nil {
		if isBlockedIP(ip) {
			return ErrPrivateIP
		}
		return nil
	}

	ips, err := lookupIP(ctx, host)
	if err != nil {
		return nil
	}
	for _, ip := range ips {
		if isBlockedIP(ip) {
			return ErrPrivateIP
		}
	}
	return nil
}

func isLocalhostHostname(host string) bool {
	host = strings.ToLower(host)
	return host == "localhost" ||
		strings.HasSuffix(host, ".localhost") ||
		strings.HasSuffix(host, ".local") ||
		host == "127.0.0.1" ||
		host == "::1"
}

func isBlockedIP(ip net.IP) bool {
	for _, n := range blockedNetworks {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// ExtractHost returns only the host of a URL, for logging.
func ExtractHost(target string) string {
	parsed, err := url.Parse(target)
	if err != nil {
		return "(invalid)"
	}
	return parsed.Host
}
