// Package webhook validates the callback URLs applications register.
// Targets must be public HTTPS endpoints so the service can never be pointed
// at its own network.
package webhook

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrInvalidURL is returned when URL parsing fails.
	ErrInvalidURL = errors.New("invalid URL format")
	// ErrInvalidScheme is returned when URL scheme is not HTTPS.
	ErrInvalidScheme = errors.New("only HTTPS allowed")
	// ErrEmptyHost is returned when URL has no host.
	ErrEmptyHost = errors.New("URL must have a host")
	// ErrCredentials is returned when the URL embeds userinfo.
	ErrCredentials = errors.New("credentials in URL not allowed")
	// ErrLocalhostBlocked is returned when localhost is used.
	ErrLocalhostBlocked = errors.New("localhost not allowed")
	// ErrInvalidPort is returned when non-standard port is used.
	ErrInvalidPort = errors.New("only port 443 allowed")
	// ErrPrivateIP is returned when the host is or resolves to a private address.
	ErrPrivateIP = errors.New("private IP addresses not allowed")
)

// blockedPrefixes contains private and internal address ranges.
var blockedPrefixes = []netip.Prefix{
	netip.MustParsePrefix("0.0.0.0/8"),
	netip.MustParsePrefix("10.0.0.0/8"),
	netip.MustParsePrefix("100.64.0.0/10"), // Carrier-grade NAT
	netip.MustParsePrefix("127.0.0.0/8"),
	netip.MustParsePrefix("169.254.0.0/16"), // Link-local, cloud metadata
	netip.MustParsePrefix("172.16.0.0/12"),
	netip.MustParsePrefix("192.168.0.0/16"),
	netip.MustParsePrefix("::/128"),
	netip.MustParsePrefix("::1/128"),
	netip.MustParsePrefix("fc00::/7"),
	netip.MustParsePrefix("fe80::/10"),
}

// defaultLookupTimeout bounds DNS resolution of a single target.
const defaultLookupTimeout = 2 * time.Second

// Resolver resolves host names. *net.Resolver implements it.
type Resolver interface {
	LookupNetIP(ctx context.Context, network, host string) ([]netip.Addr, error)
}

// Validator checks webhook target URLs.
type Validator struct {
	resolver Resolver
	timeout  time.Duration
}

// NewValidator returns a Validator using resolver for host names.
// A nil resolver skips DNS and only checks literal addresses.
func NewValidator(resolver Resolver) *Validator {
	return &Validator{resolver: resolver, timeout: defaultLookupTimeout}
}

var defaultValidator = NewValidator(net.DefaultResolver)

// ValidateTargetURL checks targetURL with the system resolver.
func ValidateTargetURL(targetURL string) error {
	return defaultValidator.Validate(context.Background(), targetURL)
}

// Validate enforces HTTPS on port 443 and rejects hosts that are, or resolve
// to, loopback or private addresses. A name that does not resolve is
// accepted; it cannot reach an internal address either.
func (v *Validator) Validate(ctx context.Context, targetURL string) error {
	parsed, err := url.Parse(targetURL)
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

	if parsed.User != nil {
		return ErrCredentials
	}

	if isLocalhostHostname(host) {
		return ErrLocalhostBlocked
	}

	if port := parsed.Port(); port != "" && port != "443" {
		return ErrInvalidPort
	}

	if addr, err := netip.ParseAddr(host); err == nil {
		if isBlockedAddr(addr) {
			return ErrPrivateIP
		}
		return nil
	}

	if v.resolver == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	addrs, err := v.resolver.LookupNetIP(ctx, "ip", host)
	if err != nil {
		return nil
	}
	for _, addr := range addrs {
		if isBlockedAddr(addr) {
			return ErrPrivateIP
		}
	}

	return nil
}

// isLocalhostHostname checks if hostname is localhost variant.
func isLocalhostHostname(host string) bool {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	return host == "localhost" ||
		strings.HasSuffix(host, ".localhost") ||
		strings.HasSuffix(host, ".local")
}

// isBlockedAddr reports whether addr falls in any blocked range.
// IPv4-mapped IPv6 addresses are checked as IPv4.
func isBlockedAddr(addr netip.Addr) bool {
	addr = addr.Unmap()
	for _, prefix := range blockedPrefixes {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}
