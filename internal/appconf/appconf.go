// Package appconf holds the server configuration assembled from command-line
// flags and an optional YAML file.
package appconf

import (
	"fmt"
	"net/netip"
	"strings"
)

type Environment int

const (
	Development Environment = iota
	Test
	Production
)

// EnvFlagToEnvironment maps the -env flag to an Environment. Unknown values
// fall back to Development.
func EnvFlagToEnvironment(env string) Environment {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "production", "prod":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

func (e Environment) String() string {
	switch e {
	case Production:
		return "production"
	case Test:
		return "test"
	default:
		return "development"
	}
}

// Config holds the settings of the HTTP server. Data source settings live in
// whodata.Config.
type Config struct {
	Port      int
	Env       Environment
	AdminKeys []string
	RateLimit int
	CacheSize int
	LogLevel  string

	// TrustedProxies are the peers whose X-Forwarded-For header is used to
	// identify clients. Empty means the header is ignored.
	TrustedProxies []netip.Prefix
}

// ParseKeys splits a comma separated key list, dropping blanks.
func ParseKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// ParseTrustedProxies reads a comma separated list of IP addresses and CIDR
// prefixes. A bare address is a single-host prefix.
func ParseTrustedProxies(entries []string) ([]netip.Prefix, error) {
	var prefixes []netip.Prefix
	for _, entry := range entries {
		if strings.Contains(entry, "/") {
			p, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", entry, err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", entry, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}
