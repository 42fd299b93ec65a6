package config

import (
	"net"
	"strings"

	"github.com/yndnr/tokmint/internal/core/domain"
)

// TrustedNets parses TrustedProxies. A bare address is a single-host
// network.
func (h HTTPConfig) TrustedNets() ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(h.TrustedProxies))
	for _, entry := range h.TrustedProxies {
		entry = strings.TrimSpace(entry)
		if !strings.Contains(entry, "/") {
			ip := net.ParseIP(entry)
			if ip == nil {
				return nil, domain.ConfigError("server.http.trusted_proxies: invalid address %q", entry)
			}
			bits := 8 * net.IPv6len
			if v4 := ip.To4(); v4 != nil {
				ip, bits = v4, 8*net.IPv4len
			}
			nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, n, err := net.ParseCIDR(entry)
		if err != nil {
			return nil, domain.ConfigError("server.http.trusted_proxies: invalid network %q", entry)
		}
		nets = append(nets, n)
	}
	return nets, nil
}
