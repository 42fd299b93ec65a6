package httpserver

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP attributes requests to a client address. X-Forwarded-For and
// X-Real-IP are honoured only when the direct peer is a trusted proxy;
// otherwise the peer address is used. A nil *ClientIP trusts nobody.
type ClientIP struct {
	trusted []*net.IPNet
}

// NewClientIP creates a resolver that trusts forwarding headers from the
// given networks.
func NewClientIP(trusted []*net.IPNet) *ClientIP {
	return &ClientIP{trusted: trusted}
}

// Resolve returns the client address of r.
func (c *ClientIP) Resolve(r *http.Request) string {
	peer := remoteHost(r)
	if c == nil || !c.isTrusted(net.ParseIP(peer)) {
		return peer
	}

	// Walk right to left: the rightmost untrusted hop is the first address
	// not appended by our own proxies.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		var leftmost string
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			ip := net.ParseIP(hop)
			if ip == nil {
				break
			}
			leftmost = hop
			if !c.isTrusted(ip) {
				return hop
			}
		}
		if leftmost != "" {
			return leftmost
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(xri) != nil {
		return xri
	}
	return peer
}

func (c *ClientIP) isTrusted(ip net.IP) bool {
	if ip == nil {
		return false
	}
	for _, n := range c.trusted {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// remoteHost strips the port from RemoteAddr. net.SplitHostPort handles
// IPv6 addresses like [::1]:8080.
func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
