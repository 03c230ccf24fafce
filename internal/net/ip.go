package net

import (
	"fmt"
	"net"

	"github.com/charmbracelet/log"
)

// ShareAddress turns a listen address into the host:port other machines
// should dial. Wildcard hosts are replaced by a LAN address of this machine.
func ShareAddress(addr string) (string, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", fmt.Errorf("feed address %q: %w", addr, err)
	}
	if isWildcard(host) {
		host = lanHost(net.InterfaceAddrs)
	}
	return net.JoinHostPort(host, port), nil
}

func isWildcard(host string) bool {
	if host == "" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsUnspecified()
}

// lanHost picks the IPv4 address peers are most likely to reach: a private
// address first, then any global unicast one, then the source address of
// the default route. Loopback is the last resort.
func lanHost(addrs func() ([]net.Addr, error)) string {
	var global string
	if list, err := addrs(); err == nil {
		for _, a := range list {
			ipnet, ok := a.(*net.IPNet)
			if !ok {
				continue
			}
			ip := ipnet.IP.To4()
			switch {
			case ip == nil || ip.IsLoopback():
			case ip.IsPrivate():
				return ip.String()
			case global == "" && ip.IsGlobalUnicast():
				global = ip.String()
			}
		}
	}
	if global != "" {
		return global
	}
	if conn, err := net.Dial("udp", "8.8.8.8:80"); err == nil {
		defer conn.Close()
		if udp, ok := conn.LocalAddr().(*net.UDPAddr); ok && !udp.IP.IsUnspecified() {
			return udp.IP.String()
		}
	}
	log.Warn("no LAN address found, feed is only reachable from this machine")
	return "127.0.0.1"
}
