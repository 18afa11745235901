package net

import (
	"log/slog"
	"net"
)

// OutgoingIP finds the local address other devices on the network should
// use to reach this board.
func OutgoingIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// Without a route to the internet, pick a local interface instead.
		return firstIPv4().String()
	}
	defer conn.Close()

	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

// firstIPv4 returns the first IPv4 address of an interface that is up and
// not loopback, or 127.0.0.1.
func firstIPv4() net.IP {
	ifaces, err := net.Interfaces()
	if err != nil {
		slog.Warn("listing interfaces failed", "err", err)
		return net.IPv4(127, 0, 0, 1)
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.To4()
			}
		}
	}
	return net.IPv4(127, 0, 0, 1)
}
