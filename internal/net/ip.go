package net

import (
	"net"
	"strconv"
)

// LocalIPv4s lists the IPv4 addresses of every interface that is up and
// not a loopback, falling back to 127.0.0.1.
func LocalIPv4s() []net.IP {
	var ips []net.IP
	ifaces, err := net.Interfaces()
	if err != nil {
		return []net.IP{net.IPv4(127, 0, 0, 1)}
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				ips = append(ips, ipnet.IP.To4())
			}
		}
	}
	if len(ips) == 0 {
		return []net.IP{net.IPv4(127, 0, 0, 1)}
	}
	return ips
}

// ShareAddr is the address printed for players to join.
func ShareAddr(port int) string {
	return net.JoinHostPort(LocalIPv4s()[0].String(), strconv.Itoa(port))
}
