// Package net shares a project with players on the local network: a
// websocket host pushes project bytes and mDNS lets players find it.
package net

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/mdns"
)

var ErrNoHost = errors.New("no terp host found")

func newService(instance, service string, port int, ips []net.IP) (*mdns.MDNSService, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}
	if instance == "" {
		instance = host
	}
	host = strings.TrimSuffix(host, ".") + "."
	zone, err := mdns.NewMDNSService(instance, service, "", host, port, ips, []string{"terp"})
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}
	return zone, nil
}

// Advertise announces a host on port until the returned server is shut down.
func Advertise(instance, service string, port int) (*mdns.Server, error) {
	zone, err := newService(instance, service, port, LocalIPv4s())
	if err != nil {
		return nil, err
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: zone})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Browse returns the "ip:port" of every host answering within timeout.
func Browse(ctx context.Context, service string, timeout time.Duration) ([]string, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan []string)
	go func() {
		var found []string
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found = append(found, net.JoinHostPort(e.AddrV4.String(), fmt.Sprint(e.Port)))
		}
		done <- found
	}()

	params := mdns.DefaultParams(service)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	err := mdns.QueryContext(ctx, params)
	close(entries)
	found := <-done
	if err != nil {
		return found, fmt.Errorf("browse %s: %w", service, err)
	}
	return found, nil
}

// First browses and returns the first host found.
func First(ctx context.Context, service string, timeout time.Duration) (string, error) {
	found, err := Browse(ctx, service, timeout)
	if err != nil {
		return "", err
	}
	if len(found) == 0 {
		return "", ErrNoHost
	}
	return found[0], nil
}
