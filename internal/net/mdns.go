package net

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

const serviceType = "_pollockboard._tcp"

// Advertise announces the feed on the local network.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	info := []string{"PollockBoard", "path=" + FeedPath}

	service, err := mdns.NewMDNSService(host, serviceType, "", "", port, nil, info)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Discover browses for a board feed and returns the first host:port found.
func Discover(ctx context.Context, timeout time.Duration) (string, error) {
	found := make(chan string, 1)
	errc := make(chan error, 1)
	go func() {
		errc <- browse(timeout, func(addr string) {
			select {
			case found <- addr:
			default:
			}
		})
	}()

	select {
	case addr := <-found:
		return addr, nil
	case err := <-errc:
		if err != nil {
			return "", fmt.Errorf("mDNS browse: %w", err)
		}
		select {
		case addr := <-found:
			return addr, nil
		default:
		}
		return "", fmt.Errorf("no board found on the local network within %s", timeout)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func browse(timeout time.Duration, found func(addr string)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if addr, ok := entryAddr(e); ok {
				found(addr)
			}
		}
	}()

	params := mdns.DefaultParams(serviceType)
	params.Entries = entries
	params.Timeout = timeout
	err := mdns.Query(params)
	close(entries)
	<-done
	return err
}

func entryAddr(e *mdns.ServiceEntry) (string, bool) {
	if e == nil || e.AddrV4 == nil || e.Port == 0 {
		return "", false
	}
	return net.JoinHostPort(e.AddrV4.String(), fmt.Sprint(e.Port)), true
}
