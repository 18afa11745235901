package net

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

const serviceType = "_pinchboard._tcp"

// Advertise announces a board's touch feed on port over mDNS. Close the
// returned server to withdraw it.
func Advertise(instance string, port int) (*mdns.Server, error) {
	if instance == "" {
		host, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("could not get hostname: %w", err)
		}
		instance = host
	}

	info := []string{"PinchBoard", "path=" + FeedPath}
	service, err := mdns.NewMDNSService(instance, serviceType, "", "", port, nil, info)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Browse looks for advertised boards until ctx is done or timeout passes,
// calling found with the feed URL of each one. It returns ctx.Err() as soon
// as ctx is done; found is never called after Browse returns.
func Browse(ctx context.Context, timeout time.Duration, found func(url string)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	params := mdns.DefaultParams(serviceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < params.Timeout {
			params.Timeout = left
		}
	}

	queried := make(chan error, 1)
	go func() {
		err := mdns.Query(params)
		close(entries)
		queried <- err
	}()

	for {
		select {
		case <-ctx.Done():
			// Keep the query from blocking on a full channel.
			go func() {
				for range entries {
				}
			}()
			return ctx.Err()
		case e, ok := <-entries:
			if !ok {
				if err := <-queried; err != nil {
					return fmt.Errorf("mDNS lookup: %w", err)
				}
				return ctx.Err()
			}
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found(FeedURL(e.AddrV4.String(), e.Port))
		}
	}
}
