// Command pinchfeed streams touch events to a PinchBoard over its websocket
// feed. Events are read as JSON lines from stdin, or generated with -demo.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"PinchBoard/internal/input"
	feed "PinchBoard/internal/net"
	"PinchBoard/internal/state"
)

func main() {
	addr := flag.String("addr", "", "feed URL, e.g. ws://10.0.0.5:8888/feed (default: discover over mDNS)")
	browse := flag.Duration("browse", 3*time.Second, "how long to look for a board")
	demo := flag.Bool("demo", false, "send a built-in pinch and stroke instead of reading stdin")
	interval := flag.Duration("interval", 16*time.Millisecond, "delay between events")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, *addr, *browse, *demo, *interval, os.Stdin, log); err != nil {
		log.Error("pinchfeed failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, addr string, browse time.Duration, demo bool, interval time.Duration, in io.Reader, log *slog.Logger) error {
	if addr == "" {
		found, err := discover(ctx, browse)
		if err != nil {
			return err
		}
		addr = found
	}
	log.Info("connecting", "url", addr)

	c, err := feed.Dial(ctx, addr)
	if err != nil {
		return err
	}
	defer c.Close()

	var events []input.Event
	if demo {
		events = demoScript()
	} else if events, err = readEvents(in); err != nil {
		return err
	}

	tick := time.NewTicker(interval)
	defer tick.Stop()
	for i, e := range events {
		if err := c.Send(e); err != nil {
			return err
		}
		if i == len(events)-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
		}
	}
	log.Info("sent events", "count", len(events))
	return nil
}

func discover(ctx context.Context, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	urls := make(chan string, 1)
	err := feed.Browse(ctx, timeout, func(url string) {
		select {
		case urls <- url:
		default:
		}
	})
	select {
	case url := <-urls:
		return url, nil
	default:
	}
	if err != nil {
		return "", err
	}
	return "", errors.New("no board found; pass -addr")
}

// readEvents parses one JSON event per non-empty line.
func readEvents(r io.Reader) ([]input.Event, error) {
	var events []input.Event
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		b := sc.Bytes()
		if len(b) == 0 {
			continue
		}
		var e input.Event
		if err := json.Unmarshal(b, &e); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		events = append(events, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	return events, nil
}

// demoScript zooms in around (400, 300) while drifting right, lifts both
// fingers, then draws a short diagonal with one finger.
func demoScript() []input.Event {
	var events []input.Event
	c := state.Pt(400, 300)
	events = append(events, input.Touch(input.TouchStart, state.Pt(c.X-50, c.Y), state.Pt(c.X+50, c.Y)))
	for i := 0; i <= 20; i++ {
		half := 50 + float64(i)*5
		drift := float64(i) * 2
		events = append(events, input.Touch(input.TouchMove,
			state.Pt(c.X-half+drift, c.Y),
			state.Pt(c.X+half+drift, c.Y)))
	}
	events = append(events, input.Touch(input.TouchEnd))

	events = append(events, input.Touch(input.TouchStart, state.Pt(200, 200)))
	for i := 1; i <= 20; i++ {
		d := float64(i) * 10
		events = append(events, input.Touch(input.TouchMove, state.Pt(200+d, 200+d)))
	}
	events = append(events, input.Touch(input.TouchEnd))
	return events
}
