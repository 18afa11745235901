package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	stdnet "net"
	"os"
	"os/signal"
	"syscall"

	"fyne.io/fyne/v2"
	"github.com/gogpu/gg"

	"PinchBoard/internal/board"
	"PinchBoard/internal/config"
	feed "PinchBoard/internal/net"
	"PinchBoard/internal/render"
	"PinchBoard/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	logLevel := flag.String("log-level", "", "override the configured log level")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "pinchboard:", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "pinchboard:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	gg.SetLogger(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	raster := render.NewRaster(cfg.Width, cfg.Height, logger)
	defer raster.Close()

	b := board.New(cfg, raster, logger)
	win := ui.NewWindow(ctx, b, raster, cfg.Style, logger)
	b.OnFrame = win.Board.Invalidate

	go func() {
		if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("input loop stopped", "err", err)
		}
	}()
	if cfg.Remote.Enabled {
		go serveFeed(ctx, cfg.Remote, b, win.Status, logger)
	}
	go func() {
		<-ctx.Done()
		fyne.Do(win.App.Quit)
	}()

	logger.Info("board ready", "width", cfg.Width, "height", cfg.Height, "style", cfg.Style)
	win.ShowAndRun()
}

// serveFeed runs the remote touch feed and advertises it. Failures leave
// the board usable with local input only.
func serveFeed(ctx context.Context, rc config.Remote, b *board.Board, status *ui.Status, log *slog.Logger) {
	fs := feed.NewFeedServer(b, log)
	fs.OnPeer = func(p *feed.Peer, connected bool) {
		if connected {
			status.Set("Touch device connected from " + p.Addr)
		} else {
			status.Set(fmt.Sprintf("Touch device left, %d connected", fs.Peers()))
		}
	}

	err := fs.ListenAndServe(ctx, rc.Listen, func(addr stdnet.Addr) {
		port := addr.(*stdnet.TCPAddr).Port
		status.Set("Touch feed at " + feed.FeedURL(feed.OutgoingIP(), port))
		if !rc.Advertise {
			return
		}
		server, err := feed.Advertise(rc.Instance, port)
		if err != nil {
			log.Warn("mDNS advertise failed", "err", err)
			return
		}
		go func() {
			<-ctx.Done()
			if err := server.Shutdown(); err != nil {
				log.Warn("mDNS shutdown failed", "err", err)
			}
		}()
	})
	if err != nil {
		log.Error("touch feed unavailable", "err", err)
		status.Set("Remote input unavailable")
	}
}
