package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"PinchBoard/internal/input"
)

// FeedPath is the HTTP path remote touch devices connect to.
const FeedPath = "/feed"

// Poster accepts input events for the board's event loop.
type Poster interface {
	Post(ctx context.Context, e input.Event) error
}

// Peer is one connected touch device.
type Peer struct {
	ID   string
	Addr string
	conn *websocket.Conn
}

// FeedServer accepts websocket connections from touch devices and forwards
// their events to the board.
type FeedServer struct {
	board    Poster
	upgrader websocket.Upgrader
	peers    map[string]*Peer
	mu       sync.RWMutex
	log      *slog.Logger

	// OnPeer is called when a device connects (true) or leaves (false).
	OnPeer func(p *Peer, connected bool)
}

// NewFeedServer returns a server posting to board.
func NewFeedServer(board Poster, log *slog.Logger) *FeedServer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &FeedServer{
		board: board,
		upgrader: websocket.Upgrader{
			// Touch devices on the local network serve their own pages.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		peers: make(map[string]*Peer),
		log:   log.With("component", "feed"),
	}
}

// Peers returns the number of connected devices.
func (s *FeedServer) Peers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.peers)
}

func (s *FeedServer) add(p *Peer) {
	s.mu.Lock()
	s.peers[p.ID] = p
	s.mu.Unlock()
	s.log.Info("peer connected", "peer", p.ID, "addr", p.Addr)
	if s.OnPeer != nil {
		s.OnPeer(p, true)
	}
}

func (s *FeedServer) remove(p *Peer) {
	s.mu.Lock()
	delete(s.peers, p.ID)
	s.mu.Unlock()
	s.log.Info("peer disconnected", "peer", p.ID, "addr", p.Addr)
	if s.OnPeer != nil {
		s.OnPeer(p, false)
	}
}

// ServeHTTP upgrades the request and relays events until the peer leaves.
func (s *FeedServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("upgrade failed", "addr", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	p := &Peer{ID: uuid.NewString(), Addr: r.RemoteAddr, conn: conn}
	s.add(p)
	defer s.remove(p)

	ctx := r.Context()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warn("read failed", "peer", p.ID, "err", err)
			}
			break
		}
		var e input.Event
		if err := json.Unmarshal(data, &e); err != nil {
			s.log.Warn("dropping message", "peer", p.ID, "err", err)
			continue
		}
		if err := e.Validate(); err != nil {
			s.log.Warn("dropping event", "peer", p.ID, "err", err)
			continue
		}
		e.Source = p.ID
		if err := s.board.Post(ctx, e); err != nil {
			s.log.Warn("board unavailable", "peer", p.ID, "err", err)
			break
		}
	}

	// A device that vanished mid-gesture must not leave a pinch baseline or
	// an open stroke behind.
	end := input.Event{Kind: input.TouchCancel, Source: p.ID}
	if err := s.board.Post(context.WithoutCancel(ctx), end); err != nil && !errors.Is(err, input.ErrLoopClosed) {
		s.log.Warn("cancel not delivered", "peer", p.ID, "err", err)
	}
}

// ListenAndServe serves the feed on addr until ctx is done. ready, if not
// nil, receives the bound address once the listener is up.
func (s *FeedServer) ListenAndServe(ctx context.Context, addr string, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle(FeedPath, s)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	s.log.Info("touch feed listening", "addr", ln.Addr().String())
	if ready != nil {
		ready(ln.Addr())
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return fmt.Errorf("serve feed: %w", err)
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s.closePeers()
		if err := srv.Shutdown(shutdown); err != nil {
			return fmt.Errorf("shutdown feed: %w", err)
		}
		return nil
	}
}

func (s *FeedServer) closePeers() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.peers {
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "board closing")
		_ = p.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		_ = p.conn.Close()
	}
}

// Client sends events to a board's feed.
type Client struct {
	conn *websocket.Conn
}

// Dial connects to the feed at url, e.g. "ws://10.0.0.5:8888/feed".
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &Client{conn: conn}, nil
}

// Send writes one event.
func (c *Client) Send(e input.Event) error {
	if err := c.conn.WriteJSON(e); err != nil {
		return fmt.Errorf("send %s: %w", e.Kind, err)
	}
	return nil
}

// Close ends the connection cleanly.
func (c *Client) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return c.conn.Close()
}

// FeedURL builds the websocket URL for a board at host:port.
func FeedURL(host string, port int) string {
	return fmt.Sprintf("ws://%s%s", net.JoinHostPort(host, fmt.Sprint(port)), FeedPath)
}
