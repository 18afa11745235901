package input

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrLoopClosed is returned by Post after the loop has stopped.
var ErrLoopClosed = errors.New("input loop closed")

// DefaultQueueSize is the event buffer used when NewLoop is given zero.
const DefaultQueueSize = 256

// Handler processes one event. It runs on the loop goroutine only.
type Handler func(Event)

type item struct {
	ev Event
	fn func()
}

// Loop serializes events from any number of producers onto one goroutine.
// Events are handled strictly in the order Post accepted them; a handler
// always finishes before the next event starts.
type Loop struct {
	events  chan item
	handler Handler
	seq     uint64
	done    chan struct{}
	once    sync.Once
	log     *slog.Logger

	// After, if set, runs on the loop goroutine after each handled event.
	After func(Event)
}

// NewLoop returns a loop that hands events to h.
func NewLoop(h Handler, size int, log *slog.Logger) *Loop {
	if size <= 0 {
		size = DefaultQueueSize
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Loop{
		events:  make(chan item, size),
		handler: h,
		done:    make(chan struct{}),
		log:     log.With("component", "input"),
	}
}

// Post queues e. It blocks while the queue is full until ctx is done or the
// loop stops.
func (l *Loop) Post(ctx context.Context, e Event) error {
	return l.enqueue(ctx, item{ev: e})
}

// Do runs fn on the loop goroutine, ordered with the events around it.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	return l.enqueue(ctx, item{fn: fn})
}

func (l *Loop) enqueue(ctx context.Context, it item) error {
	select {
	case <-l.done:
		return ErrLoopClosed
	default:
	}
	select {
	case l.events <- it:
		return nil
	case <-l.done:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run handles events until ctx is done. Events still queued are dropped.
func (l *Loop) Run(ctx context.Context) error {
	defer l.once.Do(func() { close(l.done) })
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case it := <-l.events:
			if it.fn != nil {
				it.fn()
				continue
			}
			l.handle(it.ev)
		}
	}
}

func (l *Loop) handle(e Event) {
	l.seq++
	e.Seq = l.seq
	l.log.Debug("event", "seq", e.Seq, "kind", e.Kind, "source", e.Source, "touches", len(e.Touches))
	l.handler(e)
	if l.After != nil {
		l.After(e)
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} { return l.done }
