package game

import (
	"context"
	"log"
	"sync"
	"time"
)

// Sink receives what the loop produces. It is called on the loop goroutine with the session
// unlocked, so it may block on I/O but must not call Stop or Restart.
type Sink interface {
	Present(Frame)
	Notify(Event)
}

// Loop drives a Session at a fixed tick rate. Input entry points and ticks are serialized
// by one mutex, so the session only ever sees one writer at a time.
type Loop struct {
	mu      sync.Mutex // guards session
	session *Session
	sink    Sink
	rate    int
	clock   func() time.Time

	runMu  sync.Mutex // guards cancel/done
	cancel context.CancelFunc
	done   chan struct{}
}

// NewLoop binds a session to a sink. rate is ticks per second.
func NewLoop(s *Session, sink Sink, rate int) *Loop {
	if rate <= 0 {
		rate = TickRate
	}
	return &Loop{
		session: s,
		sink:    sink,
		rate:    rate,
		clock:   time.Now,
	}
}

// Start launches the tick goroutine. Starting a running loop does nothing.
func (l *Loop) Start(ctx context.Context) {
	l.runMu.Lock()
	defer l.runMu.Unlock()
	if l.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	l.cancel = cancel
	l.done = done
	go l.run(ctx, done)
}

// Stop halts the tick goroutine and waits for it to exit. Safe to call repeatedly.
func (l *Loop) Stop() {
	l.runMu.Lock()
	defer l.runMu.Unlock()
	if l.cancel == nil {
		return
	}
	l.cancel()
	<-l.done
	l.cancel = nil
	l.done = nil
}

// Running reports whether the tick goroutine is live.
func (l *Loop) Running() bool {
	l.runMu.Lock()
	defer l.runMu.Unlock()
	return l.cancel != nil
}

func (l *Loop) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(time.Second / time.Duration(l.rate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Step()
		}
	}
}

// Step runs one tick and one render, then hands events and the frame to the sink.
func (l *Loop) Step() {
	l.mu.Lock()
	l.session.Tick()
	frame := l.session.Frame(l.clock())
	events := l.session.DrainEvents()
	l.mu.Unlock()

	l.deliver(events)
	if l.sink != nil {
		l.sink.Present(frame)
	}
}

// Restart tears the loop down, begins a fresh run and brings the loop back up.
// A run in progress refuses the restart and the loop is left untouched.
func (l *Loop) Restart(ctx context.Context) error {
	if st := l.Status().State; st != Menu && st != GameOver {
		return ErrBadTransition
	}
	l.Stop()
	err := l.apply(func(s *Session) error { return s.Start() })
	l.Start(ctx)
	if err != nil {
		return err
	}
	log.Printf("session restarted")
	return nil
}

// Resume closes the popup.
func (l *Loop) Resume() error {
	return l.apply(func(s *Session) error { return s.Resume() })
}

// Resize forwards a canvas size change.
func (l *Loop) Resize(w, h float64) {
	_ = l.apply(func(s *Session) error {
		s.Resize(w, h)
		return nil
	})
}

// SetDirection buffers a turn request.
func (l *Loop) SetDirection(x, y float64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.session.SetDirection(x, y)
}

// Status returns the session counters.
func (l *Loop) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.session.Status()
}

// View runs fn with the session locked. fn must not retain the session.
func (l *Loop) View(fn func(s *Session)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.session)
}

func (l *Loop) apply(fn func(s *Session) error) error {
	l.mu.Lock()
	err := fn(l.session)
	events := l.session.DrainEvents()
	l.mu.Unlock()

	l.deliver(events)
	return err
}

func (l *Loop) deliver(events []Event) {
	if l.sink == nil {
		return
	}
	for _, e := range events {
		l.sink.Notify(e)
	}
}
