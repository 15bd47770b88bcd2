package stream

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/mirrorview/mirror-view-go/config"
	"github.com/mirrorview/mirror-view-go/domain/source"
)

// State is the session lifecycle state.
type State int32

const (
	StateIdle State = iota
	StateStarting
	StateActive
	StateStopping
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateActive:
		return "active"
	case StateStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// Subscription is an active capture stream handle.
type Subscription interface {
	Close(ctx context.Context) error
}

// Subscriber establishes capture subscriptions against the host capture
// subsystem. deliver is invoked on a dedicated background goroutine for every
// produced frame and must not be called after Close returns.
type Subscriber interface {
	Subscribe(ctx context.Context, src source.Source, cfg Configuration, deliver func(RawFrame)) (Subscription, error)
}

// FrameSink consumes raw frames on the session's pump goroutine. Reset is
// called when the session stops so no stale frame stays published.
type FrameSink interface {
	OnRawFrame(f RawFrame)
	Reset()
}

// SessionStats summarises delivery behaviour for instrumentation.
type SessionStats struct {
	Delivered uint64
	Displaced uint64
}

// Session owns at most one live capture subscription. Start while a session
// is live replaces it (stop-then-start); Stop is idempotent. Transitions are
// serialized by the session's mutex, frame delivery stays lock-free.
type Session struct {
	backend Subscriber
	sink    FrameSink
	cfg     *config.Config
	logger  *slog.Logger

	mu       sync.Mutex // serializes Start/Stop
	state    atomic.Int32
	gen      atomic.Uint64 // bumped on stop; deliveries from older generations are dropped
	sub      Subscription
	src      source.Source
	done     chan struct{}
	pumpDone chan struct{}

	delivered atomic.Uint64
	displaced atomic.Uint64
}

// NewSession constructs a session that republishes frames into sink.
// A nil backend falls back to the built-in screen grabber.
func NewSession(backend Subscriber, sink FrameSink, cfg *config.Config, logger *slog.Logger) *Session {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if backend == nil {
		backend = NewGrabber(logger)
	}
	return &Session{backend: backend, sink: sink, cfg: cfg, logger: logger}
}

// State returns the current lifecycle state.
func (s *Session) State() State { return State(s.state.Load()) }

// Source returns the capture source the session was started against.
func (s *Session) Source() (source.Source, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.State() != StateActive {
		return source.Source{}, false
	}
	return s.src, true
}

// Stats returns delivery counters for the current run.
func (s *Session) Stats() SessionStats {
	return SessionStats{Delivered: s.delivered.Load(), Displaced: s.displaced.Load()}
}

// Start establishes a capture subscription against src. A live or starting
// session is stopped first, so Start is effectively "replace current
// session". On failure the session returns to idle and the error is surfaced
// to the caller; there is no automatic retry.
func (s *Session) Start(ctx context.Context, src source.Source) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State() != StateIdle {
		_ = s.stopLocked(ctx)
	}
	s.state.Store(int32(StateStarting))

	sc := DeriveConfiguration(src.Bounds, s.cfg)
	if err := sc.Validate(); err != nil {
		s.state.Store(int32(StateIdle))
		return fmt.Errorf("session: start %d: %w", src.ID, err)
	}

	gen := s.gen.Load()
	frames := make(chan RawFrame, sc.QueueDepth)
	deliver := func(f RawFrame) {
		// Background delivery path. The generation guard stands in for a
		// non-owning back-reference: once the session has moved on, a stray
		// late frame resolves to nothing and is silently dropped.
		if s.gen.Load() != gen {
			return
		}
		select {
		case frames <- f:
		default:
			// Bounded queue full: displace the oldest frame.
			select {
			case <-frames:
				s.displaced.Add(1)
			default:
			}
			select {
			case frames <- f:
			default:
			}
		}
	}

	sub, err := s.backend.Subscribe(ctx, src, sc, deliver)
	if err != nil {
		s.state.Store(int32(StateIdle))
		return fmt.Errorf("session: start %d: %w", src.ID, err)
	}

	s.sub = sub
	s.src = src
	s.done = make(chan struct{})
	s.pumpDone = make(chan struct{})
	go s.pump(gen, frames, s.done, s.pumpDone)
	s.state.Store(int32(StateActive))
	if s.logger != nil {
		s.logger.Info("session.start", "source", src.ID, "title", src.Title,
			"width", sc.Width, "height", sc.Height, "interval", sc.FrameInterval)
	}
	return nil
}

// Stop tears the subscription down and clears retained frame state. Calling
// it while already idle is a no-op. When Stop returns, no further frame is
// published.
func (s *Session) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopLocked(ctx)
}

func (s *Session) stopLocked(ctx context.Context) error {
	if s.State() == StateIdle {
		return nil
	}
	s.state.Store(int32(StateStopping))
	s.gen.Add(1) // frames in flight are stale from here on

	if s.done != nil {
		close(s.done)
		s.done = nil
	}
	if s.pumpDone != nil {
		<-s.pumpDone // in-progress sink hand-off finishes before we clear state
		s.pumpDone = nil
	}

	var err error
	if s.sub != nil {
		err = s.sub.Close(ctx)
		s.sub = nil
	}
	s.src = source.Source{}
	if s.sink != nil {
		s.sink.Reset()
	}
	s.state.Store(int32(StateIdle))
	if s.logger != nil {
		s.logger.Info("session.stop",
			"delivered", s.delivered.Load(), "displaced", s.displaced.Load(), "error", err)
	}
	return err
}

// pump moves frames from the bounded delivery queue into the sink, in arrival
// order, on its own goroutine.
func (s *Session) pump(gen uint64, frames <-chan RawFrame, done <-chan struct{}, pumpDone chan<- struct{}) {
	defer close(pumpDone)
	for {
		select {
		case <-done:
			return
		case f := <-frames:
			if s.gen.Load() != gen {
				return
			}
			s.delivered.Add(1)
			if s.sink != nil {
				s.sink.OnRawFrame(f)
			}
		}
	}
}
