// File: game/session_actor.go
package game

import (
	"io"
	"log"
	"time"

	"github.com/lguibr/fuzzpong/bollywood"
)

// SessionActorOptions tunes a SessionActor.
type SessionActorOptions struct {
	Logger *log.Logger
	// Manual disables the ticker; the session then only advances on
	// StepCommand.
	Manual bool
	// Done, when set, is closed after the tick limit is reached.
	Done chan struct{}
}

// SessionActor owns a Session and drives it from a ticker goroutine. Ticks
// are posted to the actor's own mailbox, so a tick never overlaps another.
type SessionActor struct {
	session     *Session
	engine      *bollywood.Engine
	opts        SessionActorOptions
	logger      *log.Logger
	selfPID     *bollywood.PID
	subscribers map[string]*bollywood.PID

	ticker       *time.Ticker
	stopTickerCh chan struct{}
	over         bool
}

// NewSessionActorProducer creates a producer for a SessionActor driving session.
func NewSessionActorProducer(engine *bollywood.Engine, session *Session, opts SessionActorOptions) bollywood.Producer {
	return func() bollywood.Actor {
		logger := opts.Logger
		if logger == nil {
			logger = log.New(io.Discard, "", 0)
		}
		return &SessionActor{
			session:      session,
			engine:       engine,
			opts:         opts,
			logger:       logger,
			subscribers:  make(map[string]*bollywood.PID),
			stopTickerCh: make(chan struct{}),
		}
	}
}

func (a *SessionActor) Receive(ctx bollywood.Context) {
	if a.selfPID == nil {
		a.selfPID = ctx.Self()
	}

	switch msg := ctx.Message().(type) {
	case bollywood.Started:
		a.logger.Printf("[SESSION] %s started, %dx%d board at %d ticks/s", a.selfPID, a.session.board.Width, a.session.board.Height, a.session.cfg.TickRate)
		if !a.opts.Manual {
			a.startTicker()
		}

	case sessionTick, StepCommand:
		a.step()

	case KeysMessage:
		a.session.SetKeys(msg.Keys)

	case SubscribeFrames:
		if msg.PID != nil {
			a.subscribers[msg.PID.ID] = msg.PID
		}

	case UnsubscribeFrames:
		if msg.PID != nil {
			delete(a.subscribers, msg.PID.ID)
		}

	case GetFrameRequest:
		ctx.Reply(a.session.LastFrame())

	case bollywood.Stopping:
		a.stopTicker()
		a.logger.Printf("[SESSION] %s stopping at tick %d", a.selfPID, a.session.Tick())

	case bollywood.Stopped:

	default:
		a.logger.Printf("[SESSION] %s: unknown message %T", a.selfPID, msg)
	}
}

func (a *SessionActor) step() {
	if a.over {
		return
	}
	frame := a.session.Step()
	for _, pid := range a.subscribers {
		a.engine.Send(pid, FrameMessage{Frame: frame}, a.selfPID)
	}

	limit := a.session.cfg.MaxTicks
	if limit > 0 && a.session.Tick() >= limit {
		a.over = true
		a.stopTicker()
		a.logger.Printf("[SESSION] %s reached tick limit %d", a.selfPID, limit)
		for _, pid := range a.subscribers {
			a.engine.Send(pid, SessionOverMessage{Tick: a.session.Tick()}, a.selfPID)
		}
		if a.opts.Done != nil {
			close(a.opts.Done)
		}
	}
}

func (a *SessionActor) startTicker() {
	a.ticker = time.NewTicker(a.session.cfg.TickPeriod())
	tickerCh := a.ticker.C
	stopCh := a.stopTickerCh
	self := a.selfPID

	go func() {
		defer func() {
			if r := recover(); r != nil {
				a.logger.Printf("[SESSION] ticker for %s panicked: %v", self, r)
			}
		}()
		for {
			select {
			case <-stopCh:
				return
			case <-tickerCh:
				a.engine.Send(self, sessionTick{}, nil)
			}
		}
	}()
}

func (a *SessionActor) stopTicker() {
	if a.ticker == nil {
		return
	}
	a.ticker.Stop()
	close(a.stopTickerCh)
	a.ticker = nil
}

// FrameSink hands the latest frame to a non-actor consumer such as a
// renderer. Frames the consumer has not picked up yet are replaced, never
// queued.
type FrameSink struct {
	frames chan Frame
	over   chan struct{}
}

func NewFrameSink() *FrameSink {
	return &FrameSink{
		frames: make(chan Frame, 1),
		over:   make(chan struct{}),
	}
}

// Frames yields the most recent frame.
func (s *FrameSink) Frames() <-chan Frame { return s.frames }

// Over is closed when the session reports the tick limit or the sink stops.
func (s *FrameSink) Over() <-chan struct{} { return s.over }

// Producer returns a producer that spawns this sink as an actor.
func (s *FrameSink) Producer() bollywood.Producer {
	return func() bollywood.Actor { return s }
}

func (s *FrameSink) Receive(ctx bollywood.Context) {
	switch msg := ctx.Message().(type) {
	case FrameMessage:
		select {
		case <-s.frames:
		default:
		}
		s.frames <- msg.Frame
	case SessionOverMessage, bollywood.Stopping:
		s.close()
	}
}

func (s *FrameSink) close() {
	select {
	case <-s.over:
	default:
		close(s.over)
	}
}
