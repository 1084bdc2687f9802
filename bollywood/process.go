package bollywood

import (
	"runtime/debug"
	"sync"
	"sync/atomic"
)

const defaultMailboxSize = 1024

// process is the running instance of an actor.
type process struct {
	engine   *Engine
	pid      *PID
	props    *Props
	actor    Actor
	mailbox  chan *messageEnvelope
	stopCh   chan struct{}
	stopOnce sync.Once
	stopped  atomic.Bool
}

func newProcess(engine *Engine, pid *PID, props *Props) *process {
	return &process{
		engine:  engine,
		pid:     pid,
		props:   props,
		mailbox: make(chan *messageEnvelope, props.mailboxSize),
		stopCh:  make(chan struct{}),
	}
}

// deliver enqueues without blocking; a full mailbox drops the message.
func (p *process) deliver(env *messageEnvelope) {
	if p.stopped.Load() {
		return
	}
	select {
	case p.mailbox <- env:
	default:
		p.engine.logger.Printf("[ACTOR] %s mailbox full, dropping %T", p.pid, env.Message)
	}
}

func (p *process) stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
}

func (p *process) run() {
	defer p.engine.remove(p.pid)
	defer func() {
		if r := recover(); r != nil {
			p.engine.logger.Printf("[ACTOR] %s panicked: %v\n%s", p.pid, r, debug.Stack())
		}
		p.stopped.Store(true)
		if p.actor != nil {
			p.invoke(&messageEnvelope{Message: Stopped{}})
		}
	}()

	p.actor = p.props.Produce()
	if p.actor == nil {
		p.engine.logger.Printf("[ACTOR] %s producer returned nil", p.pid)
		return
	}

	for {
		// A pending stop wins over queued user messages.
		select {
		case <-p.stopCh:
			p.invoke(&messageEnvelope{Message: Stopping{}})
			return
		default:
		}

		select {
		case <-p.stopCh:
			p.invoke(&messageEnvelope{Message: Stopping{}})
			return
		case env := <-p.mailbox:
			p.invoke(env)
		}
	}
}

func (p *process) invoke(env *messageEnvelope) {
	ctx := &context{
		engine:  p.engine,
		self:    p.pid,
		sender:  env.Sender,
		message: env.Message,
		replyCh: env.replyCh,
	}
	defer func() {
		if r := recover(); r != nil {
			p.engine.logger.Printf("[ACTOR] %s panicked handling %T: %v\n%s", p.pid, env.Message, r, debug.Stack())
		}
	}()
	p.actor.Receive(ctx)
}
