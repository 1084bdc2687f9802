package bollywood

// Actor processes the messages of its mailbox one at a time.
type Actor interface {
	Receive(ctx Context)
}

// Producer creates a fresh actor instance.
type Producer func() Actor

// Props configures how an actor is spawned.
type Props struct {
	producer    Producer
	mailboxSize int
}

func NewProps(producer Producer) *Props {
	if producer == nil {
		panic("bollywood: producer cannot be nil")
	}
	return &Props{producer: producer, mailboxSize: defaultMailboxSize}
}

// WithMailboxSize overrides the mailbox capacity.
func (p *Props) WithMailboxSize(size int) *Props {
	if size > 0 {
		p.mailboxSize = size
	}
	return p
}

func (p *Props) Produce() Actor {
	return p.producer()
}
