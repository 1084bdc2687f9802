package bollywood

// Started is the first message every actor receives.
type Started struct{}

// Stopping asks the actor to release its resources. No user message is
// delivered after it.
type Stopping struct{}

// Stopped is the last message an actor receives.
type Stopped struct{}

type messageEnvelope struct {
	Sender  *PID
	Message interface{}
	replyCh chan interface{}
}

func isSystemMessage(msg interface{}) bool {
	switch msg.(type) {
	case Started, Stopping, Stopped:
		return true
	}
	return false
}
