// File: game/messages.go
package game

import (
	"github.com/lguibr/fuzzpong/bollywood"
	"golang.org/x/net/websocket"
)

// --- Session actor messages ---

// KeysMessage forwards a keyboard snapshot from the renderer.
type KeysMessage struct {
	Keys KeyState
}

// SubscribeFrames registers PID to receive a FrameMessage after every tick.
type SubscribeFrames struct {
	PID *bollywood.PID
}

// UnsubscribeFrames removes a frame subscriber.
type UnsubscribeFrames struct {
	PID *bollywood.PID
}

// GetFrameRequest asks for the last published frame. The reply is a Frame.
type GetFrameRequest struct{}

// StepCommand advances the session by one tick outside of the ticker.
type StepCommand struct{}

// sessionTick is posted by the ticker goroutine to the session actor itself.
type sessionTick struct{}

// --- Published to subscribers ---

// FrameMessage carries the frame produced by a tick.
type FrameMessage struct {
	Frame Frame
}

// SessionOverMessage is sent once the tick limit has been reached.
type SessionOverMessage struct {
	Tick int `json:"tick"`
}

// --- Broadcaster messages ---

// AddClient registers a websocket spectator with the broadcaster.
type AddClient struct {
	Conn *websocket.Conn
}

// RemoveClient drops a websocket spectator.
type RemoveClient struct {
	Conn *websocket.Conn
}
