// File: game/broadcaster_actor.go
package game

import (
	"io"
	"log"
	"strings"
	"sync"

	"github.com/lguibr/fuzzpong/bollywood"
	"golang.org/x/net/websocket"
)

// BroadcasterActor streams frames to websocket spectators. It subscribes
// itself to the session actor when started.
type BroadcasterActor struct {
	clients    map[*websocket.Conn]bool
	mu         sync.RWMutex
	selfPID    *bollywood.PID
	sessionPID *bollywood.PID
	logger     *log.Logger
}

// NewBroadcasterProducer creates a producer for BroadcasterActor.
func NewBroadcasterProducer(sessionPID *bollywood.PID, logger *log.Logger) bollywood.Producer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return func() bollywood.Actor {
		return &BroadcasterActor{
			clients:    make(map[*websocket.Conn]bool),
			sessionPID: sessionPID,
			logger:     logger,
		}
	}
}

func (a *BroadcasterActor) Receive(ctx bollywood.Context) {
	if a.selfPID == nil {
		a.selfPID = ctx.Self()
	}

	switch msg := ctx.Message().(type) {
	case bollywood.Started:
		if a.sessionPID != nil {
			ctx.Engine().Send(a.sessionPID, SubscribeFrames{PID: a.selfPID}, a.selfPID)
		}

	case AddClient:
		if msg.Conn != nil {
			a.mu.Lock()
			a.clients[msg.Conn] = true
			a.mu.Unlock()
			a.logger.Printf("[SPECTATOR] %s joined", remoteAddr(msg.Conn))
		}
		ctx.Reply(true)

	case RemoveClient:
		if msg.Conn != nil {
			a.mu.Lock()
			delete(a.clients, msg.Conn)
			a.mu.Unlock()
		}

	case FrameMessage:
		a.broadcast(msg.Frame)

	case SessionOverMessage:
		a.broadcast(msg)
		a.closeAllConnections()

	case bollywood.Stopping:
		if a.sessionPID != nil {
			ctx.Engine().Send(a.sessionPID, UnsubscribeFrames{PID: a.selfPID}, a.selfPID)
		}
		a.closeAllConnections()

	case bollywood.Stopped:

	default:
		a.logger.Printf("[SPECTATOR] broadcaster %s: unknown message %T", a.selfPID, msg)
	}
}

// ClientCount returns the number of connected spectators.
func (a *BroadcasterActor) ClientCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.clients)
}

func (a *BroadcasterActor) broadcast(payload interface{}) {
	a.mu.RLock()
	clientsToSend := make([]*websocket.Conn, 0, len(a.clients))
	for conn := range a.clients {
		clientsToSend = append(clientsToSend, conn)
	}
	a.mu.RUnlock()

	var disconnected []*websocket.Conn
	for _, ws := range clientsToSend {
		if err := websocket.JSON.Send(ws, payload); err != nil {
			if isClosedErr(err) {
				disconnected = append(disconnected, ws)
			} else {
				a.logger.Printf("[SPECTATOR] write to %s failed: %v", remoteAddr(ws), err)
			}
		}
	}

	if len(disconnected) > 0 {
		a.mu.Lock()
		for _, ws := range disconnected {
			delete(a.clients, ws)
		}
		a.mu.Unlock()
	}
}

func (a *BroadcasterActor) closeAllConnections() {
	a.mu.Lock()
	clientsToClose := make([]*websocket.Conn, 0, len(a.clients))
	for conn := range a.clients {
		clientsToClose = append(clientsToClose, conn)
	}
	a.clients = make(map[*websocket.Conn]bool)
	a.mu.Unlock()

	for _, ws := range clientsToClose {
		_ = ws.Close()
	}
}

func isClosedErr(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "use of closed network connection") ||
		strings.Contains(errStr, "broken pipe") ||
		strings.Contains(errStr, "connection reset by peer") ||
		strings.Contains(errStr, "EOF")
}

func remoteAddr(ws *websocket.Conn) string {
	if req := ws.Request(); req != nil {
		return req.RemoteAddr
	}
	return "unknown"
}
