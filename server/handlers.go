// File: server/handlers.go
package server

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/websocket"

	"github.com/lguibr/fuzzpong/bollywood"
	"github.com/lguibr/fuzzpong/game"
)

// HandleHealth reports liveness and uptime.
func (s *Server) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.startedAt).String(),
		"actors": s.engine.Count(),
	})
}

// HandleState returns the last frame published by the session actor.
func (s *Server) HandleState(c *gin.Context) {
	frame, err := s.askFrame()
	if err != nil {
		status := http.StatusServiceUnavailable
		if errors.Is(err, bollywood.ErrTimeout) {
			status = http.StatusGatewayTimeout
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, frame)
}

// HandleRules lists the controller's rule base in readable form.
func (s *Server) HandleRules(c *gin.Context) {
	rules := make([]string, len(s.rules))
	for i, rule := range s.rules {
		rules[i] = rule.String()
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

// HandleSubscribe registers the connection with the broadcaster, sends the
// current frame, then holds the connection open until the client leaves.
func (s *Server) HandleSubscribe() func(ws *websocket.Conn) {
	return func(ws *websocket.Conn) {
		addr := ws.Request().RemoteAddr
		defer func() {
			if r := recover(); r != nil {
				s.logger.Printf("[HTTP] subscribe handler for %s panicked: %v", addr, r)
			}
			s.engine.Send(s.broadcasterPID, game.RemoveClient{Conn: ws}, nil)
			_ = ws.Close()
		}()

		if _, err := s.engine.Ask(s.broadcasterPID, game.AddClient{Conn: ws}, s.askTimeout); err != nil {
			s.logger.Printf("[HTTP] could not register spectator %s: %v", addr, err)
			return
		}
		if frame, err := s.askFrame(); err == nil {
			if err := websocket.JSON.Send(ws, frame); err != nil {
				return
			}
		}

		s.readLoop(ws)
	}
}

// readLoop discards client messages; it returns when the connection closes.
func (s *Server) readLoop(ws *websocket.Conn) {
	var msg string
	for {
		if err := websocket.Message.Receive(ws, &msg); err != nil {
			if err != io.EOF && !strings.Contains(err.Error(), "closed") {
				s.logger.Printf("[HTTP] read from %s failed: %v", ws.Request().RemoteAddr, err)
			}
			return
		}
	}
}

func (s *Server) askFrame() (game.Frame, error) {
	reply, err := s.engine.Ask(s.sessionPID, game.GetFrameRequest{}, s.askTimeout)
	if err != nil {
		return game.Frame{}, err
	}
	frame, ok := reply.(game.Frame)
	if !ok {
		return game.Frame{}, errors.New("unexpected reply from session")
	}
	return frame, nil
}
