// File: server/server.go
package server

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/net/websocket"

	"github.com/lguibr/fuzzpong/bollywood"
	"github.com/lguibr/fuzzpong/fuzzy"
)

const defaultAskTimeout = 500 * time.Millisecond

// Server exposes a running session to spectators over HTTP and websocket.
type Server struct {
	engine         *bollywood.Engine
	sessionPID     *bollywood.PID
	broadcasterPID *bollywood.PID
	rules          []fuzzy.Rule
	logger         *log.Logger
	askTimeout     time.Duration
	startedAt      time.Time
}

func New(engine *bollywood.Engine, sessionPID, broadcasterPID *bollywood.PID, rules []fuzzy.Rule, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Server{
		engine:         engine,
		sessionPID:     sessionPID,
		broadcasterPID: broadcasterPID,
		rules:          rules,
		logger:         logger,
		askTimeout:     defaultAskTimeout,
		startedAt:      time.Now(),
	}
}

// Router builds the gin engine serving the spectator API.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/health", s.HandleHealth)
	router.GET("/state", s.HandleState)
	router.GET("/rules", s.HandleRules)
	router.GET("/subscribe", gin.WrapH(websocket.Handler(s.HandleSubscribe())))
	return router
}

// Serve listens on addr until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("[HTTP] spectator server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s.logger.Printf("[HTTP] shutting down spectator server")
		return srv.Shutdown(shutdownCtx)
	}
}
