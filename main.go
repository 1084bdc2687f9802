package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep/speaker"

	"github.com/lguibr/fuzzpong/audio"
	"github.com/lguibr/fuzzpong/bollywood"
	"github.com/lguibr/fuzzpong/game"
	"github.com/lguibr/fuzzpong/render"
	"github.com/lguibr/fuzzpong/server"
	"github.com/lguibr/fuzzpong/utils"
)

func main() {
	envFile := flag.String("env", "", "optional .env file with FUZZPONG_* settings")
	flag.Parse()

	var envFiles []string
	if *envFile != "" {
		envFiles = append(envFiles, *envFile)
	}
	cfg, err := utils.LoadConfig(envFiles...)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := cfg.Logger()
	if err := run(cfg, logger); err != nil {
		logger.Fatalf("[MAIN] %v", err)
	}
}

func run(cfg utils.Config, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := game.NewSession(cfg, logger)
	if err != nil {
		return err
	}

	engine := bollywood.NewEngine(logger)
	defer engine.Shutdown(2 * time.Second)

	done := make(chan struct{})
	sessionPID := engine.Spawn(bollywood.NewProps(game.NewSessionActorProducer(engine, session, game.SessionActorOptions{
		Logger: logger,
		Done:   done,
	})))

	sink := game.NewFrameSink()
	sinkPID := engine.Spawn(bollywood.NewProps(sink.Producer()))
	engine.Send(sessionPID, game.SubscribeFrames{PID: sinkPID}, nil)

	if cfg.SpectatorAddr != "" {
		broadcasterPID := engine.Spawn(bollywood.NewProps(game.NewBroadcasterProducer(sessionPID, logger)))
		srv := server.New(engine, sessionPID, broadcasterPID, game.RacketRules(), logger)
		go func() {
			if err := srv.Serve(ctx, cfg.SpectatorAddr); err != nil {
				logger.Printf("[HTTP] spectator server stopped: %v", err)
			}
		}()
	}

	if cfg.Sound {
		if err := audio.InitSpeaker(); err != nil {
			// Non-fatal, the game runs without sound
			logger.Printf("[AUDIO] initialization failed: %v", err)
		} else {
			engine.Spawn(bollywood.NewProps(audio.NewSoundProducer(sessionPID, speaker.Play, logger)))
		}
	}

	logger.Printf("[MAIN] %s vs %s, renderer %s", cfg.OpponentAgent, cfg.PlayerAgent, cfg.Renderer)

	switch cfg.Renderer {
	case "terminal":
		err = runTerminal(ctx, engine, sessionPID, sink, logger)
	case "ascii":
		err = render.NewASCIIRenderer(os.Stdout, render.Grid{Cols: 80, Rows: 20}).Run(ctx, sink)
	default:
		select {
		case <-ctx.Done():
		case <-done:
		}
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if reply, err := engine.Ask(sessionPID, game.GetFrameRequest{}, time.Second); err == nil {
		frame := reply.(game.Frame)
		logger.Printf("[MAIN] stopped after tick %d, ball speed %.2f", frame.Tick, frame.Ball.Speed())
	}
	return nil
}

func runTerminal(ctx context.Context, engine *bollywood.Engine, sessionPID *bollywood.PID, sink *game.FrameSink, logger *log.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}

	// The screen owns the terminal; log lines would tear it.
	out := logger.Writer()
	logger.SetOutput(io.Discard)
	defer func() {
		screen.Fini()
		logger.SetOutput(out)
	}()

	r := render.NewTerminalRenderer(screen)
	return r.Run(ctx, sink, func(keys game.KeyState) {
		engine.Send(sessionPID, game.KeysMessage{Keys: keys}, nil)
	})
}
