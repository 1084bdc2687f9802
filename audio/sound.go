// Package audio plays short tones for physics events.
package audio

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lguibr/fuzzpong/bollywood"
	"github.com/lguibr/fuzzpong/game"
)

const SampleRate = beep.SampleRate(44100)

// Tone is a sine beep.
type Tone struct {
	Freq     float64
	Duration time.Duration
}

var tones = map[game.EventKind]Tone{
	game.EventWallBounce:  {Freq: 330, Duration: 25 * time.Millisecond},
	game.EventBounce:      {Freq: 440, Duration: 40 * time.Millisecond},
	game.EventPowerBounce: {Freq: 880, Duration: 60 * time.Millisecond},
	game.EventReset:       {Freq: 110, Duration: 250 * time.Millisecond},
}

// ToneFor returns the tone played for an event kind.
func ToneFor(kind game.EventKind) (Tone, bool) {
	t, ok := tones[kind]
	return t, ok
}

// Streamer returns a finite streamer for the tone.
func (t Tone) Streamer() (beep.Streamer, error) {
	sine, err := generators.SineTone(SampleRate, t.Freq)
	if err != nil {
		return nil, fmt.Errorf("tone %vHz: %w", t.Freq, err)
	}
	return beep.Take(SampleRate.N(t.Duration), sine), nil
}

// InitSpeaker opens the audio device with a 100ms buffer.
func InitSpeaker() error {
	return speaker.Init(SampleRate, SampleRate.N(time.Second/10))
}

// PlayFunc plays streamers without blocking; speaker.Play fits.
type PlayFunc func(s ...beep.Streamer)

// SoundActor subscribes to a session and plays a tone for every event in
// the frames it receives.
type SoundActor struct {
	sessionPID *bollywood.PID
	play       PlayFunc
	logger     *log.Logger
	selfPID    *bollywood.PID
}

func NewSoundProducer(sessionPID *bollywood.PID, play PlayFunc, logger *log.Logger) bollywood.Producer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return func() bollywood.Actor {
		return &SoundActor{sessionPID: sessionPID, play: play, logger: logger}
	}
}

func (a *SoundActor) Receive(ctx bollywood.Context) {
	switch msg := ctx.Message().(type) {
	case bollywood.Started:
		a.selfPID = ctx.Self()
		ctx.Engine().Send(a.sessionPID, game.SubscribeFrames{PID: a.selfPID}, a.selfPID)
	case game.FrameMessage:
		for _, ev := range msg.Frame.Events {
			a.playEvent(ev)
		}
	case bollywood.Stopping:
		ctx.Engine().Send(a.sessionPID, game.UnsubscribeFrames{PID: a.selfPID}, a.selfPID)
	}
}

func (a *SoundActor) playEvent(ev game.Event) {
	tone, ok := ToneFor(ev.Kind)
	if !ok {
		return
	}
	s, err := tone.Streamer()
	if err != nil {
		a.logger.Printf("[AUDIO] %v", err)
		return
	}
	a.play(s)
}
