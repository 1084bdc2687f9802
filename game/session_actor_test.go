package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lguibr/fuzzpong/bollywood"
	"github.com/lguibr/fuzzpong/utils"
)

func spawnTestSession(t *testing.T, mutate func(*utils.Config), opts SessionActorOptions) (*bollywood.Engine, *bollywood.PID) {
	t.Helper()
	session := newTestSession(t, mutate)
	engine := bollywood.NewEngine(nil)
	t.Cleanup(func() { engine.Shutdown(time.Second) })
	pid := engine.Spawn(bollywood.NewProps(NewSessionActorProducer(engine, session, opts)))
	require.NotNil(t, pid)
	return engine, pid
}

func askFrame(t *testing.T, engine *bollywood.Engine, pid *bollywood.PID) Frame {
	t.Helper()
	reply, err := engine.Ask(pid, GetFrameRequest{}, time.Second)
	require.NoError(t, err)
	frame, ok := reply.(Frame)
	require.True(t, ok, "unexpected reply %T", reply)
	return frame
}

func TestSessionActor_ManualStep(t *testing.T) {
	engine, pid := spawnTestSession(t, nil, SessionActorOptions{Manual: true})

	assert.Equal(t, 200, askFrame(t, engine, pid).Ball.Y)

	engine.Send(pid, StepCommand{}, nil)
	engine.Send(pid, StepCommand{}, nil)
	frame := askFrame(t, engine, pid)

	assert.Equal(t, 1, frame.Tick)
	assert.Equal(t, 206, frame.Ball.Y)
}

func TestSessionActor_KeysMoveHumanPlayer(t *testing.T) {
	engine, pid := spawnTestSession(t, func(c *utils.Config) { c.PlayerAgent = "human" }, SessionActorOptions{Manual: true})

	engine.Send(pid, KeysMessage{Keys: KeyState{Right: true}}, nil)
	engine.Send(pid, StepCommand{}, nil)

	assert.Equal(t, 410, askFrame(t, engine, pid).Rackets[PlayerIndex].X)
}

func TestSessionActor_PublishesFrames(t *testing.T) {
	engine, pid := spawnTestSession(t, nil, SessionActorOptions{Manual: true})
	sink := NewFrameSink()
	sinkPID := engine.Spawn(bollywood.NewProps(sink.Producer()))
	engine.Send(pid, SubscribeFrames{PID: sinkPID}, nil)

	engine.Send(pid, StepCommand{}, nil)

	select {
	case frame := <-sink.Frames():
		assert.Equal(t, 0, frame.Tick)
	case <-time.After(time.Second):
		t.Fatal("no frame published")
	}

	engine.Send(pid, UnsubscribeFrames{PID: sinkPID}, nil)
	engine.Send(pid, StepCommand{}, nil)
	askFrame(t, engine, pid)
	select {
	case frame := <-sink.Frames():
		t.Fatalf("unexpected frame %d after unsubscribe", frame.Tick)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSessionActor_TickLimit(t *testing.T) {
	done := make(chan struct{})
	engine, pid := spawnTestSession(t, func(c *utils.Config) { c.MaxTicks = 3 }, SessionActorOptions{Manual: true, Done: done})
	sink := NewFrameSink()
	sinkPID := engine.Spawn(bollywood.NewProps(sink.Producer()))
	engine.Send(pid, SubscribeFrames{PID: sinkPID}, nil)

	for i := 0; i < 5; i++ {
		engine.Send(pid, StepCommand{}, nil)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("session did not finish")
	}
	select {
	case <-sink.Over():
	case <-time.After(time.Second):
		t.Fatal("sink not notified")
	}
	// steps after the limit are ignored
	assert.Equal(t, 2, askFrame(t, engine, pid).Tick)
}

func TestSessionActor_Ticker(t *testing.T) {
	engine, pid := spawnTestSession(t, func(c *utils.Config) { c.TickRate = 200 }, SessionActorOptions{})

	assert.Eventually(t, func() bool {
		reply, err := engine.Ask(pid, GetFrameRequest{}, 100*time.Millisecond)
		return err == nil && reply.(Frame).Tick >= 5
	}, 2*time.Second, 10*time.Millisecond)

	engine.Stop(pid)
	assert.Eventually(t, func() bool { return engine.Count() == 0 }, time.Second, 10*time.Millisecond)
}

func TestFrameSink_KeepsLatestFrame(t *testing.T) {
	sink := NewFrameSink()
	engine := bollywood.NewEngine(nil)
	defer engine.Shutdown(time.Second)
	pid := engine.Spawn(bollywood.NewProps(sink.Producer()))

	for i := 0; i < 10; i++ {
		engine.Send(pid, FrameMessage{Frame: Frame{Tick: i}}, nil)
	}

	assert.Eventually(t, func() bool {
		select {
		case frame := <-sink.Frames():
			return frame.Tick == 9
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}
