package game

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lguibr/fuzzpong/utils"
)

func newTestSession(t *testing.T, mutate func(*utils.Config)) *Session {
	t.Helper()
	cfg := utils.DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := NewSession(cfg, nil)
	require.NoError(t, err)
	return s
}

func TestNewSession_Layout(t *testing.T) {
	s := newTestSession(t, nil)

	assert.Equal(t, Board{Width: 800, Height: 400}, s.Board())
	assert.Equal(t, 400, s.Ball().X)
	assert.Equal(t, 200, s.Ball().Y)
	assert.Equal(t, 400, s.Racket(OpponentIndex).X)
	assert.Equal(t, 0, s.Racket(OpponentIndex).Y)
	assert.Equal(t, 400, s.Racket(PlayerIndex).X)
	assert.Equal(t, 380, s.Racket(PlayerIndex).Y)
	assert.IsType(t, &NaiveOpponent{}, s.Agent(OpponentIndex))
	assert.IsType(t, &FuzzyPlayer{}, s.Agent(PlayerIndex))
	assert.Equal(t, 0, s.Tick())
	assert.Equal(t, 0, s.LastFrame().Tick)
}

func TestNewSession_InvalidConfig(t *testing.T) {
	cfg := utils.DefaultConfig()
	cfg.PlayerAgent = "neural"
	_, err := NewSession(cfg, nil)
	assert.True(t, errors.Is(err, utils.ErrInvalidConfig))
}

func TestSession_Step(t *testing.T) {
	s := newTestSession(t, nil)

	frame := s.Step()

	assert.Equal(t, 0, frame.Tick)
	assert.Equal(t, 1, s.Tick())
	assert.Equal(t, 403, frame.Ball.X)
	assert.Equal(t, 203, frame.Ball.Y)
	// Naive opponent chases the ball centre (413) at max speed.
	assert.Equal(t, 410, frame.Rackets[OpponentIndex].X)
	// Ball is left of the fuzzy player's centre: it steps left.
	player := frame.Rackets[PlayerIndex].X
	assert.Less(t, player, 400)
	assert.GreaterOrEqual(t, player, 390)
	assert.Empty(t, frame.Events)
	assert.Equal(t, frame, s.LastFrame())
}

func TestSession_FrameIsACopy(t *testing.T) {
	s := newTestSession(t, nil)
	frame := s.Step()
	s.Step()
	assert.Equal(t, 403, frame.Ball.X)
	assert.NotEqual(t, frame.Ball.X, s.Ball().X)
}

func TestSession_Observe(t *testing.T) {
	s := newTestSession(t, nil)
	xDiff, yDiff := s.Observe(PlayerIndex)
	assert.Equal(t, 440-410, xDiff)
	assert.Equal(t, 390-210, yDiff)
	xDiff, yDiff = s.Observe(OpponentIndex)
	assert.Equal(t, 30, xDiff)
	assert.Equal(t, 10-210, yDiff)
}

func TestSession_Keys(t *testing.T) {
	testCases := []struct {
		name  string
		keys  KeyState
		steps int
		wantX int
	}{
		{"left", KeyState{Left: true}, 1, 390},
		{"right", KeyState{Right: true}, 1, 410},
		{"left wins over right", KeyState{Left: true, Right: true}, 1, 390},
		{"released after hold ticks", KeyState{Left: true}, 5, 370},
		{"none", KeyState{}, 2, 400},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSession(t, func(c *utils.Config) { c.PlayerAgent = "human" })
			s.SetKeys(tc.keys)
			for i := 0; i < tc.steps; i++ {
				s.Step()
			}
			assert.Equal(t, tc.wantX, s.Racket(PlayerIndex).X)
		})
	}
}

func TestSession_KeysIgnoredForComputerPlayer(t *testing.T) {
	s := newTestSession(t, func(c *utils.Config) { c.PlayerAgent = "naive" })
	s.SetKeys(KeyState{Left: true})
	s.Step()
	// naive chases the ball centre instead
	assert.Equal(t, 410, s.Racket(PlayerIndex).X)
}

func TestSession_ResetIsLogged(t *testing.T) {
	var buf bytes.Buffer
	cfg := utils.DefaultConfig()
	cfg.OpponentAgent = "human"
	cfg.PlayerAgent = "human"
	s, err := NewSession(cfg, log.New(&buf, "", 0))
	require.NoError(t, err)

	var reset *Frame
	for i := 0; i < 200 && reset == nil; i++ {
		frame := s.Step()
		for _, ev := range frame.Events {
			if ev.Kind == EventReset {
				reset = &frame
			}
		}
	}
	require.NotNil(t, reset, "ball never left the board")
	assert.Equal(t, 400, reset.Ball.X)
	assert.Equal(t, 200, reset.Ball.Y)
	assert.Contains(t, buf.String(), "[SESSION]")
}

func TestFrame_JSON(t *testing.T) {
	s := newTestSession(t, nil)
	data, err := json.Marshal(s.Step())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "tick")
	assert.Contains(t, decoded, "ball")
	assert.Contains(t, decoded, "rackets")
	ball := decoded["ball"].(map[string]interface{})
	assert.NotContains(t, ball, "StartX")
	assert.NotContains(t, ball, "LastCollision")
}
