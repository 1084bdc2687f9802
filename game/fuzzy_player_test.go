package game

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lguibr/fuzzpong/fuzzy"
	"github.com/lguibr/fuzzpong/utils"
)

func newTestController(t *testing.T, cacheSize int) *RacketController {
	t.Helper()
	engine, err := NewRacketEngine()
	require.NoError(t, err)
	controller, err := NewRacketController(engine, cacheSize, nil)
	require.NoError(t, err)
	return controller
}

func TestRacketRules(t *testing.T) {
	rules := RacketRules()
	require.Len(t, rules, 7)
	assert.Equal(t, "IF (x_diff[left] AND (y_diff[above] OR y_diff[center])) THEN velocity[fast_right]", rules[0].String())
	assert.Equal(t, "IF x_diff[far_right] THEN velocity[fast_left]", rules[6].String())
}

func TestRacketEngine_Scenarios(t *testing.T) {
	engine, err := NewRacketEngine()
	require.NoError(t, err)

	testCases := []struct {
		name  string
		x, y  float64
		want  float64
		delta float64
	}{
		{"aligned", 0, 0, 0, 1e-9},
		{"ball far to the right", -400, 0, 10, 1e-9},
		{"ball far to the left, racket below", 350, -150, -10, 1e-9},
		{"ball slightly right", -15, 0, 7.926, 1e-3},
		{"ball slightly left", 15, 0, -7.926, 1e-3},
		{"clamped beyond universe", -1000, 500, 10, 1e-9},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := engine.Infer(fuzzy.Inputs{XDiff: tc.x, YDiff: tc.y})
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, tc.delta)
		})
	}
}

func TestRacketEngine_Symmetry(t *testing.T) {
	engine, err := NewRacketEngine()
	require.NoError(t, err)

	for x := -400.0; x <= 400; x += 7 {
		for _, y := range []float64{-150, -50, 0, 50, 150} {
			left, err := engine.Infer(fuzzy.Inputs{XDiff: x, YDiff: y})
			require.NoError(t, err)
			right, err := engine.Infer(fuzzy.Inputs{XDiff: -x, YDiff: y})
			require.NoError(t, err)
			assert.InDelta(t, -left, right, 1e-9, "x=%v y=%v", x, y)
			assert.True(t, left >= -10 && left <= 10)
		}
	}
}

func TestRacketVariables_YCoverage(t *testing.T) {
	_, y, _, err := NewRacketVariables()
	require.NoError(t, err)

	for v := -199.0; v <= 199; v++ {
		total := 0.0
		for _, degree := range y.Fuzzify(v) {
			total += degree
		}
		assert.Greater(t, total, 0.0, "y=%v", v)
	}
}

func TestRacketController_CacheMatchesEngine(t *testing.T) {
	cached := newTestController(t, 64)
	uncached := newTestController(t, 0)

	for x := -60.0; x <= 60; x += 3 {
		for _, y := range []float64{-120, 0, 120} {
			want := uncached.Decide(x, y)
			assert.Equal(t, want, cached.Decide(x, y))
			// served from the cache the second time
			assert.Equal(t, want, cached.Decide(x, y))
		}
	}
	assert.Equal(t, 64, cached.cache.Len())
}

func TestRacketController_DegenerateIsZero(t *testing.T) {
	x, err := fuzzy.NewVariable(XDiff, fuzzy.Universe{Min: -10, Max: 10, Step: 1},
		fuzzy.Set{Term: "left", Membership: fuzzy.Triangle{A: -10, B: -10, C: -5}})
	require.NoError(t, err)
	y, err := fuzzy.NewVariable(YDiff, fuzzy.Universe{Min: -10, Max: 10, Step: 1},
		fuzzy.Set{Term: "any", Membership: fuzzy.Triangle{A: -10, B: 0, C: 10}})
	require.NoError(t, err)
	v, err := fuzzy.NewVariable(Velocity, fuzzy.Universe{Min: -1, Max: 1, Step: 1},
		fuzzy.Set{Term: "go", Membership: fuzzy.Triangle{A: -1, B: 0, C: 1}})
	require.NoError(t, err)
	engine, err := fuzzy.NewEngine([]*fuzzy.Variable{x, y}, v, []fuzzy.Rule{
		fuzzy.NewRule(fuzzy.Is(XDiff, "left"), fuzzy.Term{Variable: Velocity, Name: "go"}),
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	controller, err := NewRacketController(engine, 0, log.New(&buf, "", 0))
	require.NoError(t, err)

	assert.Equal(t, 0.0, controller.Decide(5, 0))
	assert.Contains(t, buf.String(), "[FUZZY] no rule fired")
}

func TestFuzzyPlayer_Act(t *testing.T) {
	cfg := utils.DefaultConfig()
	board := Board{Width: cfg.BoardWidth, Height: cfg.BoardHeight}
	controller := newTestController(t, 0)

	testCases := []struct {
		name  string
		xDiff int
		wantX int
	}{
		{"ball far right", -400, 410},
		{"ball far left", 400, 390},
		{"aligned", 0, 400},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRacket(PlayerIndex, 400, 380, cfg)
			NewFuzzyPlayer(r, board, controller).Act(tc.xDiff, 0)
			assert.Equal(t, tc.wantX, r.X)
		})
	}
}

func TestNaiveOpponent_ChasesBallCentre(t *testing.T) {
	cfg := utils.DefaultConfig()
	board := Board{Width: cfg.BoardWidth, Height: cfg.BoardHeight}
	ball := NewBall(403, 200, cfg)
	r := NewRacket(OpponentIndex, 400, 0, cfg)

	NewNaiveOpponent(r, ball, board).Act(0, 0)
	assert.Equal(t, 410, r.X)
	NewNaiveOpponent(r, ball, board).Act(0, 0)
	assert.Equal(t, 413, r.X)
}

func TestNewAgent(t *testing.T) {
	cfg := utils.DefaultConfig()
	board := Board{Width: cfg.BoardWidth, Height: cfg.BoardHeight}
	r := NewRacket(PlayerIndex, 400, 380, cfg)
	ball := NewBall(400, 200, cfg)

	agent, err := NewAgent("human", r, ball, board, nil)
	require.NoError(t, err)
	_, ok := agent.(ManualMover)
	assert.True(t, ok)

	_, err = NewAgent("fuzzy", r, ball, board, nil)
	assert.Error(t, err)
	_, err = NewAgent("neural", r, ball, board, nil)
	assert.Error(t, err)
}
