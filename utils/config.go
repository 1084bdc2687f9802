// File: utils/config.go
package utils

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds all configurable game parameters.
type Config struct {
	// Timing
	TickRate               int `json:"tickRate"`               // Ticks per second
	CollisionDebounceTicks int `json:"collisionDebounceTicks"` // Minimum ticks between two registered paddle hits
	MaxTicks               int `json:"maxTicks"`               // Stop after this many ticks, 0 runs until quit
	KeyHoldTicks           int `json:"keyHoldTicks"`           // Ticks a key press stays active (terminals report no key release)

	// Board
	BoardWidth  int `json:"boardWidth"`
	BoardHeight int `json:"boardHeight"`

	// Ball
	BallRadius           int     `json:"ballRadius"`
	BallSpeed            float64 `json:"ballSpeed"`
	BallColor            [3]int  `json:"ballColor"`
	PowerBounceFactor    float64 `json:"powerBounceFactor"`    // Speed multiplier on an edge hit
	PowerBounceColorStep int     `json:"powerBounceColorStep"` // Green channel increase on an edge hit

	// Paddles
	PaddleWidth    int    `json:"paddleWidth"`
	PaddleHeight   int    `json:"paddleHeight"`
	PaddleMaxSpeed int    `json:"paddleMaxSpeed"`
	PaddleColor    [3]int `json:"paddleColor"`

	// Agents: "naive", "human" or "fuzzy"
	OpponentAgent string `json:"opponentAgent"`
	PlayerAgent   string `json:"playerAgent"`

	// Fuzzy controller
	InferenceCacheSize int `json:"inferenceCacheSize"` // 0 disables the memo cache

	// Outer surfaces
	Renderer      string `json:"renderer"`      // "terminal", "ascii" or "none"
	SpectatorAddr string `json:"spectatorAddr"` // Empty disables the spectator server
	Sound         bool   `json:"sound"`
	Quiet         bool   `json:"quiet"` // Discard log output
}

// DefaultConfig returns a Config struct with default values.
func DefaultConfig() Config {
	tickRate := 30

	return Config{
		TickRate:               tickRate,
		CollisionDebounceTicks: tickRate * 4,
		MaxTicks:               0,
		KeyHoldTicks:           3,

		BoardWidth:  800,
		BoardHeight: 400,

		BallRadius:           20,
		BallSpeed:            3,
		BallColor:            [3]int{255, 10, 0},
		PowerBounceFactor:    1.1,
		PowerBounceColorStep: 10,

		PaddleWidth:    80,
		PaddleHeight:   20,
		PaddleMaxSpeed: 10,
		PaddleColor:    [3]int{255, 255, 255},

		OpponentAgent: "naive",
		PlayerAgent:   "fuzzy",

		InferenceCacheSize: 4096,

		Renderer:      "terminal",
		SpectatorAddr: "",
		Sound:         false,
		Quiet:         false,
	}
}

// TickPeriod is the wall time between two ticks.
func (c Config) TickPeriod() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// Validate reports the first setting the game cannot run with.
func (c Config) Validate() error {
	switch {
	case c.TickRate <= 0:
		return fmt.Errorf("%w: tick rate must be positive, got %d", ErrInvalidConfig, c.TickRate)
	case c.CollisionDebounceTicks < 0:
		return fmt.Errorf("%w: collision debounce must not be negative", ErrInvalidConfig)
	case c.BoardWidth <= c.PaddleWidth || c.BoardHeight <= 2*c.PaddleHeight:
		return fmt.Errorf("%w: board %dx%d too small for paddle %dx%d", ErrInvalidConfig, c.BoardWidth, c.BoardHeight, c.PaddleWidth, c.PaddleHeight)
	case c.BallRadius <= 0 || c.BallRadius >= c.BoardWidth || c.BallRadius >= c.BoardHeight:
		return fmt.Errorf("%w: ball radius %d out of range", ErrInvalidConfig, c.BallRadius)
	case c.PaddleMaxSpeed < 0:
		return fmt.Errorf("%w: paddle max speed must not be negative", ErrInvalidConfig)
	case c.InferenceCacheSize < 0:
		return fmt.Errorf("%w: inference cache size must not be negative", ErrInvalidConfig)
	}
	for _, agent := range []string{c.OpponentAgent, c.PlayerAgent} {
		if agent != "naive" && agent != "human" && agent != "fuzzy" {
			return fmt.Errorf("%w: unknown agent %q", ErrInvalidConfig, agent)
		}
	}
	if c.Renderer != "terminal" && c.Renderer != "ascii" && c.Renderer != "none" {
		return fmt.Errorf("%w: unknown renderer %q", ErrInvalidConfig, c.Renderer)
	}
	return nil
}

// Logger returns the logger every component writes to.
func (c Config) Logger() *log.Logger {
	var out io.Writer = os.Stderr
	if c.Quiet {
		out = io.Discard
	}
	return log.New(out, "", log.LstdFlags|log.Lmicroseconds)
}

// LoadConfig starts from DefaultConfig, loads an optional .env file and
// applies FUZZPONG_* environment overrides.
func LoadConfig(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && len(envFiles) > 0 {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	cfg := DefaultConfig()
	var errs []error
	intVar := func(dst *int, key string) {
		v, err := getEnvInt(key, *dst)
		if err != nil {
			errs = append(errs, err)
		}
		*dst = v
	}

	intVar(&cfg.TickRate, "FUZZPONG_TICK_RATE")
	cfg.CollisionDebounceTicks = cfg.TickRate * 4
	intVar(&cfg.CollisionDebounceTicks, "FUZZPONG_COLLISION_DEBOUNCE_TICKS")
	intVar(&cfg.MaxTicks, "FUZZPONG_MAX_TICKS")
	intVar(&cfg.KeyHoldTicks, "FUZZPONG_KEY_HOLD_TICKS")
	intVar(&cfg.BoardWidth, "FUZZPONG_BOARD_WIDTH")
	intVar(&cfg.BoardHeight, "FUZZPONG_BOARD_HEIGHT")
	intVar(&cfg.BallRadius, "FUZZPONG_BALL_RADIUS")
	intVar(&cfg.PaddleWidth, "FUZZPONG_PADDLE_WIDTH")
	intVar(&cfg.PaddleHeight, "FUZZPONG_PADDLE_HEIGHT")
	intVar(&cfg.PaddleMaxSpeed, "FUZZPONG_PADDLE_MAX_SPEED")
	intVar(&cfg.InferenceCacheSize, "FUZZPONG_INFERENCE_CACHE_SIZE")

	speed, err := getEnvFloat("FUZZPONG_BALL_SPEED", cfg.BallSpeed)
	if err != nil {
		errs = append(errs, err)
	}
	cfg.BallSpeed = speed

	cfg.OpponentAgent = getEnv("FUZZPONG_OPPONENT", cfg.OpponentAgent)
	cfg.PlayerAgent = getEnv("FUZZPONG_PLAYER", cfg.PlayerAgent)
	cfg.Renderer = getEnv("FUZZPONG_RENDERER", cfg.Renderer)
	cfg.SpectatorAddr = getEnv("FUZZPONG_SPECTATOR_ADDR", cfg.SpectatorAddr)
	cfg.Sound = getEnvBool("FUZZPONG_SOUND", cfg.Sound)
	cfg.Quiet = getEnvBool("FUZZPONG_QUIET", cfg.Quiet)

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, key, value)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue, fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, key, value)
	}
	return f, nil
}

func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(getEnv(key, "")) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return defaultValue
}
