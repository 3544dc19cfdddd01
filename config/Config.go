// Package config describes the run configuration shared by all agent
// workers
package config

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/spatial/r1"
)

// Default recurrent layer width, matching the usual LSTM cell size of
// convolutional actor-critic architectures
const DefaultLSTMSize int = 256

// Config holds the knobs that govern how workers segment trajectories,
// discount rewards, select actions, and terminate. A single Config is
// shared read-only by every worker in a run.
type Config struct {
	// Discount is the reward discount factor γ ∈ [0, 1]
	Discount float64

	// RewardClipping determines whether raw rewards are clipped into
	// RewardBounds before entering the discounting recurrence
	RewardClipping bool

	// RewardBounds gives the clipping range when RewardClipping is set
	RewardBounds r1.Interval

	// TimeMax is the segment cap: the maximum number of experiences
	// buffered before a trajectory segment is cut and emitted
	TimeMax int

	// NumLSTMs is the number of recurrent layers threaded through
	// prediction requests. Zero means the model is feedforward and
	// recurrent state is absent from the protocol entirely.
	NumLSTMs int

	// LSTMSize is the width of each recurrent cell and hidden vector
	LSTMSize int

	// PlayMode selects deterministic arg-max action selection instead
	// of sampling from the predicted distribution
	PlayMode bool

	// MaxSteps stops a worker once its cumulative environment step
	// count reaches this threshold. Zero means no step limit.
	MaxSteps int

	// StartupJitter bounds the random sleep performed by each worker
	// before its first episode so that workers do not stampede the
	// prediction service all at once
	StartupJitter time.Duration
}

// Default returns a Config with the conventional settings for
// asynchronous actor-critic training
func Default() Config {
	return Config{
		Discount:       0.99,
		RewardClipping: true,
		RewardBounds:   r1.Interval{Min: -1.0, Max: 1.0},
		TimeMax:        5,
		NumLSTMs:       0,
		LSTMSize:       DefaultLSTMSize,
		PlayMode:       false,
		MaxSteps:       0,
		StartupJitter:  time.Second,
	}
}

// Validate checks that the configuration is internally consistent
func (c Config) Validate() error {
	if c.Discount < 0.0 || c.Discount > 1.0 {
		return fmt.Errorf("validate: discount must be in [0, 1], got %v",
			c.Discount)
	}
	if c.TimeMax < 2 {
		return fmt.Errorf("validate: time max must fit the carried "+
			"trailer plus at least one step, got %v", c.TimeMax)
	}
	if c.NumLSTMs < 0 {
		return fmt.Errorf("validate: number of LSTM layers cannot be "+
			"negative, got %v", c.NumLSTMs)
	}
	if c.NumLSTMs > 0 && c.LSTMSize < 1 {
		return fmt.Errorf("validate: LSTM size must be positive, got %v",
			c.LSTMSize)
	}
	if c.RewardClipping && c.RewardBounds.Min > c.RewardBounds.Max {
		return fmt.Errorf("validate: illegal reward bounds [%v, %v]",
			c.RewardBounds.Min, c.RewardBounds.Max)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("validate: max steps cannot be negative, got %v",
			c.MaxSteps)
	}
	return nil
}

// ClipBounds returns the reward clipping interval, or nil if clipping
// is disabled
func (c Config) ClipBounds() *r1.Interval {
	if !c.RewardClipping {
		return nil
	}
	bounds := c.RewardBounds
	return &bounds
}
