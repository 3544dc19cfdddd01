// Package environment outlines the interface that simulated
// environments must satisfy to be driven by agent workers
package environment

import (
	"gonum.org/v1/gonum/mat"
)

// Noop is the action index of the do-nothing action. A worker issues
// Noop steps immediately after a reset until the environment reports a
// current observation.
const Noop int = -1

// Starter implements a distribution of starting states and samples
// starting states for environments
type Starter interface {
	Start() mat.Vector
}

// Environment wraps a simulation that an agent worker drives one
// discrete action at a time.
//
// After Reset, CurrentState may return nil until the environment has
// seen enough frames to produce an observation. Workers respond to a
// nil CurrentState by stepping with Noop; such a step must report the
// episode as still running, and a violation of this contract renders
// the environment unusable.
//
// Each worker exclusively owns its Environment. Implementations need
// not be safe for concurrent use.
type Environment interface {
	// Reset starts a new episode
	Reset()

	// Step takes a single environmental step given the index of the
	// action to perform, returning the reward for the transition and
	// whether the episode is still running afterwards
	Step(action int) (reward float64, running bool)

	// CurrentState returns the latest observation, or nil if no
	// observation is available yet
	CurrentState() mat.Vector

	// PreviousState returns the observation preceding CurrentState
	PreviousState() mat.Vector

	// NumActions returns the size of the discrete action set
	NumActions() int
}
