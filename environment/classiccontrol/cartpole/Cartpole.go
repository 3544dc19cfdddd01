// Package cartpole implements the Cartpole classic control environment
package cartpole

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	env "sfneuman.com/ga3c/environment"
	"sfneuman.com/ga3c/utils/floatutils"
)

const (
	// Physical constants
	Gravity        float64 = 9.8
	CartMass       float64 = 1.0
	PoleMass       float64 = 0.1
	HalfPoleLength float64 = 0.5  // half of pole length
	ForceMag       float64 = 10.0 // Magnification of force applied
	Dt             float64 = 0.02 // seconds between state updates

	// Bounds (+/-) on state variables
	PositionBounds float64 = 4.8
	AngleBounds    float64 = math.Pi

	// FailAngle is the pole angle beyond which the episode ends
	FailAngle float64 = 12 * 2 * math.Pi / 360

	// Discrete actions
	AccelerateLeft  int = 0
	DoNothing       int = 1
	AccelerateRight int = 2
	NumActions      int = 3
)

// Cartpole implements the classic control environment Cartpole. A pole
// is attached to a cart which moves horizontally, and the agent must
// keep the pole balanced upright for as long as possible.
//
// The state features are continuous and consist of the cart's x
// position and speed, as well as the pole's angle from the positive
// y-axis and the pole's angular velocity.
//
// Actions are discrete and determine the force applied to the cart:
//
//	Action	Meaning
//	  0		Accelerate left
//	  1		Do nothing
//	  2		Accelerate right
//
// The reward is +1 on every step on which the pole is within FailAngle
// of upright and -1 on the step that drops it below. Episodes end when
// the pole falls or after stepLimit steps.
//
// The first observation of an episode only becomes available after the
// first step, so CurrentState returns nil immediately after Reset and
// the driving worker is expected to issue a Noop step.
type Cartpole struct {
	env.Starter
	state     *mat.VecDense
	current   mat.Vector
	previous  mat.Vector
	steps     int
	stepLimit int

	positionBounds r1.Interval
	angleBounds    r1.Interval
}

// New constructs a new Cartpole environment whose starting states are
// drawn from starter and whose episodes last at most stepLimit steps
func New(starter env.Starter, stepLimit int) *Cartpole {
	c := &Cartpole{
		Starter:        starter,
		stepLimit:      stepLimit,
		positionBounds: r1.Interval{Min: -PositionBounds, Max: PositionBounds},
		angleBounds:    r1.Interval{Min: -AngleBounds, Max: AngleBounds},
	}
	c.Reset()
	return c
}

// Reset starts a new episode from a freshly sampled starting state
func (c *Cartpole) Reset() {
	start := c.Start()
	c.state = mat.NewVecDense(4, []float64{start.AtVec(0), start.AtVec(1),
		start.AtVec(2), start.AtVec(3)})
	c.current = nil
	c.previous = nil
	c.steps = 0
}

// CurrentState returns the latest observation, or nil if the episode
// has not yet taken its first step
func (c *Cartpole) CurrentState() mat.Vector { return c.current }

// PreviousState returns the observation before the latest one
func (c *Cartpole) PreviousState() mat.Vector { return c.previous }

// NumActions returns the number of discrete actions
func (c *Cartpole) NumActions() int { return NumActions }

// Step takes a single environmental step given the index of the action
// to perform. The env.Noop action behaves as DoNothing.
func (c *Cartpole) Step(action int) (float64, bool) {
	var force float64
	switch action {
	case AccelerateLeft:
		force = -ForceMag
	case AccelerateRight:
		force = ForceMag
	case DoNothing, env.Noop:
		force = 0.0
	default:
		panic(fmt.Sprintf("step: illegal action %v ∉ (0, 1, 2)", action))
	}

	x, xDot := c.state.AtVec(0), c.state.AtVec(1)
	th, thDot := c.state.AtVec(2), c.state.AtVec(3)

	cosTheta := math.Cos(th)
	sinTheta := math.Sin(th)

	totalMass := PoleMass + CartMass
	poleMassOverLength := PoleMass / HalfPoleLength

	temp := (force + poleMassOverLength*thDot*thDot*sinTheta) / totalMass
	thAcc := (Gravity*sinTheta - cosTheta*temp) / (HalfPoleLength *
		(4.0/3.0 - PoleMass*cosTheta*cosTheta/totalMass))
	xAcc := temp - poleMassOverLength*thAcc*cosTheta/totalMass

	// Euler kinematic integration
	x += Dt * xDot
	x = floatutils.ClipInterval(x, c.positionBounds)
	xDot += Dt * xAcc
	th = normalizeAngle(th+Dt*thDot, c.angleBounds)
	thDot += Dt * thAcc

	c.state = mat.NewVecDense(4, []float64{x, xDot, th, thDot})
	c.previous = c.current
	c.current = mat.VecDenseCopyOf(c.state)
	c.steps++

	balanced := math.Abs(th) < FailAngle
	reward := 1.0
	if !balanced {
		reward = -1.0
	}
	running := balanced && c.steps < c.stepLimit

	return reward, running
}

// normalizeAngle normalizes the pole angle into angleBounds, which must
// be centered around 0
func normalizeAngle(th float64, angleBounds r1.Interval) float64 {
	if angleBounds.Max != -angleBounds.Min {
		panic("normalizeAngle: angle bounds should be centered around 0")
	}

	width := angleBounds.Max - angleBounds.Min
	for th > angleBounds.Max {
		th -= width
	}
	for th < angleBounds.Min {
		th += width
	}
	return th
}
