package cartpole

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r1"
	env "sfneuman.com/ga3c/environment"
)

func newTestEnv(stepLimit int) *Cartpole {
	bounds := r1.Interval{Min: -0.05, Max: 0.05}
	starter := env.NewUniformStarter([]r1.Interval{bounds, bounds, bounds,
		bounds}, 192382)
	return New(starter, stepLimit)
}

func TestNoopAfterReset(t *testing.T) {
	c := newTestEnv(500)

	if c.CurrentState() != nil {
		t.Fatal("expected no observation before the first step")
	}

	_, running := c.Step(env.Noop)
	if !running {
		t.Fatal("noop step after reset must leave the episode running")
	}
	if c.CurrentState() == nil {
		t.Fatal("expected an observation after the first step")
	}
}

func TestStateThreading(t *testing.T) {
	c := newTestEnv(500)
	c.Step(env.Noop)

	first := c.CurrentState()
	c.Step(AccelerateLeft)

	previous := c.PreviousState()
	if previous == nil {
		t.Fatal("expected a previous observation after two steps")
	}
	for i := 0; i < first.Len(); i++ {
		if previous.AtVec(i) != first.AtVec(i) {
			t.Fatal("previous observation does not match the earlier " +
				"current observation")
		}
	}
}

func TestStepLimitEndsEpisode(t *testing.T) {
	limit := 10
	c := newTestEnv(limit)

	steps := 0
	running := true
	for running {
		_, running = c.Step(DoNothing)
		steps++
		if steps > limit {
			t.Fatalf("episode ran past the %v-step limit", limit)
		}
	}
}

func TestFallEndsEpisode(t *testing.T) {
	c := newTestEnv(100_000)

	// Push the cart left until the unbalanced pole falls
	running := true
	var reward float64
	for i := 0; running; i++ {
		reward, running = c.Step(AccelerateLeft)
		if i > 10_000 {
			t.Fatal("pole never fell under constant force")
		}
	}

	if reward != -1.0 {
		t.Errorf("expected reward -1 on the falling step, got %v", reward)
	}
	if math.Abs(c.CurrentState().AtVec(2)) < FailAngle {
		t.Error("episode ended while the pole was still balanced")
	}
}

func TestResetClearsObservation(t *testing.T) {
	c := newTestEnv(500)
	c.Step(env.Noop)
	c.Step(DoNothing)

	c.Reset()
	if c.CurrentState() != nil || c.PreviousState() != nil {
		t.Error("expected observations cleared after reset")
	}
}

func TestNumActions(t *testing.T) {
	if c := newTestEnv(10); c.NumActions() != NumActions {
		t.Errorf("expected %v actions", NumActions)
	}
}
