package agent

import (
	"fmt"

	"gorgonia.org/tensor"
	"sfneuman.com/ga3c/experience"
	"sfneuman.com/ga3c/predict"
)

// Batch is one accumulated trajectory segment in the shape the
// training consumer ingests: a stacked state matrix, a vector of
// discounted returns, and a matrix of one-hot encoded actions, all
// with equal leading dimension, together with the recurrent state the
// prediction model had at the start of the segment.
type Batch struct {
	// States has shape (n, observation size)
	States *tensor.Dense

	// Returns has shape (n)
	Returns *tensor.Dense

	// Actions holds one-hot action encodings with shape
	// (n, number of actions)
	Actions *tensor.Dense

	// Recurrent is the recurrent state at the start of the segment,
	// absent for feedforward models
	Recurrent predict.RecurrentState
}

// NewBatch converts an accumulated trajectory segment into a training
// Batch. All experiences must share the observation size of the first,
// and every action index must lie in [0, numActions).
func NewBatch(experiences []experience.Experience, numActions int,
	recurrent predict.RecurrentState) (*Batch, error) {

	n := len(experiences)
	if n == 0 {
		return nil, fmt.Errorf("newBatch: empty segment")
	}

	obsSize := experiences[0].State.Len()
	states := make([]float64, n*obsSize)
	returns := make([]float64, n)
	actions := make([]float64, n*numActions)

	for i, exp := range experiences {
		if exp.State.Len() != obsSize {
			return nil, fmt.Errorf("newBatch: illegal state size "+
				"\n\twant(%v)\n\thave(%v)", obsSize, exp.State.Len())
		}
		if exp.Action < 0 || exp.Action >= numActions {
			return nil, fmt.Errorf("newBatch: illegal action %v ∉ [0, %v)",
				exp.Action, numActions)
		}

		for j := 0; j < obsSize; j++ {
			states[i*obsSize+j] = exp.State.AtVec(j)
		}
		returns[i] = exp.Reward
		actions[i*numActions+exp.Action] = 1.0
	}

	return &Batch{
		States: tensor.New(tensor.WithShape(n, obsSize),
			tensor.WithBacking(states)),
		Returns: tensor.New(tensor.WithShape(n),
			tensor.WithBacking(returns)),
		Actions: tensor.New(tensor.WithShape(n, numActions),
			tensor.WithBacking(actions)),
		Recurrent: recurrent,
	}, nil
}

// Size returns the number of experiences in the Batch
func (b *Batch) Size() int {
	return b.States.Shape()[0]
}
