// Package policy implements action selection from predicted
// probability distributions over a discrete action set
package policy

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
	"sfneuman.com/ga3c/utils/floatutils"
)

// Selector chooses an action index given a probability vector over the
// discrete action set
type Selector interface {
	SelectAction(probabilities []float64) (int, error)
}

// New returns the Selector for the given mode: a deterministic Greedy
// selector in play mode, otherwise a Categorical sampler seeded with
// seed
func New(playMode bool, seed uint64) Selector {
	if playMode {
		return Greedy{}
	}
	return NewCategorical(seed)
}

// Greedy deterministically selects the action of maximum probability,
// breaking ties by the first occurrence. It is used for evaluation
// runs, where the stochasticity of the training policy is unwanted.
type Greedy struct{}

// SelectAction returns the index of the first maximum probability
func (Greedy) SelectAction(probabilities []float64) (int, error) {
	if len(probabilities) == 0 {
		return 0, fmt.Errorf("selectAction: empty probability vector")
	}
	return floatutils.ArgMax(probabilities), nil
}

// Categorical samples actions from the predicted distribution using a
// private random source, so that concurrently running workers draw
// independent action sequences.
type Categorical struct {
	source rand.Source
}

// NewCategorical returns a Categorical sampler seeded with seed
func NewCategorical(seed uint64) *Categorical {
	return &Categorical{source: rand.NewSource(seed)}
}

// SelectAction samples an action index from the given distribution
func (c *Categorical) SelectAction(probabilities []float64) (int, error) {
	if len(probabilities) == 0 {
		return 0, fmt.Errorf("selectAction: empty probability vector")
	}

	dist := distuv.NewCategorical(probabilities, c.source)
	return int(dist.Rand()), nil
}
