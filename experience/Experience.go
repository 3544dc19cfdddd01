// Package experience implements the storage and reward accumulation of
// trajectory segments gathered by agent workers
package experience

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Experience records a single environment step: the observation the
// action was chosen in, the action taken, the probability distribution
// the action was drawn from, and the reward received. The reward field
// is overwritten in place with the discounted return when the segment
// containing the Experience is accumulated.
//
// An Experience is owned exclusively by the Buffer it was added to
// until it is emitted in a training batch.
type Experience struct {
	State      mat.Vector
	Action     int
	Prediction []float64
	Reward     float64
}

// Buffer is the ordered sequence of Experiences making up the
// trajectory segment currently being gathered by a worker. A Buffer
// holds at most its segment cap of Experiences: once Full reports
// true, the segment must be accumulated and emitted before another
// Experience may be added.
type Buffer struct {
	experiences []Experience
	cap         int
}

// NewBuffer returns an empty Buffer with segment cap timeMax
func NewBuffer(timeMax int) (*Buffer, error) {
	if timeMax < 1 {
		return nil, fmt.Errorf("newBuffer: segment cap must be positive, "+
			"got %v", timeMax)
	}
	return &Buffer{
		experiences: make([]Experience, 0, timeMax),
		cap:         timeMax,
	}, nil
}

// Add appends an Experience to the current segment
func (b *Buffer) Add(e Experience) error {
	if b.Full() {
		return fmt.Errorf("add: segment at cap (%v)", b.cap)
	}
	b.experiences = append(b.experiences, e)
	return nil
}

// Len returns the number of Experiences in the current segment
func (b *Buffer) Len() int { return len(b.experiences) }

// Full returns whether the segment has reached its cap
func (b *Buffer) Full() bool { return len(b.experiences) >= b.cap }

// Experiences returns the Experiences of the current segment in step
// order. The returned slice aliases the Buffer and is invalidated by
// the next Add or reset.
func (b *Buffer) Experiences() []Experience { return b.experiences }

// ResetKeepLast starts the next segment, retaining only the final
// Experience of the previous segment as its first element. The
// retained trailer carries its raw, unaccumulated reward.
func (b *Buffer) ResetKeepLast() error {
	if len(b.experiences) == 0 {
		return fmt.Errorf("resetKeepLast: empty segment has no trailer")
	}
	b.experiences[0] = b.experiences[len(b.experiences)-1]
	b.experiences = b.experiences[:1]
	return nil
}

// Reset empties the Buffer, discarding the current segment
func (b *Buffer) Reset() {
	b.experiences = b.experiences[:0]
}
