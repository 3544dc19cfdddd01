package experience

import (
	"gonum.org/v1/gonum/spatial/r1"
	"sfneuman.com/ga3c/utils/floatutils"
)

// Accumulate converts the raw rewards of a trajectory segment into
// discounted returns, mutating the segment in place, and returns the
// portion of the segment to emit for training.
//
// When terminal is false the segment was cut mid-episode: bootstrap
// seeds the backward recurrence as the value estimate of the unseen
// remainder, and the final Experience is excluded from the returned
// slice. Its reward is left untouched so that it can seed the next
// segment once its own return can be computed against a fresh
// bootstrap. A non-terminal segment of length 1 therefore yields an
// empty result.
//
// When terminal is true the episode ended inside the segment: the
// recurrence starts at 0, every Experience participates, and the full
// segment is returned.
//
// If clip is non-nil, each raw reward is clipped into the interval as
// it enters the recurrence. Rewards must be accumulated exactly once;
// re-running Accumulate on its own output is not meaningful.
func Accumulate(experiences []Experience, discount, bootstrap float64,
	terminal bool, clip *r1.Interval) []Experience {

	var rewardSum float64
	last := len(experiences)
	if !terminal {
		rewardSum = bootstrap
		last--
	}

	for t := last - 1; t >= 0; t-- {
		r := experiences[t].Reward
		if clip != nil {
			r = floatutils.ClipInterval(r, *clip)
		}
		rewardSum = discount*rewardSum + r
		experiences[t].Reward = rewardSum
	}

	return experiences[:last]
}
