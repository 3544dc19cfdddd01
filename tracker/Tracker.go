// Package tracker implements tracking and saving of the episode
// statistics emitted by agent workers
package tracker

import (
	"time"
)

// Record is one worker's summary of a completed episode, as delivered
// to the shared episode-log sink
type Record struct {
	// Time is when the episode finished
	Time time.Time

	// TotalReward is the undiscounted reward sum of the episode
	TotalReward float64

	// TotalLength is the episode length under the segment length
	// accounting convention: each emitted segment contributes its
	// emitted length plus one for the trailing frame dropped at the
	// segment cut
	TotalLength int

	// TotalSteps is the emitting worker's cumulative environment step
	// count across all of its episodes so far
	TotalSteps int
}

// Tracker caches data of interest from episode Records so that it can
// be saved to disk once a run finishes
type Tracker interface {
	// Track caches data from a single episode Record
	Track(Record)

	// Save writes all cached data to disk
	Save()
}

// Log drains the episode-log channel, forwarding every Record to each
// Tracker. It returns once the channel is closed and is meant to be
// run in its own goroutine for the lifetime of a run.
func Log(records <-chan Record, trackers ...Tracker) {
	for record := range records {
		for _, t := range trackers {
			t.Track(record)
		}
	}
}
