package tracker

import (
	"encoding/gob"
	"log"
	"os"
)

// Return tracks and saves the total undiscounted reward of every
// completed episode in a run.
//
// Workers emit Records concurrently, so episode returns appear in
// completion order, not in per-worker order.
type Return struct {
	episodeReturns []float64
	filename       string
}

// NewReturn returns a new Return tracker which will save its data at
// the specified location filename
func NewReturn(filename string) Tracker {
	return &Return{filename: filename}
}

// Track caches the episodic return of a single completed episode
func (r *Return) Track(record Record) {
	r.episodeReturns = append(r.episodeReturns, record.TotalReward)
}

// Save saves the data tracked by the Return tracker to disk
func (r *Return) Save() {
	file, err := os.Create(r.filename)
	if err != nil {
		log.Fatalf("could not open save file: %v", err)
	}
	defer file.Close()

	en := gob.NewEncoder(file)
	if err = en.Encode(r.episodeReturns); err != nil {
		log.Fatalf("could not encode return data: %v", err)
	}
}

// LoadReturns reads back data saved by a Return tracker
func LoadReturns(filename string) []float64 {
	file, err := os.Open(filename)
	if err != nil {
		log.Fatalf("could not open data file: %v", err)
	}
	defer file.Close()

	var data []float64
	de := gob.NewDecoder(file)
	if err = de.Decode(&data); err != nil {
		log.Fatalf("could not decode return data: %v", err)
	}
	return data
}
