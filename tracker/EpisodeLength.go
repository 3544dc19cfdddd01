package tracker

import (
	"encoding/gob"
	"log"
	"os"
)

// EpisodeLength tracks and saves the lengths of completed episodes in
// a run. Note that an episode must finish for this Tracker to record
// it: an episode still in progress when a run stops is not saved.
type EpisodeLength struct {
	episodeLengths []int
	filename       string
}

// NewEpisodeLength returns a new EpisodeLength tracker which will save
// its data at the specified location filename
func NewEpisodeLength(filename string) Tracker {
	return &EpisodeLength{filename: filename}
}

// Track caches the length of a single completed episode
func (e *EpisodeLength) Track(record Record) {
	e.episodeLengths = append(e.episodeLengths, record.TotalLength)
}

// Save saves the data tracked by the EpisodeLength tracker to disk
func (e *EpisodeLength) Save() {
	file, err := os.Create(e.filename)
	if err != nil {
		log.Fatalf("could not open save file: %v", err)
	}
	defer file.Close()

	en := gob.NewEncoder(file)
	if err = en.Encode(e.episodeLengths); err != nil {
		log.Fatalf("could not encode episode length data: %v", err)
	}
}
