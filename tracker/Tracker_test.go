package tracker

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLogForwardsRecords(t *testing.T) {
	dir := t.TempDir()
	returns := NewReturn(filepath.Join(dir, "returns.bin"))
	lengths := NewEpisodeLength(filepath.Join(dir, "lengths.bin"))

	records := make(chan Record, 3)
	for i := 0; i < 3; i++ {
		records <- Record{
			Time:        time.Now(),
			TotalReward: float64(i) * 1.5,
			TotalLength: 10 * (i + 1),
			TotalSteps:  100 * (i + 1),
		}
	}
	close(records)

	Log(records, returns, lengths)

	got := returns.(*Return).episodeReturns
	if len(got) != 3 {
		t.Fatalf("expected 3 tracked returns, got %v", len(got))
	}
	for i, want := range []float64{0, 1.5, 3} {
		if got[i] != want {
			t.Errorf("return %v: expected %v, got %v", i, want, got[i])
		}
	}

	gotLengths := lengths.(*EpisodeLength).episodeLengths
	for i, want := range []int{10, 20, 30} {
		if gotLengths[i] != want {
			t.Errorf("length %v: expected %v, got %v", i, want,
				gotLengths[i])
		}
	}
}

func TestReturnSaveLoad(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "returns.bin")
	returns := NewReturn(filename)

	returns.Track(Record{TotalReward: 12.5})
	returns.Track(Record{TotalReward: -3.0})
	returns.Save()

	data := LoadReturns(filename)
	if len(data) != 2 || data[0] != 12.5 || data[1] != -3.0 {
		t.Errorf("unexpected loaded data %v", data)
	}
}
