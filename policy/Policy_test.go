package policy

import (
	"testing"
)

func TestGreedyDeterminism(t *testing.T) {
	probabilities := []float64{0.1, 0.6, 0.3}
	greedy := Greedy{}

	for i := 0; i < 100; i++ {
		action, err := greedy.SelectAction(probabilities)
		if err != nil {
			t.Fatal(err)
		}
		if action != 1 {
			t.Fatalf("expected action 1, got %v", action)
		}
	}
}

func TestGreedyTieBreak(t *testing.T) {
	// Ties break by first occurrence
	probabilities := []float64{0.2, 0.4, 0.4}

	action, err := Greedy{}.SelectAction(probabilities)
	if err != nil {
		t.Fatal(err)
	}
	if action != 1 {
		t.Errorf("expected first maximal index 1, got %v", action)
	}
}

func TestCategoricalDistribution(t *testing.T) {
	probabilities := []float64{0.25, 0.75}
	sampler := NewCategorical(192382)

	samples := 10_000
	counts := make([]int, len(probabilities))
	for i := 0; i < samples; i++ {
		action, err := sampler.SelectAction(probabilities)
		if err != nil {
			t.Fatal(err)
		}
		counts[action]++
	}

	for i, p := range probabilities {
		frequency := float64(counts[i]) / float64(samples)
		if frequency < p-0.02 || frequency > p+0.02 {
			t.Errorf("action %v: expected frequency near %v, got %v", i, p,
				frequency)
		}
	}
}

func TestCategoricalDegenerate(t *testing.T) {
	// A one-hot distribution always selects its support
	sampler := NewCategorical(42)

	for i := 0; i < 50; i++ {
		action, err := sampler.SelectAction([]float64{0.0, 1.0, 0.0})
		if err != nil {
			t.Fatal(err)
		}
		if action != 1 {
			t.Fatalf("expected action 1, got %v", action)
		}
	}
}

func TestNewSelectsMode(t *testing.T) {
	if _, ok := New(true, 0).(Greedy); !ok {
		t.Error("play mode should select the Greedy selector")
	}
	if _, ok := New(false, 0).(*Categorical); !ok {
		t.Error("training mode should select the Categorical sampler")
	}
}

func TestEmptyProbabilities(t *testing.T) {
	if _, err := (Greedy{}).SelectAction(nil); err == nil {
		t.Error("expected error for empty probability vector")
	}
	if _, err := NewCategorical(0).SelectAction(nil); err == nil {
		t.Error("expected error for empty probability vector")
	}
}
