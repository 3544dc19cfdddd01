package floatutils

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r1"
)

// TestClip ensures values are clipped to within [min, max]
func TestClip(t *testing.T) {
	cases := []struct {
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{0.5, -1.0, 1.0, 0.5},
		{1.5, -1.0, 1.0, 1.0},
		{-1.5, -1.0, 1.0, -1.0},
		{-1.0, -1.0, 1.0, -1.0},
		{1.0, -1.0, 1.0, 1.0},
	}

	for _, c := range cases {
		got := Clip(c.value, c.min, c.max)
		if got != c.expected {
			t.Errorf("clipping %v to [%v, %v]: expected %v, got %v",
				c.value, c.min, c.max, c.expected, got)
		}
	}
}

// TestClipInterval ensures the r1.Interval wrapper agrees with Clip
func TestClipInterval(t *testing.T) {
	interval := r1.Interval{Min: -0.5, Max: 0.5}

	for _, value := range []float64{-2.3, -0.5, 0.1, 0.5, 11.0} {
		got := ClipInterval(value, interval)
		expected := Clip(value, interval.Min, interval.Max)
		if got != expected {
			t.Errorf("clipping %v to %v: expected %v, got %v", value,
				interval, expected, got)
		}
	}
}

// TestArgMax ensures the index of the first maximum value is returned
func TestArgMax(t *testing.T) {
	cases := []struct {
		values   []float64
		expected int
	}{
		{[]float64{0.1, 0.7, 0.2}, 1},
		{[]float64{0.2, 0.4, 0.4}, 1},
		{[]float64{1.0}, 0},
		{[]float64{-3.0, -1.0, -2.0}, 1},
		{[]float64{5.0, 5.0, 5.0}, 0},
	}

	for _, c := range cases {
		got := ArgMax(c.values)
		if got != c.expected {
			t.Errorf("argmax of %v: expected index %v, got %v", c.values,
				c.expected, got)
		}
	}
}
