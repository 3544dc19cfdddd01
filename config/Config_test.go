package config

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r1"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"discount above 1", func(c *Config) { c.Discount = 1.5 }},
		{"negative discount", func(c *Config) { c.Discount = -0.1 }},
		{"time max of 1", func(c *Config) { c.TimeMax = 1 }},
		{"negative lstm count", func(c *Config) { c.NumLSTMs = -1 }},
		{"zero lstm size", func(c *Config) {
			c.NumLSTMs = 1
			c.LSTMSize = 0
		}},
		{"inverted reward bounds", func(c *Config) {
			c.RewardClipping = true
			c.RewardBounds = r1.Interval{Min: 1, Max: -1}
		}},
		{"negative max steps", func(c *Config) { c.MaxSteps = -1 }},
	}

	for _, test := range tests {
		cfg := Default()
		test.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%v: expected validation error", test.name)
		}
	}
}

func TestClipBounds(t *testing.T) {
	cfg := Default()

	cfg.RewardClipping = false
	if cfg.ClipBounds() != nil {
		t.Error("expected nil bounds with clipping disabled")
	}

	cfg.RewardClipping = true
	cfg.RewardBounds = r1.Interval{Min: -2, Max: 3}
	bounds := cfg.ClipBounds()
	if bounds == nil {
		t.Fatal("expected bounds with clipping enabled")
	}
	if bounds.Min != -2 || bounds.Max != 3 {
		t.Errorf("unexpected bounds %v", *bounds)
	}
}
