package service

import (
	"math"
	"testing"
	"time"
)

func TestParseProfitRange(t *testing.T) {
	cases := []struct {
		in       string
		min, max float64
	}{
		{"5-10%", 0.05, 0.10},
		{"5%", 0.05, 0.05},
		{"10", 0.10, 0.10},
		{" 12 - 20 % ", 0.12, 0.20},
		{"0-0%", 0, 0},
		{"2.5-7.5%", 0.025, 0.075},
		// malformed input fails closed
		{"", 0, 0},
		{"abc", 0, 0},
		{"5-abc%", 0, 0},
		{"10-5%", 0, 0},
		{"-5-10%", 0, 0},
	}

	for _, tc := range cases {
		min, max := ParseProfitRange(tc.in)
		if min != tc.min || max != tc.max {
			t.Fatalf("ParseProfitRange(%q) = %v, %v; want %v, %v", tc.in, min, max, tc.min, tc.max)
		}
	}
}

func TestValidateProfitRange(t *testing.T) {
	valid := []string{"5-10%", "5%", "10", "0-0%", "2.5-7.5%"}
	for _, s := range valid {
		if err := ValidateProfitRange(s); err != nil {
			t.Fatalf("ValidateProfitRange(%q) = %v; want nil", s, err)
		}
	}

	invalid := []string{"", "abc", "5-abc%", "10-5%", "-5-10%"}
	for _, s := range invalid {
		if err := ValidateProfitRange(s); err == nil {
			t.Fatalf("ValidateProfitRange(%q) = nil; want error", s)
		}
	}
}

func TestSimulateProfit(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		investment float64
		min, max   float64
		elapsed    time.Duration
		draw       float64
		want       float64
	}{
		// fixed 10% rate over a full month pays exactly 10% of the stake
		{"full month fixed rate", 100, 0.10, 0.10, 30 * 24 * time.Hour, 0.5, 10},
		// a fresh position still counts as one day
		{"sub-day rounds up to one", 100, 0.10, 0.10, time.Hour, 0.5, 100 * 0.10 / 30},
		{"zero elapsed counts as one day", 100, 0.10, 0.10, 0, 0.5, 100 * 0.10 / 30},
		// partial days round up
		{"25 hours is two days", 100, 0.10, 0.10, 25 * time.Hour, 0.5, 100 * 0.10 * 2 / 30},
		// draw interpolates across the range
		{"draw at lower bound", 100, 0.05, 0.15, 30 * 24 * time.Hour, 0, 5},
		{"draw mid range", 100, 0.05, 0.15, 30 * 24 * time.Hour, 0.5, 10},
		// degenerate range yields nothing
		{"zero range", 1000, 0, 0, 30 * 24 * time.Hour, 0.99, 0},
	}

	for _, tc := range cases {
		got := SimulateProfit(tc.investment, tc.min, tc.max, start, start.Add(tc.elapsed), tc.draw)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("%s: SimulateProfit = %v; want %v", tc.name, got, tc.want)
		}
	}
}

func TestSimulateProfitNeverNegative(t *testing.T) {
	start := time.Now()
	for _, draw := range []float64{0, 0.25, 0.5, 0.999} {
		got := SimulateProfit(500, 0, 0.2, start, start.Add(45*24*time.Hour), draw)
		if got < 0 {
			t.Fatalf("profit went negative: %v (draw=%v)", got, draw)
		}
	}
}
