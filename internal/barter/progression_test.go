package barter

import (
	"math"
	"testing"
)

func TestSimulateDay(t *testing.T) {
	tests := []struct {
		name     string
		draw     float64
		estimate float64
		note     string
		want     float64
	}{
		{"bad day", 0.1, 1000, NoteBadDay, 800},
		{"bad day boundary just below", 0.1999, 1000, NoteBadDay, 800},
		{"lower bound is normal", 0.2, 1000, NoteNormalDay, 1000},
		{"normal day", 0.5, 1000, NoteNormalDay, 1000},
		{"upper bound is normal", 0.8, 1000, NoteNormalDay, 1000},
		{"good day", 0.9, 1000, NoteGoodDay, 1200},
		{"good day rounds half up", 0.95, 2.5, NoteGoodDay, 3.5},
		{"bad day rounds half up", 0.0, 2.5, NoteBadDay, 1.5},
		{"zero estimate stays zero", 0.05, 0, NoteBadDay, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SimulateDay(tt.draw, tt.estimate)
			if got.Note != tt.note {
				t.Errorf("note = %q, want %q", got.Note, tt.note)
			}
			if got.Estimate != tt.want {
				t.Errorf("estimate = %v, want %v", got.Estimate, tt.want)
			}
		})
	}
}

func TestSimulateDayNeverNegative(t *testing.T) {
	for _, e := range []float64{0, 0.4, 1, 2, 7, 1e6} {
		if got := SimulateDay(0, e); got.Estimate < 0 {
			t.Fatalf("estimate %v went negative: %v", e, got.Estimate)
		}
	}
}

func TestEstimateInRange(t *testing.T) {
	tests := []struct {
		estimate float64
		want     bool
	}{
		{0, true},
		{1000, true},
		{MaxExpenseEstimate, true},
		{MaxExpenseEstimate * 1.2, false},
		{1.7e308, false},
		{math.Inf(1), false},
		{math.NaN(), false},
		{-1, false},
	}
	for _, tt := range tests {
		if got := estimateInRange(tt.estimate); got != tt.want {
			t.Errorf("estimateInRange(%v) = %v, want %v", tt.estimate, got, tt.want)
		}
	}
}

func TestSimulateDayOnHugeEstimateLeavesRange(t *testing.T) {
	out := SimulateDay(0.9, 1.7e308)
	if estimateInRange(out.Estimate) {
		t.Fatalf("estimate %v should be out of range", out.Estimate)
	}
}
