package resolve

import (
	"testing"

	"github.com/pdiddy/filings-engine/pkg/types"
)

// --- apply ---

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		value   float64
		want    float64
	}{
		{"non-negative displaces negative", -0.10, 1.50, 1.50},
		{"zero displaces negative", -0.10, 0, 0},
		{"closer to zero displaces larger negative", -1.00, -0.25, -0.25},
		{"closer to zero negative displaces positive", 1.50, -0.10, -0.10},
		{"two non-negatives keep the smaller", 2.10, 2.75, 2.10},
		{"smaller non-negative replaces", 2.75, 2.10, 2.10},
		{"later negative displaces non-negative", 1.50, -2.00, -2.00},
		{"farther negative kept out", -0.25, -1.00, -0.25},
		{"equal negatives keep stored", -0.50, -0.50, -0.50},
		{"equal non-negatives unchanged", 0.80, 0.80, 0.80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apply(tt.current, tt.value); got != tt.want {
				t.Errorf("apply(%v, %v) = %v, want %v", tt.current, tt.value, got, tt.want)
			}
		})
	}
}

// --- Resolve ---

func TestResolve(t *testing.T) {
	tests := []struct {
		name         string
		observations []types.Observation
		want         map[string]float64
	}{
		{
			name:         "empty input",
			observations: nil,
			want:         map[string]float64{},
		},
		{
			name: "single observation stored as-is",
			observations: []types.Observation{
				{Filing: "f1", Value: -0.40},
			},
			want: map[string]float64{"f1": -0.40},
		},
		{
			name: "duplicate observations unchanged",
			observations: []types.Observation{
				{Filing: "f1", Value: 2.10},
				{Filing: "f1", Value: 2.10},
			},
			want: map[string]float64{"f1": 2.10},
		},
		{
			name: "independent filings",
			observations: []types.Observation{
				{Filing: "f1", Value: 2.10},
				{Filing: "f2", Value: -0.40},
				{Filing: "f3", Value: 0.05},
			},
			want: map[string]float64{"f1": 2.10, "f2": -0.40, "f3": 0.05},
		},
		{
			name: "three-way fold keeps closest to zero",
			observations: []types.Observation{
				{Filing: "f1", Value: 3.50},
				{Filing: "f1", Value: 0.75},
				{Filing: "f1", Value: 1.20},
			},
			want: map[string]float64{"f1": 0.75},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.observations)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d entries %v, want %d %v", len(got), got, len(tt.want), tt.want)
			}
			for id, want := range tt.want {
				if got[id] != want {
					t.Errorf("resolved[%q] = %v, want %v", id, got[id], want)
				}
			}
		})
	}
}

func TestResolveOrderSensitive(t *testing.T) {
	// The fold is not commutative: a negative arriving second displaces the
	// stored positive, and a positive arriving second displaces the stored
	// negative. Both orders must be pinned.
	forward := Resolve([]types.Observation{
		{Filing: "A", Value: 1.50},
		{Filing: "A", Value: -0.10},
	})
	if forward["A"] != -0.10 {
		t.Errorf("forward order resolved to %v, want -0.10", forward["A"])
	}

	reverse := Resolve([]types.Observation{
		{Filing: "A", Value: -0.10},
		{Filing: "A", Value: 1.50},
	})
	if reverse["A"] != 1.50 {
		t.Errorf("reverse order resolved to %v, want 1.50", reverse["A"])
	}
}
