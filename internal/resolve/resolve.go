// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve folds repeated EPS observations into a single figure
// per filing.
package resolve

import (
	"math"

	"github.com/pdiddy/filings-engine/pkg/types"
)

// Resolve folds observations left to right into one value per filing.
// The fold is order-sensitive: the same observations supplied in a
// different order can resolve to a different value, so callers must
// preserve the order in which observations were produced.
func Resolve(observations []types.Observation) map[string]float64 {
	resolved := make(map[string]float64, len(observations))
	for _, obs := range observations {
		current, seen := resolved[obs.Filing]
		if !seen {
			resolved[obs.Filing] = obs.Value
			continue
		}
		resolved[obs.Filing] = apply(current, obs.Value)
	}
	return resolved
}

// apply folds one new observation into the stored value. Rules are checked
// in order and the first match wins:
//
//  1. a non-negative figure displaces a stored negative
//  2. the figure closer to zero displaces the stored one
//  3. two non-negatives keep the smaller
//  4. a later negative displaces a stored non-negative
//
// Anything else, including equal magnitudes, keeps the stored value.
func apply(current, value float64) float64 {
	switch {
	case value >= 0 && current < 0:
		return value
	case math.Abs(value) < math.Abs(current):
		return value
	case value >= 0 && current >= 0:
		return math.Min(current, value)
	case value < 0 && current >= 0:
		return value
	default:
		return current
	}
}
