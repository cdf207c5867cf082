// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Observation is one EPS figure extracted from one filing. A filing may
// yield several observations across repeated extraction passes; the
// resolver folds them into a single value per filing in observation order.
type Observation struct {
	// Filing identifies the source filing (accession number or, for
	// ad-hoc corpora, a filename).
	Filing string `json:"filing" yaml:"filing"`

	// Value is the extracted EPS figure. Negative values come from
	// accounting parenthesis notation or an explicit minus sign.
	Value float64 `json:"value" yaml:"value"`
}

// ResolvedEPS is the final per-filing EPS figure after conflict resolution,
// together with how many observations contributed to it.
type ResolvedEPS struct {
	// Filing identifies the filing.
	Filing string `json:"filing" yaml:"filing"`

	// Value is the winning EPS figure.
	Value float64 `json:"value" yaml:"value"`

	// Observations is the number of observations folded into Value.
	Observations int `json:"observations,omitempty" yaml:"observations,omitempty"`
}
