// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Signals holds the five evaluator outputs for one document. Each score
// is an int in [0,100]; an evaluator that could not produce a real
// answer contributes its documented default instead, so no score is
// ever missing.
type Signals struct {
	DomainTrust int `json:"domain_trust" yaml:"domain_trust"`
	Relevance   int `json:"relevance" yaml:"relevance"`
	FactCheck   int `json:"fact_check" yaml:"fact_check"`
	Bias        int `json:"bias" yaml:"bias"`
	Citation    int `json:"citation" yaml:"citation"`
}

// Report is the credibility assessment of one document against a query.
type Report struct {
	Query string `json:"query" yaml:"query"`
	URL   string `json:"url" yaml:"url"`

	Signals Signals `json:"signals" yaml:"signals"`

	// Composite is the weighted sum of signal scores. It is not clamped;
	// its practical range follows from the weight table.
	Composite float64 `json:"composite" yaml:"composite"`

	// Stars is the discrete rating in [1,5] derived from Composite.
	Stars int `json:"stars" yaml:"stars"`

	// Icon is the star rating rendered as a glyph string.
	Icon string `json:"icon" yaml:"icon"`

	// Reasons lists one human-readable explanation per signal that fell
	// below its threshold, in canonical signal order. Empty when every
	// signal met its threshold.
	Reasons []string `json:"reasons,omitempty" yaml:"reasons,omitempty"`
}

// credibleMessage is returned by Explanation when no signal fell below
// its threshold.
const credibleMessage = "This source is highly credible and relevant."

// Explanation renders the reasons as a single sentence, or the canned
// highly-credible message when there are none.
func (r Report) Explanation() string {
	if len(r.Reasons) == 0 {
		return credibleMessage
	}
	return strings.Join(r.Reasons, " ")
}
