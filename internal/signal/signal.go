// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package signal implements the five credibility signal evaluators.
//
// Every evaluator maps a (query, document) pair to an int score in
// [0,100] and never fails: when an external dependency is unavailable
// the evaluator substitutes its documented default, so callers always
// see a score. Evaluators are safe for concurrent use; the only shared
// state is read-only configuration fixed at construction.
package signal

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Input carries the fields an evaluator may inspect. Evaluators that do
// not need a field ignore it.
type Input struct {
	// Query is the user's search text.
	Query string

	// URL is the document's source locator.
	URL string

	// Content is the document's extracted text.
	Content string
}

// Evaluator produces one credibility signal score for a document in
// bounded time with a safe default.
type Evaluator interface {
	// Name returns the signal identifier.
	Name() string

	// Evaluate returns a score in [0,100]. It never returns an error:
	// external failures resolve to the signal's default value.
	Evaluate(ctx context.Context, in Input) int
}

// Signal names, in the canonical order used for fusion and explanations.
const (
	NameDomainTrust = "domain_trust"
	NameRelevance   = "relevance"
	NameFactCheck   = "fact_check"
	NameBias        = "bias"
	NameCitation    = "citation"
)

// Defaults substituted when an evaluator cannot produce a real answer.
const (
	// DefaultTrust is the score for domains absent from the trust table.
	DefaultTrust = 35

	// DefaultFactCheck is the neutral score when the fact-check lookup
	// fails or the content is empty.
	DefaultFactCheck = 50

	// DefaultBias is the neutral score when classification fails or the
	// content is empty.
	DefaultBias = 50

	// CitationFloor is the minimum citation score. Zero citations still
	// score the floor: absence of citations is weak evidence, so the
	// document gets the benefit of the doubt.
	CitationFloor = 35
)

// truncate returns at most n leading runes of s.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// clampScore bounds v to [lo,hi].
func clampScore(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// logOrDefault returns log, or the process-wide standard logger when nil.
func logOrDefault(log *logrus.Logger) *logrus.Logger {
	if log != nil {
		return log
	}
	return logrus.StandardLogger()
}
