// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package signal

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// relevanceContentLimit is how much of the document text is embedded.
// Embedding more buys little similarity signal at a real latency cost.
const relevanceContentLimit = 2000

// Embedder turns text into a fixed-length vector. Implementations must
// be safe for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Relevance scores semantic similarity between the query and the
// leading content of the document, scaled to [0,100].
type Relevance struct {
	Embedder Embedder
	Log      *logrus.Logger
}

// Name returns the signal identifier.
func (r *Relevance) Name() string { return NameRelevance }

// Evaluate embeds the query and the first 2000 characters of the
// content and returns the scaled cosine similarity. An empty query,
// empty content, or any embedding failure scores 0.
func (r *Relevance) Evaluate(ctx context.Context, in Input) int {
	query := in.Query
	content := truncate(in.Content, relevanceContentLimit)
	if query == "" || content == "" {
		return 0
	}

	qv, err := r.Embedder.Embed(ctx, query)
	if err != nil {
		logOrDefault(r.Log).WithError(err).Warn("relevance: query embedding failed, scoring 0")
		return 0
	}
	cv, err := r.Embedder.Embed(ctx, content)
	if err != nil {
		logOrDefault(r.Log).WithError(err).Warn("relevance: content embedding failed, scoring 0")
		return 0
	}

	sim, err := cosine(qv, cv)
	if err != nil {
		logOrDefault(r.Log).WithError(err).Warn("relevance: similarity failed, scoring 0")
		return 0
	}

	return clampScore(int(sim*100), 0, 100)
}

// cosine returns the cosine similarity of two equal-length vectors.
func cosine(a, b []float64) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, fmt.Errorf("embedding vectors have lengths %d and %d", len(a), len(b))
	}

	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}
