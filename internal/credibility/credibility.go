// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package credibility fuses the five signal evaluators into a single
// composite score, a 1-5 star rating, and a human-readable explanation.
package credibility

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/newslens/newslens/internal/page"
	"github.com/newslens/newslens/internal/signal"
	"github.com/newslens/newslens/pkg/types"
)

// DefaultWeights returns the fixed fusion weight table. The weights sum
// past 1 on purpose: fact-check and citation corroboration are stacked
// on top of the two primary signals rather than diluting them.
func DefaultWeights() types.Weights {
	return types.Weights{
		DomainTrust: 0.40,
		Relevance:   0.40,
		FactCheck:   0.20,
		Bias:        0.15,
		Citation:    0.20,
	}
}

// Explanation thresholds. A signal below its threshold contributes one
// reason to the report, in canonical signal order.
const (
	trustThreshold     = 50
	relevanceThreshold = 50
	factCheckThreshold = 50
	biasThreshold      = 50
	citationThreshold  = 30
)

// Rater evaluates the credibility of one document against a query. The
// five evaluators run concurrently per call; a Rater is itself safe for
// concurrent use once constructed.
type Rater struct {
	domainTrust signal.Evaluator
	relevance   signal.Evaluator
	factCheck   signal.Evaluator
	bias        signal.Evaluator
	citation    signal.Evaluator

	weights types.Weights
	client  *http.Client
	agent   string
	log     *logrus.Logger
}

// Option configures a Rater.
type Option func(*Rater)

// WithHTTPClient sets the client used to fetch document text.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Rater) { r.client = c }
}

// WithUserAgent sets the User-Agent for document fetches.
func WithUserAgent(ua string) Option {
	return func(r *Rater) { r.agent = ua }
}

// WithLogger sets the logger for soft-failure warnings.
func WithLogger(log *logrus.Logger) Option {
	return func(r *Rater) { r.log = log }
}

// NewRater builds a Rater from the five evaluators and the weight
// table. A nil evaluator or a negative weight is a construction error;
// external-system failures at evaluation time are not.
func NewRater(trust, relevance, factCheck, bias, citation signal.Evaluator, weights types.Weights, opts ...Option) (*Rater, error) {
	for name, ev := range map[string]signal.Evaluator{
		signal.NameDomainTrust: trust,
		signal.NameRelevance:   relevance,
		signal.NameFactCheck:   factCheck,
		signal.NameBias:        bias,
		signal.NameCitation:    citation,
	} {
		if ev == nil {
			return nil, fmt.Errorf("nil %s evaluator", name)
		}
	}
	for name, w := range map[string]float64{
		signal.NameDomainTrust: weights.DomainTrust,
		signal.NameRelevance:   weights.Relevance,
		signal.NameFactCheck:   weights.FactCheck,
		signal.NameBias:        weights.Bias,
		signal.NameCitation:    weights.Citation,
	} {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("invalid %s weight %v", name, w)
		}
	}

	r := &Rater{
		domainTrust: trust,
		relevance:   relevance,
		factCheck:   factCheck,
		bias:        bias,
		citation:    citation,
		weights:     weights,
		client:      http.DefaultClient,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Rate fetches the document text and scores it against the query. A
// failed fetch degrades to empty content, which each evaluator handles
// per its own contract; Rate never returns an error for external
// failures.
func (r *Rater) Rate(ctx context.Context, query, url string) types.Report {
	content := page.FetchText(ctx, r.client, url, r.agent)
	if content == "" {
		r.logger().WithField("url", url).Warn("credibility: no document text, evaluators fall back to defaults")
	}
	return r.RateContent(ctx, query, url, content)
}

// RateContent scores pre-fetched document text against the query.
func (r *Rater) RateContent(ctx context.Context, query, url, content string) types.Report {
	in := signal.Input{Query: query, URL: url, Content: content}

	// The evaluators are independent; run them together. Each goroutine
	// writes only its own slot.
	var s types.Signals
	runs := []struct {
		ev   signal.Evaluator
		slot *int
	}{
		{r.domainTrust, &s.DomainTrust},
		{r.relevance, &s.Relevance},
		{r.factCheck, &s.FactCheck},
		{r.bias, &s.Bias},
		{r.citation, &s.Citation},
	}

	var wg sync.WaitGroup
	for _, run := range runs {
		wg.Add(1)
		go func(ev signal.Evaluator, slot *int) {
			defer wg.Done()
			*slot = ev.Evaluate(ctx, in)
		}(run.ev, run.slot)
	}
	wg.Wait()

	composite := Composite(s, r.weights)
	stars := Stars(composite)

	return types.Report{
		Query:     query,
		URL:       url,
		Signals:   s,
		Composite: composite,
		Stars:     stars,
		Icon:      strings.Repeat("⭐", stars),
		Reasons:   Reasons(s),
	}
}

func (r *Rater) logger() *logrus.Logger {
	if r.log != nil {
		return r.log
	}
	return logrus.StandardLogger()
}

// Composite returns the weighted sum of the signal scores.
func Composite(s types.Signals, w types.Weights) float64 {
	return w.DomainTrust*float64(s.DomainTrust) +
		w.Relevance*float64(s.Relevance) +
		w.FactCheck*float64(s.FactCheck) +
		w.Bias*float64(s.Bias) +
		w.Citation*float64(s.Citation)
}

// Stars quantizes a composite score to the discrete 1-5 rating:
// clamp(round(score/20), 1, 5). The clamp holds for any input,
// including negative or out-of-range scores.
func Stars(score float64) int {
	stars := int(math.Round(score / 20))
	if stars < 1 {
		return 1
	}
	if stars > 5 {
		return 5
	}
	return stars
}

// Reasons returns one explanation per signal below its threshold, in
// canonical order. An empty slice means every signal met its threshold.
func Reasons(s types.Signals) []string {
	var reasons []string
	if s.DomainTrust < trustThreshold {
		reasons = append(reasons, "The source has low domain authority.")
	}
	if s.Relevance < relevanceThreshold {
		reasons = append(reasons, "The content is not highly relevant to your query.")
	}
	if s.FactCheck < factCheckThreshold {
		reasons = append(reasons, "Limited fact-checking verification found.")
	}
	if s.Bias < biasThreshold {
		reasons = append(reasons, "Potential bias detected in the content.")
	}
	if s.Citation < citationThreshold {
		reasons = append(reasons, "Few citations found for this content.")
	}
	return reasons
}
