// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package signal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/newslens/newslens/internal/httputil"
)

// factCheckAPIBase is the Fact Check Tools claim search endpoint.
// Declared as a var so tests can substitute an httptest server.
var factCheckAPIBase = "https://factchecktools.googleapis.com/v1alpha1/claims:search"

// factCheckQueryLimit is how much of the content is sent as the claim
// search query.
const factCheckQueryLimit = 200

// Fact-check outcomes: claims found corroborates the content, none
// found leaves it mildly suspect.
const (
	factCheckMatched   = 90
	factCheckUnmatched = 40
)

// FactCheck cross-checks document content against a fact-check claim
// index.
type FactCheck struct {
	Client *http.Client
	APIKey string
	Log    *logrus.Logger
}

type factCheckResponse struct {
	Claims []json.RawMessage `json:"claims"`
}

// Name returns the signal identifier.
func (f *FactCheck) Name() string { return NameFactCheck }

// Evaluate queries the claim index with the first 200 characters of the
// content. Any returned claim scores 90, none scores 40. Empty content
// or any lookup failure scores the neutral DefaultFactCheck.
func (f *FactCheck) Evaluate(ctx context.Context, in Input) int {
	if in.Content == "" {
		return DefaultFactCheck
	}

	score, err := f.lookup(ctx, truncate(in.Content, factCheckQueryLimit))
	if err != nil {
		logOrDefault(f.Log).WithError(err).Warn("fact-check: lookup failed, scoring neutral")
		return DefaultFactCheck
	}
	return score
}

func (f *FactCheck) lookup(ctx context.Context, query string) (int, error) {
	params := url.Values{"query": {query}}
	if f.APIKey != "" {
		params.Set("key", f.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, factCheckAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return 0, fmt.Errorf("fact-check API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fact-check API returned HTTP %d", resp.StatusCode)
	}

	var fr factCheckResponse
	if err := json.NewDecoder(resp.Body).Decode(&fr); err != nil {
		return 0, fmt.Errorf("parsing fact-check response: %w", err)
	}

	if len(fr.Claims) > 0 {
		return factCheckMatched, nil
	}
	return factCheckUnmatched, nil
}
