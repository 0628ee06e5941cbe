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

// CitationSource reports how often a topic is cited in the scholarly
// record. Implementations must be safe for concurrent use.
type CitationSource interface {
	Count(ctx context.Context, query string) (int, error)
}

// Citation scores scholarly corroboration of the query topic. The score
// is clamp(count*2, 35, 100): even a zero-citation topic keeps the
// CitationFloor, so lack of citations alone never tanks a document.
type Citation struct {
	Source CitationSource
	Log    *logrus.Logger
}

// Name returns the signal identifier.
func (c *Citation) Name() string { return NameCitation }

// Evaluate returns the normalized citation score. Any lookup failure
// scores the CitationFloor.
func (c *Citation) Evaluate(ctx context.Context, in Input) int {
	count, err := c.Source.Count(ctx, in.Query)
	if err != nil {
		logOrDefault(c.Log).WithError(err).Warn("citation: lookup failed, scoring floor")
		return CitationFloor
	}
	return clampScore(count*2, CitationFloor, 100)
}

// openAlexWorksBase is the OpenAlex works search endpoint. Declared as
// a var so tests can substitute an httptest server.
var openAlexWorksBase = "https://api.openalex.org/works"

// OpenAlexCitations counts citations of the best-matching work in the
// OpenAlex index.
type OpenAlexCitations struct {
	Client *http.Client
	// Email is sent as mailto parameter for polite pool access.
	Email     string
	UserAgent string
}

type openAlexWorksResponse struct {
	Results []struct {
		CitedByCount int `json:"cited_by_count"`
	} `json:"results"`
}

// Count searches OpenAlex for query and returns the top hit's
// cited-by count. No matching work counts as zero citations.
func (o *OpenAlexCitations) Count(ctx context.Context, query string) (int, error) {
	if query == "" {
		return 0, nil
	}

	params := url.Values{
		"search":   {query},
		"per_page": {"1"},
	}
	if o.Email != "" {
		params.Set("mailto", o.Email)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, openAlexWorksBase+"?"+params.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	if o.UserAgent != "" {
		req.Header.Set("User-Agent", o.UserAgent)
	}

	client := o.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return 0, fmt.Errorf("OpenAlex API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("OpenAlex API returned HTTP %d", resp.StatusCode)
	}

	var wr openAlexWorksResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return 0, fmt.Errorf("parsing OpenAlex response: %w", err)
	}

	if len(wr.Results) == 0 {
		return 0, nil
	}
	return wr.Results[0].CitedByCount, nil
}
