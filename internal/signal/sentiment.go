// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package signal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/newslens/newslens/internal/httputil"
)

// sentimentAPIBase is the hosted-inference model root. The model name
// is appended as a path segment. Declared as a var so tests can
// substitute an httptest server.
var sentimentAPIBase = "https://api-inference.huggingface.co/models"

// HFClassifier calls a HuggingFace-style hosted inference endpoint for
// text classification.
type HFClassifier struct {
	Client *http.Client
	APIKey string
	Model  string
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

type inferenceScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classify returns the highest-confidence sentiment label for text.
func (c *HFClassifier) Classify(ctx context.Context, text string) (Label, error) {
	body, err := json.Marshal(inferenceRequest{Inputs: text})
	if err != nil {
		return "", fmt.Errorf("marshaling inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sentimentAPIBase+"/"+c.Model, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return "", fmt.Errorf("inference API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("inference API returned HTTP %d", resp.StatusCode)
	}

	// The API nests one score list per input.
	var ir [][]inferenceScore
	if err := json.NewDecoder(resp.Body).Decode(&ir); err != nil {
		return "", fmt.Errorf("parsing inference response: %w", err)
	}
	if len(ir) == 0 || len(ir[0]) == 0 {
		return "", fmt.Errorf("inference API returned no classes")
	}

	best := ir[0][0]
	for _, s := range ir[0][1:] {
		if s.Score > best.Score {
			best = s
		}
	}
	return NormalizeLabel(best.Label), nil
}
