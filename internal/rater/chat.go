// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rater

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/newslens/newslens/pkg/types"
)

// chatRetryBaseDelay is the base backoff after a rate-limited chat
// call. Tests override this to avoid real sleeps.
var chatRetryBaseDelay = 2 * time.Second

const defaultChatRetries = 3

// ChatModelClient adapts an OpenAI-compatible chat model (hosted
// provider or local Ollama endpoint) to the ChatClient contract, with
// client-side rate limiting and bounded retry on 429 responses.
type ChatModelClient struct {
	cm         model.ChatModel
	limiter    *rate.Limiter
	maxRetries int
}

// NewChatModelClient constructs the chat model from cfg. When cfg.RPM
// is positive, calls are throttled to that request-per-minute budget.
func NewChatModelClient(ctx context.Context, cfg types.ModelConfig) (*ChatModelClient, error) {
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing chat model: %w", err)
	}

	c := &ChatModelClient{cm: cm, maxRetries: cfg.MaxRetries}
	if c.maxRetries <= 0 {
		c.maxRetries = defaultChatRetries
	}

	if cfg.RPM > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(float64(cfg.RPM)/60.0), burst)
	}

	return c, nil
}

// Generate sends the prompt and returns the model's text. Rate-limited
// calls are retried with exponential backoff up to the configured
// retry budget.
func (c *ChatModelClient) Generate(ctx context.Context, prompt string) (string, error) {
	messages := []*schema.Message{
		{Role: schema.User, Content: prompt},
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return "", fmt.Errorf("limiter wait: %w", err)
			}
		}

		resp, err := c.cm.Generate(ctx, messages)
		if err == nil {
			return strings.TrimSpace(resp.Content), nil
		}
		if !isRateLimited(err) || attempt == c.maxRetries {
			return "", err
		}

		lastErr = err
		delay := chatRetryBaseDelay * time.Duration(1<<attempt)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}

	return "", fmt.Errorf("chat retries exhausted: %w", lastErr)
}

// isRateLimited recognizes a 429 from the provider. The eino client
// surfaces provider errors as text, so string matching is the only
// handle available.
func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "too many requests")
}
