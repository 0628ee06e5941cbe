// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package newsfetch orchestrates one news retrieval batch: fetch the
// search listing, fan out per-candidate fetch-and-rate tasks, gather
// the survivors in listing order, and emit a success/error envelope.
//
// Failure handling follows a strict taxonomy. A listing fetch or parse
// failure is terminal for the batch. Everything after the fan-out is
// per-candidate: a candidate whose link cannot be decoded or whose
// article is unreachable is dropped without disturbing its siblings,
// and a rating failure rides along as the "Error" sentinel. A batch
// with at least one surviving candidate reports success.
package newsfetch

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/newslens/newslens/internal/page"
	"github.com/newslens/newslens/internal/rater"
	"github.com/newslens/newslens/pkg/types"
)

// Batch failure messages surfaced in the error envelope.
const (
	msgListingFailed = "Failed to fetch news search results"
	msgNoResults     = "No valid news search results found"
)

// Defaults applied when NewsConfig leaves a field zero.
const (
	defaultNum            = 5
	maxNum                = 10
	defaultMaxConcurrent  = 5
	defaultTaskTimeout    = 30 * time.Second
	defaultArticleTimeout = 5 * time.Second
)

// Pipeline runs news retrieval batches. A Pipeline is safe for
// concurrent use; per-batch state lives on the stack of Search.
type Pipeline struct {
	// ListingClient performs the search-listing request.
	ListingClient *http.Client

	// ArticleClient performs per-article fetches. Its timeout should be
	// short (default 5s): one slow publisher must not consume a
	// candidate's whole task budget.
	ArticleClient *http.Client

	// Chat grades article quality. Nil disables rating; documents then
	// carry the "Error" sentinel.
	Chat rater.ChatClient

	Cfg types.NewsConfig
	Log *logrus.Logger
}

// Search runs one batch for query and returns the result envelope.
// Callers must branch on Status before touching Results.
func (p *Pipeline) Search(ctx context.Context, query string) types.NewsResponse {
	num := p.Cfg.MaxResults
	if num <= 0 {
		num = defaultNum
	}
	if num > maxNum {
		num = maxNum
	}

	candidates, err := FetchListing(ctx, p.listingClient(), query, p.Cfg)
	if err != nil {
		p.logger().WithError(err).Error("news batch: listing fetch failed")
		return types.NewsResponse{Status: types.StatusError, Message: msgListingFailed}
	}
	if len(candidates) > num {
		candidates = candidates[:num]
	}

	// Fan out one task per candidate, bounded by the semaphore. Each
	// task owns exactly one slot, indexed by candidate position, so the
	// gather preserves listing order regardless of completion order.
	slots := make([]*types.Document, len(candidates))
	sem := make(chan struct{}, p.maxConcurrent())

	var wg sync.WaitGroup
	for i, cand := range candidates {
		wg.Add(1)
		go func(i int, cand types.Candidate) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			taskCtx, cancel := context.WithTimeout(ctx, p.taskTimeout())
			defer cancel()

			slots[i] = p.processCandidate(taskCtx, cand)
		}(i, cand)
	}
	wg.Wait()

	var results []types.Document
	for _, doc := range slots {
		if doc != nil {
			results = append(results, *doc)
		}
	}

	if len(results) == 0 {
		return types.NewsResponse{Status: types.StatusError, Message: msgNoResults}
	}
	return types.NewsResponse{Status: types.StatusSuccess, Results: results}
}

// processCandidate runs one candidate's unit of work: decode the
// article link, fetch the body, rate it. A nil return drops the
// candidate; it never affects siblings.
func (p *Pipeline) processCandidate(ctx context.Context, cand types.Candidate) *types.Document {
	log := p.logger().WithField("title", cand.Title)

	link, err := DecodeRedirect(cand.WrappedLink)
	if err != nil {
		log.WithError(err).Warn("news batch: dropping candidate, link decode failed")
		return nil
	}

	body, err := page.FetchArticle(ctx, p.articleClient(), link, p.Cfg.ArticleUserAgent)
	if err != nil {
		log.WithError(err).Warn("news batch: dropping candidate, article unreachable")
		return nil
	}

	rating := rater.RatingError
	if p.Chat != nil {
		rating = rater.RateArticle(ctx, p.Chat, cand.Title, body, p.Log)
	}

	return &types.Document{
		Num:     cand.Index + 1,
		Link:    link,
		Title:   cand.Title,
		Summary: cand.Snippet,
		Body:    body,
		Rating:  rating,
	}
}

func (p *Pipeline) listingClient() *http.Client {
	if p.ListingClient != nil {
		return p.ListingClient
	}
	return http.DefaultClient
}

func (p *Pipeline) articleClient() *http.Client {
	if p.ArticleClient != nil {
		return p.ArticleClient
	}
	timeout := p.Cfg.ArticleTimeout
	if timeout <= 0 {
		timeout = defaultArticleTimeout
	}
	return &http.Client{Timeout: timeout}
}

func (p *Pipeline) maxConcurrent() int {
	if p.Cfg.MaxConcurrent > 0 {
		return p.Cfg.MaxConcurrent
	}
	return defaultMaxConcurrent
}

func (p *Pipeline) taskTimeout() time.Duration {
	if p.Cfg.TaskTimeout > 0 {
		return p.Cfg.TaskTimeout
	}
	return defaultTaskTimeout
}

func (p *Pipeline) logger() *logrus.Logger {
	if p.Log != nil {
		return p.Log
	}
	return logrus.StandardLogger()
}
