// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package page fetches web pages and extracts their readable text.
package page

import (
	"context"
	"fmt"
	"io"
	"net/http"
	nurl "net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// FetchFailedSentinel is the body recorded for an article whose server
// responded with a non-200 status. It is data, not an error: the
// candidate stays in the batch and downstream consumers treat the body
// as unavailable.
const FetchFailedSentinel = "Failed to fetch article."

// maxBodyBytes caps how much of a response is read. Credibility signals
// only consume the leading characters of a page, so there is no point
// streaming a multi-megabyte article.
const maxBodyBytes = 2 << 20

// FetchText fetches rawURL and returns its readable text. Every failure
// path (transport error, bad status, unparseable markup) returns the
// empty string; the signal evaluators define their own behavior for
// empty content.
func FetchText(ctx context.Context, client *http.Client, rawURL, userAgent string) string {
	src, status, err := get(ctx, client, rawURL, userAgent)
	if err != nil || status != http.StatusOK {
		return ""
	}
	return Text(src, rawURL)
}

// FetchArticle fetches a news article body for the retrieval pipeline.
// A transport-level failure returns an error and the caller drops the
// candidate. A response with a non-200 status returns FetchFailedSentinel
// with no error: the article was reachable but unavailable, and the
// candidate continues through the pipeline.
func FetchArticle(ctx context.Context, client *http.Client, rawURL, userAgent string) (string, error) {
	src, status, err := get(ctx, client, rawURL, userAgent)
	if err != nil {
		return "", fmt.Errorf("fetching article %s: %w", rawURL, err)
	}
	if status != http.StatusOK {
		return FetchFailedSentinel, nil
	}
	return Text(src, rawURL), nil
}

// get performs the GET and returns the raw body and status. Only
// transport-level problems are errors.
func get(ctx context.Context, client *http.Client, rawURL, userAgent string) (body string, status int, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", 0, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", 0, fmt.Errorf("reading response body: %w", err)
	}
	return string(data), resp.StatusCode, nil
}

// Text extracts readable text from an HTML document. It tries the
// readability extractor first and falls back to plain paragraph
// collection when readability finds nothing.
func Text(src, rawURL string) string {
	pageURL, _ := nurl.Parse(rawURL)

	article, err := readability.FromReader(strings.NewReader(src), pageURL)
	if err == nil {
		if text := strings.TrimSpace(article.TextContent); text != "" {
			return text
		}
	}
	return Paragraphs(src)
}

// Paragraphs returns the trimmed text of every <p> element in src,
// joined by newlines. Malformed markup yields whatever the tolerant
// HTML parser recovers; a parse failure yields the empty string.
func Paragraphs(src string) string {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return ""
	}

	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "p" {
			if text := strings.TrimSpace(collectText(n)); text != "" {
				parts = append(parts, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(parts, "\n")
}

// collectText concatenates all text nodes under n.
func collectText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
