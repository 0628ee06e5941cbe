// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package newsfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/newslens/newslens/pkg/types"
)

// listingAPIBase is the news-search HTML endpoint. Declared as a var so
// tests can substitute an httptest server.
var listingAPIBase = "https://duckduckgo.com/html/"

// FetchListing requests the raw search listing for query and parses it
// into candidates. A non-200 response or a listing with no result
// blocks is an error: there is nothing to fan out over.
func FetchListing(ctx context.Context, client *http.Client, query string, cfg types.NewsConfig) ([]types.Candidate, error) {
	params := url.Values{
		"q":  {query},
		"ia": {"news"},
	}
	if cfg.Location != "" {
		params.Set("kl", cfg.Location)
	}
	if cfg.TimeWindow != "" {
		params.Set("df", cfg.TimeWindow)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listingAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news search returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading listing body: %w", err)
	}

	candidates, err := ParseListing(string(body))
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

// Listing markup hooks. The provider renders each result as a
// div.result__body holding an a.result__a title link and an
// a.result__snippet summary.
const (
	classResultBody    = "result__body"
	classResultTitle   = "result__a"
	classResultSnippet = "result__snippet"
)

// ParseListing extracts candidates from the listing HTML, in page
// order. A result block without a title anchor is skipped. A listing
// that yields no candidates at all is a parse failure: either the
// markup changed or the response is not a result page.
func ParseListing(src string) ([]types.Candidate, error) {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parsing listing HTML: %w", err)
	}

	var candidates []types.Candidate
	for _, block := range elementsWithClass(doc, "div", classResultBody) {
		title := firstElementWithClass(block, "a", classResultTitle)
		if title == nil {
			continue
		}

		cand := types.Candidate{
			Index:       len(candidates),
			Title:       strings.TrimSpace(nodeText(title)),
			WrappedLink: attr(title, "href"),
		}

		if snippet := firstElementWithClass(block, "a", classResultSnippet); snippet != nil {
			cand.Snippet = strings.TrimSpace(nodeText(snippet))
		}
		if cand.Snippet == "" {
			cand.Snippet = "No summary available."
		}

		candidates = append(candidates, cand)
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("no result blocks in listing")
	}
	return candidates, nil
}

// elementsWithClass returns all tag elements under root carrying class.
func elementsWithClass(root *html.Node, tag, class string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag && hasClass(n, class) {
			out = append(out, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// firstElementWithClass returns the first matching element, or nil.
func firstElementWithClass(root *html.Node, tag, class string) *html.Node {
	if els := elementsWithClass(root, tag, class); len(els) > 0 {
		return els[0]
	}
	return nil
}

// hasClass reports whether n's class attribute contains class as a
// whole token.
func hasClass(n *html.Node, class string) bool {
	for _, token := range strings.Fields(attr(n, "class")) {
		if token == class {
			return true
		}
	}
	return false
}

// attr returns the value of the named attribute, or "".
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// nodeText concatenates all text nodes under n.
func nodeText(n *html.Node) string {
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
