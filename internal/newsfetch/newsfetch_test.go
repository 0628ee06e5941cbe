// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package newsfetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/newslens/newslens/internal/rater"
	"github.com/newslens/newslens/pkg/types"
)

// stubChat grades every article the same.
type stubChat struct {
	rating string
}

func (s *stubChat) Generate(context.Context, string) (string, error) {
	return s.rating, nil
}

// wrapLink builds a provider-style redirect link around target.
func wrapLink(target string) string {
	return "//duckduckgo.com/l/?uddg=" + url.QueryEscape(target)
}

// resultBlock renders one listing entry in the provider's markup.
func resultBlock(title, wrappedLink, snippet string) string {
	return fmt.Sprintf(`<div class="result__body">
<a class="result__a" href="%s">%s</a>
<a class="result__snippet">%s</a>
</div>`, wrappedLink, title, snippet)
}

func listingPage(blocks ...string) string {
	return "<html><body>" + strings.Join(blocks, "\n") + "</body></html>"
}

// newArticleServer serves one body per path and 404 elsewhere.
func newArticleServer(t *testing.T, bodies map[string]string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, "<html><body><p>%s</p></body></html>", body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newListingServer(t *testing.T, status int, page string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Write([]byte(page))
	}))
	t.Cleanup(ts.Close)
	withListingBase(t, ts.URL)
	return ts
}

func TestSearchSuccess(t *testing.T) {
	articles := newArticleServer(t, map[string]string{
		"/a": "Article A body text.",
		"/c": "Article C body text.",
	})
	listing := newListingServer(t, http.StatusOK, listingPage(
		resultBlock("Story A", wrapLink(articles.URL+"/a"), "Snippet A"),
		resultBlock("Story C", wrapLink(articles.URL+"/c"), "Snippet C"),
	))

	p := &Pipeline{
		ListingClient: listing.Client(),
		ArticleClient: articles.Client(),
		Chat:          &stubChat{rating: "4"},
	}
	resp := p.Search(context.Background(), "test query")

	if resp.Status != types.StatusSuccess {
		t.Fatalf("Status = %q (%s), want success", resp.Status, resp.Message)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(resp.Results))
	}

	a := resp.Results[0]
	if a.Num != 1 || a.Title != "Story A" || a.Summary != "Snippet A" {
		t.Errorf("first result = %+v", a)
	}
	if a.Link != articles.URL+"/a" {
		t.Errorf("first link = %q, want decoded article URL", a.Link)
	}
	if !strings.Contains(a.Body, "Article A body text.") {
		t.Errorf("first body = %q", a.Body)
	}
	if a.Rating != "4" {
		t.Errorf("first rating = %q, want 4", a.Rating)
	}
	if resp.Results[1].Title != "Story C" {
		t.Errorf("second result = %+v", resp.Results[1])
	}
}

func TestSearchDropsUnreachableCandidate(t *testing.T) {
	articles := newArticleServer(t, map[string]string{
		"/a": "Body A.",
		"/c": "Body C.",
	})

	// B points at a server that is already closed: a transport error,
	// not an HTTP status.
	dead := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	deadURL := dead.URL
	dead.Close()

	listing := newListingServer(t, http.StatusOK, listingPage(
		resultBlock("Story A", wrapLink(articles.URL+"/a"), "Snippet A"),
		resultBlock("Story B", wrapLink(deadURL+"/b"), "Snippet B"),
		resultBlock("Story C", wrapLink(articles.URL+"/c"), "Snippet C"),
	))

	p := &Pipeline{
		ListingClient: listing.Client(),
		ArticleClient: articles.Client(),
	}
	resp := p.Search(context.Background(), "q")

	if resp.Status != types.StatusSuccess {
		t.Fatalf("Status = %q, want success despite one dropped candidate", resp.Status)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(resp.Results))
	}
	if resp.Results[0].Title != "Story A" || resp.Results[1].Title != "Story C" {
		t.Errorf("results out of listing order: %q, %q", resp.Results[0].Title, resp.Results[1].Title)
	}
	// Slot numbering reflects the original listing position.
	if resp.Results[1].Num != 3 {
		t.Errorf("surviving candidate C has Num = %d, want 3", resp.Results[1].Num)
	}
}

func TestSearchKeepsCandidateOnArticleHTTPError(t *testing.T) {
	// The article server answers but with 404: the candidate survives
	// with the fetch-failed placeholder body.
	articles := newArticleServer(t, map[string]string{})
	listing := newListingServer(t, http.StatusOK, listingPage(
		resultBlock("Gone story", wrapLink(articles.URL+"/gone"), "Snippet"),
	))

	p := &Pipeline{
		ListingClient: listing.Client(),
		ArticleClient: articles.Client(),
	}
	resp := p.Search(context.Background(), "q")

	if resp.Status != types.StatusSuccess {
		t.Fatalf("Status = %q, want success", resp.Status)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(resp.Results))
	}
	if resp.Results[0].Body != "Failed to fetch article." {
		t.Errorf("body = %q, want fetch-failed placeholder", resp.Results[0].Body)
	}
}

func TestSearchListingFailure(t *testing.T) {
	listing := newListingServer(t, http.StatusInternalServerError, "")

	p := &Pipeline{ListingClient: listing.Client()}
	resp := p.Search(context.Background(), "q")

	if resp.Status != types.StatusError {
		t.Fatalf("Status = %q, want error", resp.Status)
	}
	if resp.Message != "Failed to fetch news search results" {
		t.Errorf("Message = %q", resp.Message)
	}
	if len(resp.Results) != 0 {
		t.Errorf("Results = %v, want none", resp.Results)
	}
}

func TestSearchAllCandidatesDropped(t *testing.T) {
	// Every link lacks the redirect parameter, so every candidate is
	// dropped at decode.
	listing := newListingServer(t, http.StatusOK, listingPage(
		resultBlock("Bad A", "//duckduckgo.com/l/?other=1", "s"),
		resultBlock("Bad B", "/relative/link", "s"),
	))

	p := &Pipeline{ListingClient: listing.Client()}
	resp := p.Search(context.Background(), "q")

	if resp.Status != types.StatusError {
		t.Fatalf("Status = %q, want error", resp.Status)
	}
	if resp.Message != "No valid news search results found" {
		t.Errorf("Message = %q", resp.Message)
	}
}

func TestSearchNilChatYieldsErrorRating(t *testing.T) {
	articles := newArticleServer(t, map[string]string{"/a": "Body."})
	listing := newListingServer(t, http.StatusOK, listingPage(
		resultBlock("Story", wrapLink(articles.URL+"/a"), "s"),
	))

	p := &Pipeline{
		ListingClient: listing.Client(),
		ArticleClient: articles.Client(),
	}
	resp := p.Search(context.Background(), "q")

	if resp.Status != types.StatusSuccess {
		t.Fatalf("Status = %q, want success", resp.Status)
	}
	if resp.Results[0].Rating != rater.RatingError {
		t.Errorf("Rating = %q, want %q without a chat model", resp.Results[0].Rating, rater.RatingError)
	}
}

// hangingChat never answers; it waits out the request context.
type hangingChat struct{}

func (hangingChat) Generate(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestSearchTaskTimeoutBoundsHangingRater(t *testing.T) {
	articles := newArticleServer(t, map[string]string{"/a": "Body."})
	listing := newListingServer(t, http.StatusOK, listingPage(
		resultBlock("Story", wrapLink(articles.URL+"/a"), "s"),
	))

	p := &Pipeline{
		ListingClient: listing.Client(),
		ArticleClient: articles.Client(),
		Chat:          hangingChat{},
		Cfg:           types.NewsConfig{TaskTimeout: 100 * time.Millisecond},
	}

	start := time.Now()
	resp := p.Search(context.Background(), "q")
	elapsed := time.Since(start)

	if elapsed > 5*time.Second {
		t.Fatalf("batch took %v, the per-candidate deadline did not fire", elapsed)
	}
	if resp.Status != types.StatusSuccess {
		t.Fatalf("Status = %q, want success", resp.Status)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(resp.Results))
	}
	if resp.Results[0].Rating != rater.RatingError {
		t.Errorf("Rating = %q, want %q when the rater exceeds the deadline", resp.Results[0].Rating, rater.RatingError)
	}
}

func TestSearchCancelledContext(t *testing.T) {
	articles := newArticleServer(t, map[string]string{"/a": "Body."})
	listing := newListingServer(t, http.StatusOK, listingPage(
		resultBlock("Story", wrapLink(articles.URL+"/a"), "s"),
	))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &Pipeline{
		ListingClient: listing.Client(),
		ArticleClient: articles.Client(),
	}
	resp := p.Search(ctx, "q")

	if resp.Status != types.StatusError {
		t.Fatalf("Status = %q, want error for a cancelled batch", resp.Status)
	}
}

func TestSearchHonorsMaxResults(t *testing.T) {
	bodies := map[string]string{}
	var blocks []string
	articles := newArticleServer(t, bodies)
	for i := 0; i < 6; i++ {
		path := fmt.Sprintf("/p%d", i)
		bodies[path] = fmt.Sprintf("Body %d.", i)
		blocks = append(blocks, resultBlock(fmt.Sprintf("Story %d", i), wrapLink(articles.URL+path), "s"))
	}
	listing := newListingServer(t, http.StatusOK, listingPage(blocks...))

	p := &Pipeline{
		ListingClient: listing.Client(),
		ArticleClient: articles.Client(),
		Cfg:           types.NewsConfig{MaxResults: 2},
	}
	resp := p.Search(context.Background(), "q")

	if resp.Status != types.StatusSuccess {
		t.Fatalf("Status = %q, want success", resp.Status)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(resp.Results))
	}
	if resp.Results[0].Title != "Story 0" || resp.Results[1].Title != "Story 1" {
		t.Errorf("results = %q, %q", resp.Results[0].Title, resp.Results[1].Title)
	}
}
