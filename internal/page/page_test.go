// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package page

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const articleFixture = `<html><head><title>Test Article</title></head><body>
<nav><a href="/">Home</a></nav>
<article>
<p>The first paragraph of the article carries the lede and enough
words to look like real prose to an extraction heuristic.</p>
<p>The second paragraph continues the story with additional detail
and context for the reader.</p>
</article>
</body></html>`

func TestParagraphs(t *testing.T) {
	got := Paragraphs(`<html><body><p>one</p><div><p> two </p></div><p></p></body></html>`)
	want := "one\ntwo"
	if got != want {
		t.Errorf("Paragraphs = %q, want %q", got, want)
	}
}

func TestParagraphsNoMarkup(t *testing.T) {
	if got := Paragraphs("no paragraphs here"); got != "" {
		t.Errorf("Paragraphs = %q, want empty", got)
	}
}

func TestTextExtractsArticle(t *testing.T) {
	got := Text(articleFixture, "https://example.com/story")
	if !strings.Contains(got, "first paragraph") {
		t.Errorf("Text = %q, missing article prose", got)
	}
	if !strings.Contains(got, "second paragraph") {
		t.Errorf("Text = %q, missing second paragraph", got)
	}
}

func TestTextEmptyDocument(t *testing.T) {
	if got := Text("", "https://example.com"); got != "" {
		t.Errorf("Text = %q, want empty for empty source", got)
	}
}

func TestFetchText(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(articleFixture))
	}))
	defer ts.Close()

	got := FetchText(context.Background(), ts.Client(), ts.URL, "newslens-test")
	if !strings.Contains(got, "first paragraph") {
		t.Errorf("FetchText = %q, missing article prose", got)
	}
	if gotUA != "newslens-test" {
		t.Errorf("User-Agent = %q", gotUA)
	}
}

func TestFetchTextBadStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	if got := FetchText(context.Background(), ts.Client(), ts.URL, ""); got != "" {
		t.Errorf("FetchText = %q, want empty on 404", got)
	}
}

func TestFetchTextUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	if got := FetchText(context.Background(), http.DefaultClient, url, ""); got != "" {
		t.Errorf("FetchText = %q, want empty on transport error", got)
	}
}

func TestFetchArticle(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(articleFixture))
	}))
	defer ts.Close()

	body, err := FetchArticle(context.Background(), ts.Client(), ts.URL, "")
	if err != nil {
		t.Fatalf("FetchArticle: %v", err)
	}
	if !strings.Contains(body, "first paragraph") {
		t.Errorf("body = %q, missing article prose", body)
	}
}

func TestFetchArticleBadStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	body, err := FetchArticle(context.Background(), ts.Client(), ts.URL, "")
	if err != nil {
		t.Fatalf("FetchArticle: %v, a bad status is not an error", err)
	}
	if body != FetchFailedSentinel {
		t.Errorf("body = %q, want %q", body, FetchFailedSentinel)
	}
}

func TestFetchArticleUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	if _, err := FetchArticle(context.Background(), http.DefaultClient, url, ""); err == nil {
		t.Fatal("expected error for unreachable server")
	}
}
