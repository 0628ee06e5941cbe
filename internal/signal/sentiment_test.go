// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package signal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func withSentimentBase(t *testing.T, url string) {
	t.Helper()
	old := sentimentAPIBase
	sentimentAPIBase = url
	t.Cleanup(func() { sentimentAPIBase = old })
}

func TestHFClassifierPicksBestClass(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sentiment-model" {
			t.Errorf("path = %q, want /sentiment-model", r.URL.Path)
		}
		var req inferenceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.Inputs != "great news everyone" {
			t.Errorf("inputs = %q", req.Inputs)
		}
		w.Write([]byte(`[[{"label":"LABEL_0","score":0.1},{"label":"LABEL_2","score":0.7},{"label":"LABEL_1","score":0.2}]]`))
	}))
	defer ts.Close()
	withSentimentBase(t, ts.URL)

	c := &HFClassifier{Client: ts.Client(), Model: "sentiment-model"}
	label, err := c.Classify(context.Background(), "great news everyone")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if label != LabelPositive {
		t.Errorf("label = %q, want %q", label, LabelPositive)
	}
}

func TestHFClassifierAuthHeader(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[[{"label":"NEUTRAL","score":0.9}]]`))
	}))
	defer ts.Close()
	withSentimentBase(t, ts.URL)

	c := &HFClassifier{Client: ts.Client(), APIKey: "hf_test", Model: "m"}
	if _, err := c.Classify(context.Background(), "text"); err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if gotAuth != "Bearer hf_test" {
		t.Errorf("Authorization = %q, want Bearer hf_test", gotAuth)
	}
}

func TestHFClassifierServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()
	withSentimentBase(t, ts.URL)

	c := &HFClassifier{Client: ts.Client(), Model: "m"}
	if _, err := c.Classify(context.Background(), "text"); err == nil {
		t.Fatal("expected error on HTTP 503")
	}
}

func TestHFClassifierEmptyClasses(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()
	withSentimentBase(t, ts.URL)

	c := &HFClassifier{Client: ts.Client(), Model: "m"}
	if _, err := c.Classify(context.Background(), "text"); err == nil {
		t.Fatal("expected error when response has no classes")
	}
}
