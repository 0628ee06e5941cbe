// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package newsfetch

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/newslens/newslens/pkg/types"
)

func TestFormatTableClipsLongTitlesOnRunes(t *testing.T) {
	longTitle := strings.Repeat("ü", 80)
	resp := types.NewsResponse{
		Status: types.StatusSuccess,
		Results: []types.Document{
			{Num: 1, Title: longTitle, Rating: "4", Link: "https://example.com/a"},
		},
	}

	var buf bytes.Buffer
	FormatTable(resp, &buf)

	out := buf.String()
	if !utf8.ValidString(out) {
		t.Fatal("table output is not valid UTF-8")
	}
	if strings.Contains(out, longTitle) {
		t.Error("long title was not clipped")
	}
	if !strings.Contains(out, strings.Repeat("ü", 57)+"...") {
		t.Error("clipped title missing rune-preserving ellipsis form")
	}
}

func TestFormatTableErrorEnvelope(t *testing.T) {
	resp := types.NewsResponse{Status: types.StatusError, Message: "Failed to fetch news search results"}

	var buf bytes.Buffer
	FormatTable(resp, &buf)

	if !strings.Contains(buf.String(), "Failed to fetch news search results") {
		t.Errorf("output = %q, want the batch failure message", buf.String())
	}
}

func TestClipTitle(t *testing.T) {
	tests := []struct {
		s    string
		n    int
		want string
	}{
		{"short", 60, "short"},
		{strings.Repeat("a", 60), 60, strings.Repeat("a", 60)},
		{strings.Repeat("a", 61), 60, strings.Repeat("a", 57) + "..."},
		{strings.Repeat("é", 61), 60, strings.Repeat("é", 57) + "..."},
	}
	for _, tt := range tests {
		got := clipTitle(tt.s, tt.n)
		if got != tt.want {
			t.Errorf("clipTitle(%.10q..., %d) = %.20q, want %.20q", tt.s, tt.n, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("clipTitle(%.10q..., %d) produced invalid UTF-8", tt.s, tt.n)
		}
	}
}
