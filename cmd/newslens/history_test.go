// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestClip(t *testing.T) {
	tests := []struct {
		s    string
		n    int
		want string
	}{
		{"short", 30, "short"},
		{strings.Repeat("a", 30), 30, strings.Repeat("a", 30)},
		{strings.Repeat("a", 31), 30, strings.Repeat("a", 27) + "..."},
		{strings.Repeat("ß", 31), 30, strings.Repeat("ß", 27) + "..."},
		{"日本語のニュース", 3, "日本語"},
	}
	for _, tt := range tests {
		got := clip(tt.s, tt.n)
		if got != tt.want {
			t.Errorf("clip(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("clip(%q, %d) produced invalid UTF-8", tt.s, tt.n)
		}
	}
}
