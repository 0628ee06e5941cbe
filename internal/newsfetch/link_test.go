// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package newsfetch

import "testing"

func TestDecodeRedirect(t *testing.T) {
	tests := []struct {
		name    string
		wrapped string
		want    string
		wantErr bool
	}{
		{
			name:    "https target",
			wrapped: "//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.reuters.com%2Fworld%2Fstory",
			want:    "https://www.reuters.com/world/story",
		},
		{
			name:    "http target",
			wrapped: "//duckduckgo.com/l/?uddg=http%3A%2F%2Fexample.com%2Fa",
			want:    "http://example.com/a",
		},
		{
			name:    "trailing rut parameter ignored",
			wrapped: "//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fa&rut=abc123",
			want:    "https://example.com/a",
		},
		{
			name:    "no uddg parameter",
			wrapped: "//duckduckgo.com/l/?other=1",
			wantErr: true,
		},
		{
			name:    "empty link",
			wrapped: "",
			wantErr: true,
		},
		{
			name:    "uddg not a URL",
			wrapped: "//duckduckgo.com/l/?uddg=javascript%3A%2F%2Fevil",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeRedirect(tt.wrapped)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("DecodeRedirect(%q) = %q, want error", tt.wrapped, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeRedirect(%q): %v", tt.wrapped, err)
			}
			if got != tt.want {
				t.Errorf("DecodeRedirect(%q) = %q, want %q", tt.wrapped, got, tt.want)
			}
		})
	}
}
