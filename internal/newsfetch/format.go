// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package newsfetch

import (
	"fmt"
	"io"
	"strings"

	"github.com/newslens/newslens/pkg/types"
)

// FormatTable writes the batch results as a human-readable table to w.
func FormatTable(resp types.NewsResponse, w io.Writer) {
	if resp.Status != types.StatusSuccess {
		fmt.Fprintf(w, "error: %s\n", resp.Message)
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-6s  %s\n", "Num", "Title", "Rating", "Link")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for _, doc := range resp.Results {
		fmt.Fprintf(w, "%-4d  %-60s  %-6s  %s\n", doc.Num, clipTitle(doc.Title, 60), doc.Rating, doc.Link)
	}
}

// clipTitle shortens s to at most n runes with an ellipsis. Slicing on
// runes keeps multibyte headlines valid.
func clipTitle(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
