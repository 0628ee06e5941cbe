// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package credibility

import (
	"fmt"
	"io"
	"strings"

	"github.com/newslens/newslens/pkg/types"
)

// FormatReport writes one report as a human-readable block to w.
func FormatReport(r types.Report, w io.Writer) {
	fmt.Fprintf(w, "%s\n", r.URL)
	fmt.Fprintf(w, "  query: %s\n", r.Query)
	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintf(w, "  %-14s %4d\n", "domain trust", r.Signals.DomainTrust)
	fmt.Fprintf(w, "  %-14s %4d\n", "relevance", r.Signals.Relevance)
	fmt.Fprintf(w, "  %-14s %4d\n", "fact-check", r.Signals.FactCheck)
	fmt.Fprintf(w, "  %-14s %4d\n", "bias", r.Signals.Bias)
	fmt.Fprintf(w, "  %-14s %4d\n", "citations", r.Signals.Citation)
	fmt.Fprintf(w, "  %-14s %6.1f\n", "composite", r.Composite)
	fmt.Fprintf(w, "  %-14s %d/5 %s\n", "rating", r.Stars, r.Icon)
	fmt.Fprintf(w, "  %s\n\n", r.Explanation())
}
