// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Batch status values returned in a NewsResponse.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Document is one news search result after its article body has been
// fetched and rated. Documents are immutable once returned to the caller.
type Document struct {
	// Num is the 1-based position of the candidate in the original
	// search listing. Output order is stable by Num, not by completion.
	Num int `json:"num"`

	// Link is the decoded article URL.
	Link string `json:"link"`

	// Title is the headline as shown in the search listing.
	Title string `json:"title"`

	// Summary is the listing snippet.
	Summary string `json:"summary"`

	// Body is the extracted article text, or the fetch-failure sentinel
	// when the article responded with a bad status.
	Body string `json:"body"`

	// Rating is the quality grade from the article rater: "1".."5", or
	// "Error" when the rating is unavailable.
	Rating string `json:"rating"`
}

// NewsResponse is the envelope returned by a news batch. Callers must
// branch on Status before touching Results.
type NewsResponse struct {
	Status  string     `json:"status"`
	Results []Document `json:"results,omitempty"`
	Message string     `json:"message,omitempty"`
}

// Candidate is one search-result entry before its article body and
// rating are fetched.
type Candidate struct {
	// Index is the 0-based position in the search listing.
	Index int

	// Title is the headline text.
	Title string

	// WrappedLink is the provider's redirect-wrapped URL.
	WrappedLink string

	// Snippet is the short summary shown in the listing.
	Snippet string
}
