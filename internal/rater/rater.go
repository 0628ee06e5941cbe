// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rater grades one article's quality with an external chat
// model. The model is asked for a single digit in [1,5]; anything else
// it says resolves to the "Error" sentinel, which callers treat as
// "rating unavailable", never as a failure of the batch.
package rater

import (
	"bytes"
	"context"
	"strings"
	"text/template"

	"github.com/sirupsen/logrus"
)

// RatingError is the sentinel rating for an unavailable grade: model
// invocation failure, empty output, or output that is not a digit 1-5.
const RatingError = "Error"

// bodyLimit bounds how much article text goes into the prompt.
const bodyLimit = 1000

// ChatClient is the narrow call contract with the external language
// model. Implementations must honor ctx cancellation.
type ChatClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ratingPromptTmpl asks the model for a bare digit so the response can
// be validated mechanically.
var ratingPromptTmpl = template.Must(template.New("rating").Parse(`Given the following article title and content, provide a rating between 1 and 5
based on how well the content aligns with the title and its overall quality.

- Article Title: {{.Title}}
- Article Content: {{.Body}}

Instructions:
- The rating must be a whole number between 1 and 5.
- Base your score on accuracy, clarity, and relevance.
- Only return a single numeric value (1-5) with no extra text.

Example output:
4
`))

// RateArticle asks the chat model to grade the article and validates
// the answer. It returns "1".."5", or RatingError when no valid grade
// could be obtained.
func RateArticle(ctx context.Context, client ChatClient, title, body string, log *logrus.Logger) string {
	prompt, err := renderPrompt(title, truncate(body, bodyLimit))
	if err != nil {
		logger(log).WithError(err).Warn("rater: prompt rendering failed")
		return RatingError
	}

	out, err := client.Generate(ctx, prompt)
	if err != nil {
		logger(log).WithError(err).Warn("rater: model invocation failed")
		return RatingError
	}

	return ParseRating(out)
}

// ParseRating validates raw model output as a digit in [1,5]. It
// tolerates surrounding whitespace and backtick fencing, which chat
// models add despite instructions, but nothing else.
func ParseRating(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "`")
	s = strings.TrimSpace(s)

	if len(s) != 1 || s[0] < '1' || s[0] > '5' {
		return RatingError
	}
	return s
}

// renderPrompt executes the rating prompt template.
func renderPrompt(title, body string) (string, error) {
	var buf bytes.Buffer
	err := ratingPromptTmpl.Execute(&buf, struct{ Title, Body string }{Title: title, Body: body})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// truncate returns at most n leading runes of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func logger(log *logrus.Logger) *logrus.Logger {
	if log != nil {
		return log
	}
	return logrus.StandardLogger()
}
