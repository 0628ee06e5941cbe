// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package signal

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

// biasContentLimit is how much of the content is classified. Sentiment
// models accept short sequences; the lede carries the tone.
const biasContentLimit = 512

// Label is a sentiment class produced by a Classifier.
type Label string

const (
	LabelPositive Label = "positive"
	LabelNegative Label = "negative"
	LabelNeutral  Label = "neutral"
)

// Classifier maps text to a sentiment label. Implementations must be
// safe for concurrent use.
type Classifier interface {
	Classify(ctx context.Context, text string) (Label, error)
}

// Sentiment class scores. Strongly negative tone reads as potential
// bias; neutral tone sits between.
const (
	biasPositive = 90
	biasNegative = 30
	biasNeutral  = 60
)

// Bias estimates tonal bias in the document from a sentiment
// classification of its opening text.
type Bias struct {
	Classifier Classifier
	Log        *logrus.Logger
}

// Name returns the signal identifier.
func (b *Bias) Name() string { return NameBias }

// Evaluate classifies the first 512 characters of the content. Empty
// content or a classification failure scores the neutral DefaultBias.
func (b *Bias) Evaluate(ctx context.Context, in Input) int {
	if in.Content == "" {
		return DefaultBias
	}

	label, err := b.Classifier.Classify(ctx, truncate(in.Content, biasContentLimit))
	if err != nil {
		logOrDefault(b.Log).WithError(err).Warn("bias: classification failed, scoring neutral")
		return DefaultBias
	}

	switch label {
	case LabelPositive:
		return biasPositive
	case LabelNegative:
		return biasNegative
	default:
		return biasNeutral
	}
}

// NormalizeLabel maps model-specific label spellings ("POSITIVE",
// "LABEL_2", "neg") onto the three canonical classes. Unrecognized
// labels normalize to neutral.
func NormalizeLabel(raw string) Label {
	l := strings.ToLower(raw)
	switch {
	case strings.Contains(l, "pos"), l == "label_2":
		return LabelPositive
	case strings.Contains(l, "neg"), l == "label_0":
		return LabelNegative
	default:
		return LabelNeutral
	}
}
