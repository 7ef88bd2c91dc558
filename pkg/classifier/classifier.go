// Package classifier maps free text to one label out of a fixed set. It
// backs both intent routing and troubleshooting problem detection.
package classifier

import (
	"context"
	"errors"
)

const (
	IntentTroubleshooting = "troubleshooting"
	IntentRecommendation  = "recommendation"
	IntentRecipe          = "recipe"
	IntentUnknown         = "unknown"
)

var IntentLabels = []string{IntentTroubleshooting, IntentRecommendation, IntentRecipe, IntentUnknown}

var ErrNotTrained = errors.New("classifier has no examples")

type Classifier interface {
	Classify(ctx context.Context, text string) (string, error)
}

// Example is one labelled phrase.
type Example struct {
	Text  string
	Label string
}
