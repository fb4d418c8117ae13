package stats

import (
	"errors"
	"fmt"
)

// ErrNotNormalized reports effect-size weights outside [0, 1].
var ErrNotNormalized = errors.New("effect sizes are not normalized")

// BetaBinomialPosteriorMean computes (k + alpha) / (n + alpha + beta)
// over 0/1 hits. When weights is non-nil, each hit contributes its weight
// instead of 1; weights must be pre-normalized to at most 1 and negative
// weights are clipped to 0.
func BetaBinomialPosteriorMean(hits []float64, weights []float64, prior Prior) (float64, error) {
	n := float64(len(hits))
	k := 0.0

	if weights != nil {
		if len(weights) != len(hits) {
			return 0, fmt.Errorf("%w: %d weights for %d hits", ErrNotNormalized, len(weights), len(hits))
		}

		for i, hit := range hits {
			w := weights[i]
			if w > 1.0 {
				return 0, fmt.Errorf("%w: weight %v exceeds 1", ErrNotNormalized, w)
			}

			if w < 0 {
				w = 0
			}

			k += hit * w
		}
	} else {
		for _, hit := range hits {
			k += hit
		}
	}

	return (k + prior.Alpha) / (n + prior.Alpha + prior.Beta), nil
}
