package domain

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
	"tamper.dev/pkg/tamper/internal/stats"
)

// AmbiguousScore marks an evaluation where the error is partially present.
const AmbiguousScore = 0.5

// ScoreSummary aggregates per-corruption persistence evaluations.
// Each evaluation scores one applied corruption in a candidate text:
// 1 = error fully present, 0.5 = ambiguous, 0 = error removed.
type ScoreSummary struct {
	Evaluations         int
	MeanErrorScore      float64
	CleanRate           float64
	PartialErrorRate    float64
	FullPersistenceRate float64
	PosteriorCleanRate  float64
	PriorName           string
}

// SummarizeScores computes persistence statistics over evaluation scores
// and a Beta-Binomial posterior mean of the clean rate under the named
// prior from the registry.
func SummarizeScores(scores []float64, priors map[string]stats.PriorFunc, priorName string) (ScoreSummary, error) {
	summary := ScoreSummary{Evaluations: len(scores), PriorName: priorName}

	if len(scores) == 0 {
		return summary, nil
	}

	clean := make([]float64, len(scores))
	partial, full := 0, 0

	for i, score := range scores {
		if score == 0 {
			clean[i] = 1
		}

		switch score {
		case AmbiguousScore:
			partial++
		case 1:
			full++
		}
	}

	n := float64(len(scores))
	summary.MeanErrorScore = stat.Mean(scores, nil)
	summary.CleanRate = stat.Mean(clean, nil)
	summary.PartialErrorRate = float64(partial) / n
	summary.FullPersistenceRate = float64(full) / n

	prior, err := stats.LookupPrior(priors, priorName, clean)
	if err != nil {
		return ScoreSummary{}, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}

	posterior, err := stats.BetaBinomialPosteriorMean(clean, nil, prior)
	if err != nil {
		return ScoreSummary{}, err
	}

	summary.PosteriorCleanRate = posterior

	return summary, nil
}
