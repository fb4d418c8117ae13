package stats

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Prior holds Beta prior pseudo-counts.
type Prior struct {
	Alpha float64
	Beta  float64
}

// PriorFunc derives a prior from observed hits. Fixed priors ignore the
// input.
type PriorFunc func(hits []float64) Prior

// ObservedPriorN is the total pseudo-count mass of the "observed" prior.
const ObservedPriorN = 10.0

// ObservedPrior estimates a Beta prior from the observed hit rate,
// splitting ObservedPriorN pseudo-counts proportionally.
func ObservedPrior(hits []float64) Prior {
	pHat := stat.Mean(hits, nil)

	return Prior{Alpha: pHat * ObservedPriorN, Beta: (1 - pHat) * ObservedPriorN}
}

// Priors builds the registry of named priors. The map is constructed at
// process start and passed by reference into the scoring workflow rather
// than living as package-level mutable state.
func Priors() map[string]PriorFunc {
	return map[string]PriorFunc{
		"uniform": func([]float64) Prior { return Prior{Alpha: 1, Beta: 1} },
		"none":    func([]float64) Prior { return Prior{Alpha: 0, Beta: 0} },
		"observed": func(hits []float64) Prior {
			return ObservedPrior(hits)
		},
	}
}

// LookupPrior resolves a prior by name against the registry.
func LookupPrior(registry map[string]PriorFunc, name string, hits []float64) (Prior, error) {
	fn, ok := registry[name]
	if !ok {
		return Prior{}, fmt.Errorf("unknown prior %q", name)
	}

	return fn(hits), nil
}
