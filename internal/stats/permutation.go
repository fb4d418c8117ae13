// Package stats provides the statistical aggregation routines used when
// scoring corruption persistence: permutation p-values and Beta-Binomial
// posterior estimates.
package stats

import "math"

// Direction selects the tail of a permutation test.
type Direction string

const (
	// DirectionUp tests whether the observed statistic is unusually high.
	DirectionUp Direction = "UP"
	// DirectionDown tests whether the observed statistic is unusually low.
	DirectionDown Direction = "DOWN"
	// DirectionUndefined runs a two-tailed test.
	DirectionUndefined Direction = "UNDEFINED"
)

// PValue computes the permutation p-value of the observed statistic
// against a null distribution. NaN entries in the null are ignored. The
// two-tailed p-value is twice the smaller tail, capped at 1.
func PValue(observed float64, null []float64, direction Direction) float64 {
	low, high, n := 0, 0, 0

	for _, v := range null {
		if math.IsNaN(v) {
			continue
		}

		n++

		if v <= observed {
			low++
		}

		if v >= observed {
			high++
		}
	}

	if n == 0 {
		return math.NaN()
	}

	pLow := float64(low) / float64(n)
	pHigh := float64(high) / float64(n)
	pTwo := math.Min(1.0, 2.0*math.Min(pHigh, pLow))

	switch direction {
	case DirectionUp:
		return pHigh
	case DirectionDown:
		return pLow
	default:
		return pTwo
	}
}
