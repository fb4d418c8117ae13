package domain

import (
	"fmt"
	"math"
)

// DefaultMinPerCategory guarantees every requested error category is
// represented at least once even when the fraction rounds down to zero.
const DefaultMinPerCategory = 1

// ErrorsPerCategory converts a target corruption fraction into the number
// of errors to inject per category.
//
// The requested total is fraction * pathwayLen rounded half-to-even,
// floored at numCategories * minPerCategory, then divided evenly across
// categories with floor division. The result never drops below
// minPerCategory. The function does not check the total against the
// pathway length; the plan builder owns that failure.
func ErrorsPerCategory(fraction float64, pathwayLen, numCategories, minPerCategory int) (int, error) {
	if fraction <= 0 || fraction > 1 {
		return 0, fmt.Errorf("%w: fraction %v must be in (0, 1]", ErrInvalidParameter, fraction)
	}

	if pathwayLen <= 0 {
		return 0, fmt.Errorf("%w: pathway length %d must be positive", ErrInvalidParameter, pathwayLen)
	}

	if numCategories <= 0 {
		return 0, fmt.Errorf("%w: number of error categories %d must be positive", ErrInvalidParameter, numCategories)
	}

	requestedTotal := int(math.RoundToEven(fraction * float64(pathwayLen)))
	minimumTotal := numCategories * minPerCategory

	total := requestedTotal
	if total < minimumTotal {
		total = minimumTotal
	}

	perCategory := total / numCategories
	if perCategory < minPerCategory {
		perCategory = minPerCategory
	}

	return perCategory, nil
}
