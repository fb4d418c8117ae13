package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorsPerCategory(t *testing.T) {
	t.Run("divides the budget evenly across categories", func(t *testing.T) {
		perCategory, err := ErrorsPerCategory(0.6, 10, 2, 1)
		require.NoError(t, err)
		require.Equal(t, 3, perCategory)
	})

	t.Run("floors at the per-category minimum when the fraction rounds to zero", func(t *testing.T) {
		perCategory, err := ErrorsPerCategory(0.01, 10, 3, 1)
		require.NoError(t, err)
		require.Equal(t, 1, perCategory)
	})

	t.Run("respects a larger per-category minimum", func(t *testing.T) {
		perCategory, err := ErrorsPerCategory(0.1, 10, 2, 2)
		require.NoError(t, err)
		require.Equal(t, 2, perCategory)
	})

	t.Run("rounds half to even", func(t *testing.T) {
		// 0.5 * 5 = 2.5 rounds to 2, not 3.
		perCategory, err := ErrorsPerCategory(0.5, 5, 1, 1)
		require.NoError(t, err)
		require.Equal(t, 2, perCategory)

		// 0.5 * 7 = 3.5 rounds to 4.
		perCategory, err = ErrorsPerCategory(0.5, 7, 1, 1)
		require.NoError(t, err)
		require.Equal(t, 4, perCategory)
	})

	t.Run("full fraction corrupts every step", func(t *testing.T) {
		perCategory, err := ErrorsPerCategory(1.0, 9, 3, 1)
		require.NoError(t, err)
		require.Equal(t, 3, perCategory)
	})
}

func TestErrorsPerCategory_InvalidParameters(t *testing.T) {
	cases := []struct {
		name          string
		fraction      float64
		pathwayLen    int
		numCategories int
	}{
		{"zero fraction", 0, 10, 2},
		{"negative fraction", -0.1, 10, 2},
		{"fraction above one", 1.5, 10, 2},
		{"zero pathway length", 0.5, 0, 2},
		{"negative pathway length", 0.5, -3, 2},
		{"zero categories", 0.5, 10, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ErrorsPerCategory(tc.fraction, tc.pathwayLen, tc.numCategories, 1)
			require.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestErrorsPerCategory_MonotoneInFraction(t *testing.T) {
	const pathwayLen, numCategories = 20, 2

	previous := 0

	for _, fraction := range []float64{0.05, 0.1, 0.2, 0.3, 0.5, 0.75, 1.0} {
		perCategory, err := ErrorsPerCategory(fraction, pathwayLen, numCategories, 1)
		require.NoError(t, err)
		require.GreaterOrEqual(t, perCategory, 1)

		total := perCategory * numCategories
		require.GreaterOrEqual(t, total, previous, "total must not decrease as fraction grows")

		previous = total
	}
}
