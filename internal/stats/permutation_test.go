package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPValue(t *testing.T) {
	null := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}

	t.Run("upper tail", func(t *testing.T) {
		p := PValue(0.85, null, DirectionUp)
		require.InDelta(t, 0.2, p, 1e-12)
	})

	t.Run("lower tail", func(t *testing.T) {
		p := PValue(0.15, null, DirectionDown)
		require.InDelta(t, 0.1, p, 1e-12)
	})

	t.Run("two-tailed doubles the smaller tail", func(t *testing.T) {
		p := PValue(0.95, null, DirectionUndefined)
		require.InDelta(t, 0.2, p, 1e-12)
	})

	t.Run("two-tailed is capped at one", func(t *testing.T) {
		p := PValue(0.55, null, DirectionUndefined)
		require.InDelta(t, 1.0, p, 1e-12)
	})

	t.Run("ties count in both tails", func(t *testing.T) {
		p := PValue(0.5, null, DirectionUp)
		require.InDelta(t, 0.6, p, 1e-12)
	})

	t.Run("NaN null entries are ignored", func(t *testing.T) {
		withNaN := []float64{math.NaN(), 0.1, math.NaN(), 0.9}

		p := PValue(0.5, withNaN, DirectionUp)
		require.InDelta(t, 0.5, p, 1e-12)
	})

	t.Run("all-NaN null yields NaN", func(t *testing.T) {
		p := PValue(0.5, []float64{math.NaN()}, DirectionUp)
		require.True(t, math.IsNaN(p))
	})

	t.Run("empty null yields NaN", func(t *testing.T) {
		p := PValue(0.5, nil, DirectionDown)
		require.True(t, math.IsNaN(p))
	})
}
