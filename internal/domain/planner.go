package domain

import (
	"fmt"
	"math/rand"

	m "tamper.dev/pkg/tamper/internal/model"
)

// BuildPlan assigns error categories to pathway steps at random.
//
// It builds a multiset of perCategory requests for each error type,
// shuffles it, samples len(requests) distinct step indices from
// [0, numSteps) without replacement, and pairs each index positionally
// with a shuffled request. A single generator seeded from seed drives
// both the shuffle and the index sample, so two calls with identical
// arguments produce identical plans.
//
// The total request count is capped at numSteps: even though distinct
// operations could in principle target the same step, each step hosts at
// most one corruption per run.
func BuildPlan(errorTypes []m.ErrorType, difficulty, perCategory, numSteps int, seed int64) (m.Plan, error) {
	if len(errorTypes) == 0 || perCategory <= 0 {
		return nil, fmt.Errorf("%w: need at least one error type and a positive per-category count", ErrInvalidParameter)
	}

	total := len(errorTypes) * perCategory
	if total > numSteps {
		return nil, fmt.Errorf("%w: requested %d corruptions but pathway only has %d steps", ErrOverBudget, total, numSteps)
	}

	type request struct {
		errorType  m.ErrorType
		difficulty int
	}

	requests := make([]request, 0, total)

	for _, errorType := range errorTypes {
		for i := 0; i < perCategory; i++ {
			requests = append(requests, request{errorType: errorType, difficulty: difficulty})
		}
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(requests), func(i, j int) {
		requests[i], requests[j] = requests[j], requests[i]
	})

	chosenSteps := rng.Perm(numSteps)[:total]

	plan := make(m.Plan, 0, total)
	for i, step := range chosenSteps {
		plan = append(plan, m.PlanEntry{
			StepIndex:  step,
			ErrorType:  requests[i].errorType,
			Difficulty: requests[i].difficulty,
		})
	}

	return plan, nil
}
