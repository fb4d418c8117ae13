package domain

import (
	"fmt"
	"log/slog"
	"strings"

	m "tamper.dev/pkg/tamper/internal/model"
)

// ValidateAndFixEntries checks generated bank entries against the true
// pathway steps and repairs what it can.
//
// Unlike the applier, a replace-statement mismatch here is auto-corrected
// to the pathway text rather than failing: generation-time entries are
// LLM output and minor transcription slips are expected. Structural
// problems are still fatal: out-of-bounds anchors, insert entries
// carrying an original statement, and unknown operation tags.
//
// The returned count is the number of auto-corrections applied.
func ValidateAndFixEntries(entries []m.BankEntry, steps []string) ([]m.BankEntry, int, error) {
	fixed := 0

	for i := range entries {
		entry := &entries[i]
		idx := entry.AnchorStepIndex

		if idx < 0 || idx > len(steps) {
			return nil, 0, fmt.Errorf("%w: anchor_step_index %d out of bounds for %d steps",
				ErrInvalidParameter, idx, len(steps))
		}

		switch entry.Operation {
		case m.OpReplace:
			if idx == len(steps) {
				return nil, 0, fmt.Errorf("%w: replace anchor %d must lie inside the pathway (%d steps)",
					ErrInvalidParameter, idx, len(steps))
			}

			expected := strings.TrimSpace(steps[idx])
			actual := strings.TrimSpace(entry.OriginalStatement)

			if expected != actual {
				slog.Warn("auto-correcting original statement",
					"pathway_id", entry.PathwayID, "step", idx, "expected", expected, "got", actual)

				entry.OriginalStatement = expected
				fixed++
			}

		case m.OpInsertBefore, m.OpInsertAfter:
			if entry.OriginalStatement != "" {
				return nil, 0, fmt.Errorf("%w: original statement must be empty for operation %q (got %q)",
					ErrInvalidParameter, entry.Operation, entry.OriginalStatement)
			}

		default:
			return nil, 0, fmt.Errorf("%w: %q", ErrUnknownOperation, entry.Operation)
		}
	}

	return entries, fixed, nil
}

// CheckCombinationCoverage verifies that every (error type, difficulty)
// combination present anywhere in the bank exists for every
// (pathway, anchor step) the bank covers. A bank missing combinations
// would make some corruption plans unsatisfiable at apply time.
func CheckCombinationCoverage(entries []m.BankEntry) error {
	type combo struct {
		errorType  m.ErrorType
		difficulty int
	}

	type stepKey struct {
		pathwayID string
		anchor    int
	}

	expected := make(map[combo]struct{})
	byStep := make(map[stepKey]map[combo]struct{})

	for _, entry := range entries {
		c := combo{errorType: entry.ErrorType, difficulty: entry.Difficulty}
		expected[c] = struct{}{}

		key := stepKey{pathwayID: entry.PathwayID, anchor: entry.AnchorStepIndex}
		if byStep[key] == nil {
			byStep[key] = make(map[combo]struct{})
		}

		byStep[key][c] = struct{}{}
	}

	for key, present := range byStep {
		for c := range expected {
			if _, ok := present[c]; !ok {
				return fmt.Errorf("%w: step (pathway_id=%s, anchor_step_index=%d) is missing combination (%s, %d)",
					ErrInvalidParameter, key.pathwayID, key.anchor, c.errorType, c.difficulty)
			}
		}
	}

	return nil
}
