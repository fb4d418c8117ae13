package domain

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	m "tamper.dev/pkg/tamper/internal/model"
)

// ApplyPlan applies the planned corruptions to a working copy of the
// reference steps and returns the modified steps plus one metadata record
// per applied corruption.
//
// Entries are processed in ascending reference-index order. Insertions
// shift every later step in the working copy, so the applier keeps a
// running insertion offset; replaces never change it. Replace entries are
// validated against the reference pathway (not the working copy) and any
// mismatch is fatal: at consumption time the bank is assumed already
// validated, so a mismatch means it is stale.
//
// The returned records are sorted by corrupted step index and stamped
// with the sampling seed. On error the working copy is discarded; callers
// must not persist partial output.
func ApplyPlan(referenceSteps []string, bank m.Bank, plan m.Plan, seed int64) ([]string, []m.AppliedCorruption, error) {
	modified := make([]string, len(referenceSteps))
	copy(modified, referenceSteps)

	planSorted := make(m.Plan, len(plan))
	copy(planSorted, plan)
	sort.SliceStable(planSorted, func(i, j int) bool {
		return planSorted[i].StepIndex < planSorted[j].StepIndex
	})

	applied := make([]m.AppliedCorruption, 0, len(planSorted))
	insertionOffset := 0

	for _, entry := range planSorted {
		bankEntry, ok := bank.Find(entry.StepIndex, entry.ErrorType, entry.Difficulty)
		if !ok {
			return nil, nil, fmt.Errorf("%w: step=%d, type=%s, difficulty=%d",
				ErrCorruptionNotFound, entry.StepIndex, entry.ErrorType, entry.Difficulty)
		}

		refIdx := entry.StepIndex
		modIdx := refIdx + insertionOffset

		record := m.AppliedCorruption{BankEntry: bankEntry, SamplingSeed: seed}

		switch bankEntry.Operation {
		case m.OpReplace:
			if strings.TrimSpace(referenceSteps[refIdx]) != strings.TrimSpace(bankEntry.OriginalStatement) {
				return nil, nil, fmt.Errorf("%w: reference step %d: expected %q, got %q",
					ErrValidationMismatch, refIdx, bankEntry.OriginalStatement, referenceSteps[refIdx])
			}

			slog.Debug("replace", "ref", refIdx, "mod", modIdx, "corrupted", bankEntry.CorruptedStatement)

			modified[modIdx] = bankEntry.CorruptedStatement
			record.CorruptedStepIndex = modIdx
			origIdx := refIdx
			record.OriginalRefStepIndex = &origIdx
			record.OriginalRefStepText = referenceSteps[refIdx]

		case m.OpInsertBefore:
			slog.Debug("insert before", "ref", refIdx, "mod", modIdx, "corrupted", bankEntry.CorruptedStatement)

			modified = insertAt(modified, modIdx, bankEntry.CorruptedStatement)
			insertionOffset++
			record.CorruptedStepIndex = modIdx

		case m.OpInsertAfter:
			slog.Debug("insert after", "ref", refIdx, "mod", modIdx+1, "corrupted", bankEntry.CorruptedStatement)

			modified = insertAt(modified, modIdx+1, bankEntry.CorruptedStatement)
			insertionOffset++
			record.CorruptedStepIndex = modIdx + 1

		default:
			return nil, nil, fmt.Errorf("%w: %q", ErrUnknownOperation, bankEntry.Operation)
		}

		applied = append(applied, record)
	}

	sort.SliceStable(applied, func(i, j int) bool {
		return applied[i].CorruptedStepIndex < applied[j].CorruptedStepIndex
	})

	return modified, applied, nil
}

func insertAt(steps []string, index int, statement string) []string {
	steps = append(steps, "")
	copy(steps[index+1:], steps[index:])
	steps[index] = statement

	return steps
}
