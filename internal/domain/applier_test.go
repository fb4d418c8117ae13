package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	m "tamper.dev/pkg/tamper/internal/model"
)

var referenceSteps = []string{"A activates B", "B binds C", "C degrades D"}

func bankWith(entries ...m.BankEntry) m.Bank {
	return m.Bank{Entries: entries}
}

func TestApplyPlan_Replace(t *testing.T) {
	bank := bankWith(m.BankEntry{
		AnchorStepIndex:    1,
		ErrorType:          m.ErrorWrongEntity,
		Difficulty:         1,
		Operation:          m.OpReplace,
		OriginalStatement:  "B binds C",
		CorruptedStatement: "B binds X",
	})
	plan := m.Plan{{StepIndex: 1, ErrorType: m.ErrorWrongEntity, Difficulty: 1}}

	modified, applied, err := ApplyPlan(referenceSteps, bank, plan, 42)
	require.NoError(t, err)

	require.Equal(t, []string{"A activates B", "B binds X", "C degrades D"}, modified)
	require.Len(t, applied, 1)
	require.Equal(t, 1, applied[0].CorruptedStepIndex)
	require.NotNil(t, applied[0].OriginalRefStepIndex)
	require.Equal(t, 1, *applied[0].OriginalRefStepIndex)
	require.Equal(t, "B binds C", applied[0].OriginalRefStepText)
	require.Equal(t, int64(42), applied[0].SamplingSeed)
}

func TestApplyPlan_InsertAfter(t *testing.T) {
	bank := bankWith(m.BankEntry{
		AnchorStepIndex:    0,
		ErrorType:          m.ErrorUnsupportedStep,
		Difficulty:         1,
		Operation:          m.OpInsertAfter,
		CorruptedStatement: "A also binds Z",
	})
	plan := m.Plan{{StepIndex: 0, ErrorType: m.ErrorUnsupportedStep, Difficulty: 1}}

	modified, applied, err := ApplyPlan(referenceSteps, bank, plan, 7)
	require.NoError(t, err)

	require.Equal(t, []string{"A activates B", "A also binds Z", "B binds C", "C degrades D"}, modified)
	require.Len(t, applied, 1)
	require.Equal(t, 1, applied[0].CorruptedStepIndex)
	require.Nil(t, applied[0].OriginalRefStepIndex)
	require.Empty(t, applied[0].OriginalRefStepText)
}

func TestApplyPlan_InsertBefore(t *testing.T) {
	bank := bankWith(m.BankEntry{
		AnchorStepIndex:    2,
		ErrorType:          m.ErrorUnsupportedStep,
		Difficulty:         2,
		Operation:          m.OpInsertBefore,
		CorruptedStatement: "C sequesters Q",
	})
	plan := m.Plan{{StepIndex: 2, ErrorType: m.ErrorUnsupportedStep, Difficulty: 2}}

	modified, applied, err := ApplyPlan(referenceSteps, bank, plan, 7)
	require.NoError(t, err)

	require.Equal(t, []string{"A activates B", "B binds C", "C sequesters Q", "C degrades D"}, modified)
	require.Equal(t, 2, applied[0].CorruptedStepIndex)
}

func TestApplyPlan_InsertionOffsetShiftsLaterEdits(t *testing.T) {
	// An insert at step 0 shifts the replace at step 2 by one position in
	// the working copy while its metadata still references the original
	// index.
	bank := bankWith(
		m.BankEntry{
			AnchorStepIndex:    0,
			ErrorType:          m.ErrorUnsupportedStep,
			Difficulty:         1,
			Operation:          m.OpInsertBefore,
			CorruptedStatement: "X inhibits A",
		},
		m.BankEntry{
			AnchorStepIndex:    2,
			ErrorType:          m.ErrorWrongDirection,
			Difficulty:         1,
			Operation:          m.OpReplace,
			OriginalStatement:  "C degrades D",
			CorruptedStatement: "D degrades C",
		},
	)

	// Deliberately out of order; the applier sorts by reference index.
	plan := m.Plan{
		{StepIndex: 2, ErrorType: m.ErrorWrongDirection, Difficulty: 1},
		{StepIndex: 0, ErrorType: m.ErrorUnsupportedStep, Difficulty: 1},
	}

	modified, applied, err := ApplyPlan(referenceSteps, bank, plan, 3)
	require.NoError(t, err)

	require.Equal(t, []string{"X inhibits A", "A activates B", "B binds C", "D degrades C"}, modified)
	require.Len(t, applied, 2)

	// Metadata is sorted by corrupted step index.
	require.Equal(t, 0, applied[0].CorruptedStepIndex)
	require.Equal(t, 3, applied[1].CorruptedStepIndex)
	require.Equal(t, 2, *applied[1].OriginalRefStepIndex)
}

func TestApplyPlan_LengthInvariants(t *testing.T) {
	t.Run("replaces preserve length", func(t *testing.T) {
		bank := bankWith(m.BankEntry{
			AnchorStepIndex: 0, ErrorType: m.ErrorWrongEntity, Difficulty: 1,
			Operation: m.OpReplace, OriginalStatement: "A activates B", CorruptedStatement: "A activates Q",
		})
		plan := m.Plan{{StepIndex: 0, ErrorType: m.ErrorWrongEntity, Difficulty: 1}}

		modified, _, err := ApplyPlan(referenceSteps, bank, plan, 1)
		require.NoError(t, err)
		require.Len(t, modified, len(referenceSteps))
	})

	t.Run("k inserts extend length by k", func(t *testing.T) {
		bank := bankWith(
			m.BankEntry{
				AnchorStepIndex: 0, ErrorType: m.ErrorUnsupportedStep, Difficulty: 1,
				Operation: m.OpInsertAfter, CorruptedStatement: "extra one",
			},
			m.BankEntry{
				AnchorStepIndex: 2, ErrorType: m.ErrorWrongEntity, Difficulty: 1,
				Operation: m.OpInsertBefore, CorruptedStatement: "extra two",
			},
		)
		plan := m.Plan{
			{StepIndex: 0, ErrorType: m.ErrorUnsupportedStep, Difficulty: 1},
			{StepIndex: 2, ErrorType: m.ErrorWrongEntity, Difficulty: 1},
		}

		modified, _, err := ApplyPlan(referenceSteps, bank, plan, 1)
		require.NoError(t, err)
		require.Len(t, modified, len(referenceSteps)+2)
	})
}

func TestApplyPlan_ValidationMismatch(t *testing.T) {
	bank := bankWith(m.BankEntry{
		AnchorStepIndex:    1,
		ErrorType:          m.ErrorWrongEntity,
		Difficulty:         1,
		Operation:          m.OpReplace,
		OriginalStatement:  "B binds C",
		CorruptedStatement: "B binds X",
	})
	plan := m.Plan{{StepIndex: 1, ErrorType: m.ErrorWrongEntity, Difficulty: 1}}

	drifted := []string{"A activates B", "B binds D", "C degrades D"}

	modified, applied, err := ApplyPlan(drifted, bank, plan, 42)
	require.ErrorIs(t, err, ErrValidationMismatch)
	require.Nil(t, modified)
	require.Nil(t, applied)
}

func TestApplyPlan_ReplaceToleratesSurroundingWhitespace(t *testing.T) {
	bank := bankWith(m.BankEntry{
		AnchorStepIndex:    1,
		ErrorType:          m.ErrorWrongEntity,
		Difficulty:         1,
		Operation:          m.OpReplace,
		OriginalStatement:  "  B binds C ",
		CorruptedStatement: "B binds X",
	})
	plan := m.Plan{{StepIndex: 1, ErrorType: m.ErrorWrongEntity, Difficulty: 1}}

	modified, _, err := ApplyPlan(referenceSteps, bank, plan, 42)
	require.NoError(t, err)
	require.Equal(t, "B binds X", modified[1])
}

func TestApplyPlan_CorruptionNotFound(t *testing.T) {
	plan := m.Plan{{StepIndex: 1, ErrorType: m.ErrorWrongEntity, Difficulty: 2}}

	_, _, err := ApplyPlan(referenceSteps, bankWith(), plan, 42)
	require.ErrorIs(t, err, ErrCorruptionNotFound)
}

func TestApplyPlan_UnknownOperation(t *testing.T) {
	bank := bankWith(m.BankEntry{
		AnchorStepIndex:    1,
		ErrorType:          m.ErrorWrongEntity,
		Difficulty:         1,
		Operation:          "swap_steps",
		CorruptedStatement: "whatever",
	})
	plan := m.Plan{{StepIndex: 1, ErrorType: m.ErrorWrongEntity, Difficulty: 1}}

	_, _, err := ApplyPlan(referenceSteps, bank, plan, 42)
	require.ErrorIs(t, err, ErrUnknownOperation)
}
