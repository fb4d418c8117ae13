package model

// Operation describes how a corruption edits the working pathway copy.
type Operation string

const (
	// OpReplace overwrites the anchor step with the corrupted statement.
	OpReplace Operation = "replace"
	// OpInsertBefore inserts the corrupted statement before the anchor step.
	OpInsertBefore Operation = "insert_before"
	// OpInsertAfter inserts the corrupted statement after the anchor step.
	OpInsertAfter Operation = "insert_after"
)

// ErrorType is the category of a corruption.
type ErrorType string

const (
	// ErrorWrongEntity swaps a biological entity for an incorrect one.
	ErrorWrongEntity ErrorType = "wrong_entity"
	// ErrorWrongDirection reverses the direction of a regulatory relation.
	ErrorWrongDirection ErrorType = "wrong_direction"
	// ErrorUnsupportedStep adds a step with no support in the reference.
	ErrorUnsupportedStep ErrorType = "add_unsupported_step"
)

// KnownErrorTypes lists the corruption categories the bank format understands.
var KnownErrorTypes = []ErrorType{ErrorWrongEntity, ErrorWrongDirection, ErrorUnsupportedStep}

// BankEntry is one candidate corruption from the bank, keyed by
// (pathway id, anchor step index, error type, difficulty).
// OriginalStatement is set only for replace operations. Extra carries
// free-form provenance columns (timestamps, model name, seed, rationale)
// that pass through to the metadata output unchanged.
type BankEntry struct {
	PathwayID          string
	AnchorStepIndex    int
	ErrorType          ErrorType
	Difficulty         int
	Operation          Operation
	OriginalStatement  string
	CorruptedStatement string
	Extra              map[string]string
}

// Bank is a loaded corruption bank. Columns preserves the source file's
// header order so provenance columns round-trip in their original
// positions.
type Bank struct {
	Columns []string
	Entries []BankEntry
}

// ForPathway returns the subset of entries targeting the given pathway id,
// keeping the original column order.
func (b Bank) ForPathway(pathwayID string) Bank {
	entries := make([]BankEntry, 0, len(b.Entries))

	for _, entry := range b.Entries {
		if entry.PathwayID == pathwayID {
			entries = append(entries, entry)
		}
	}

	return Bank{Columns: b.Columns, Entries: entries}
}

// Find returns the first entry matching the anchor index, error type and
// difficulty, mirroring bank semantics where the first match wins.
func (b Bank) Find(anchor int, errorType ErrorType, difficulty int) (BankEntry, bool) {
	for _, entry := range b.Entries {
		if entry.AnchorStepIndex == anchor && entry.ErrorType == errorType && entry.Difficulty == difficulty {
			return entry, true
		}
	}

	return BankEntry{}, false
}

// PlanEntry is one requested corruption: which reference step to corrupt,
// with what error category, at what difficulty.
type PlanEntry struct {
	StepIndex  int
	ErrorType  ErrorType
	Difficulty int
}

// Plan is an ordered set of corruption requests. Ordering is irrelevant to
// consumers; the applier re-sorts by step index.
type Plan []PlanEntry

// AppliedCorruption is the record of one successfully applied bank entry.
// CorruptedStepIndex is the step's position in the corrupted pathway after
// all preceding insertions. OriginalRefStepIndex and OriginalRefStepText
// are set only for replace operations and refer to the uncorrupted
// reference pathway.
type AppliedCorruption struct {
	BankEntry

	CorruptedStepIndex   int
	OriginalRefStepIndex *int
	OriginalRefStepText  string
	SamplingSeed         int64
}
