package model

// RawCorruption is the JSON shape produced by the corruption-generation
// model, before provenance stamping.
type RawCorruption struct {
	AnchorStepIndex    int       `json:"anchor_step_index"`
	Operation          Operation `json:"operation"`
	ErrorType          ErrorType `json:"error_type"`
	Difficulty         int       `json:"difficulty"`
	OriginalStatement  string    `json:"original_statement"`
	CorruptedStatement string    `json:"corrupted_statement"`
	CategoryRationale  string    `json:"category_rationale"`
}

// RawCorruptionList is the top-level JSON container for generated
// corruptions.
type RawCorruptionList struct {
	Corruptions []RawCorruption `json:"corruptions"`
}
