// Package domain contains the core corruption sampling and application logic.
package domain

import "errors"

// Failure taxonomy for corruption runs. None of these are retried; all
// propagate to the top-level caller, which aborts the run.
var (
	// ErrInvalidParameter reports a caller error in budget or plan parameters.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrOverBudget reports that more corruptions were requested than the
	// pathway has steps.
	ErrOverBudget = errors.New("corruption budget exceeds pathway length")
	// ErrCorruptionNotFound reports a plan entry with no matching bank entry.
	ErrCorruptionNotFound = errors.New("no matching corruption in bank")
	// ErrValidationMismatch reports a replace entry whose original statement
	// does not match the reference pathway text.
	ErrValidationMismatch = errors.New("original statement does not match reference step")
	// ErrUnknownOperation reports a malformed bank entry operation tag.
	ErrUnknownOperation = errors.New("unknown corruption operation")
)
