package solver

import "errors"

// FailureReason is the discriminated set of ways Solve or Escalate can
// fail to produce a grid (spec.md §7).
type FailureReason string

const (
	// ReasonInvalidTemplate means the template has a slot that would
	// be shorter than 2 cells. Fatal; no retry.
	ReasonInvalidTemplate FailureReason = "INVALID_TEMPLATE"
	// ReasonEmptyDictionary means some required length has no words
	// in the tier. Fatal for that tier; escalation may still try the
	// next.
	ReasonEmptyDictionary FailureReason = "EMPTY_DICTIONARY"
	// ReasonTimeout means the wall-clock budget was exhausted.
	ReasonTimeout FailureReason = "TIMEOUT"
	// ReasonMaxAttempts means the recursion budget was exhausted.
	ReasonMaxAttempts FailureReason = "MAX_ATTEMPTS"
	// ReasonExhausted means the search tree was fully explored
	// without finding a solution.
	ReasonExhausted FailureReason = "EXHAUSTED"
	// ReasonGenerationFailed is the final failure surfaced after all
	// tiers and attempts are spent.
	ReasonGenerationFailed FailureReason = "GRID_GENERATION_FAILED"
)

// ErrEmptyDictionary is the sentinel wrapped into errors returned by
// dictionary-facing helpers when a tier has no words for a required
// length.
var ErrEmptyDictionary = errors.New("EMPTY_DICTIONARY")

// ErrGridGenerationFailed is the sentinel surfaced by the escalation
// controller when every tier and attempt has been exhausted. No
// placeholder grid is ever returned alongside it.
var ErrGridGenerationFailed = errors.New("GRID_GENERATION_FAILED")
