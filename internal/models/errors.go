package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for entity lookups.
var ErrNodeNotFound = errors.New("node not found")

// ParseError reports a malformed input row. Depending on converter policy it
// is either counted and skipped or aborts the run; it is never silently
// dropped.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// CollisionError reports two distinct raw ids sanitizing to the same internal
// token. It is fatal: continuing would corrupt dedup and edge linkage.
type CollisionError struct {
	Token    string
	FirstID  string
	SecondID string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("sanitization collision on token %q: %q vs %q", e.Token, e.FirstID, e.SecondID)
}

// EmissionError reports a sink write or compression failure. The partial
// output is not valid bulk-loader input, so the run aborts and the file is
// removed.
type EmissionError struct {
	Batch  int64
	Offset int64
	Err    error
}

func (e *EmissionError) Error() string {
	return fmt.Sprintf("emitting batch %d at byte offset %d: %v", e.Batch, e.Offset, e.Err)
}

func (e *EmissionError) Unwrap() error { return e.Err }

// LookupError reports a failed call against the external graph store. It is
// scoped to the request that issued it and must never be treated as an empty
// result.
type LookupError struct {
	Op     string
	NodeID string
	Err    error
}

func (e *LookupError) Error() string {
	if e.NodeID == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s for node %q: %v", e.Op, e.NodeID, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }
