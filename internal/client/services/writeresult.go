package services

import (
	"errors"
	"fmt"
)

// ErrSkipped marks a remote phase that never ran because the local phase
// failed.
var ErrSkipped = errors.New("remote write skipped")

// WriteResult is the outcome of an optimistic two-phase write: the local
// commit, then the best-effort remote mirror. A failed remote phase never
// undoes a committed local phase.
type WriteResult struct {
	Local  error
	Remote error
}

// LocalCommitted reports whether the local phase succeeded.
func (r WriteResult) LocalCommitted() bool { return r.Local == nil }

// OK reports whether both phases succeeded.
func (r WriteResult) OK() bool { return r.Local == nil && r.Remote == nil }

// Err combines both phases' errors, or returns nil when OK.
func (r WriteResult) Err() error {
	var local, rem error
	if r.Local != nil {
		local = fmt.Errorf("local: %w", r.Local)
	}
	if r.Remote != nil {
		rem = fmt.Errorf("remote: %w", r.Remote)
	}
	return errors.Join(local, rem)
}

func localFailure(err error) WriteResult {
	return WriteResult{Local: err, Remote: ErrSkipped}
}
