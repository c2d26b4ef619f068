package search

import "errors"

// Sentinel errors for search operations.
var (
	// ErrIndexUnavailable reports that the index could not be loaded or
	// queried. Every *IndexError matches it.
	ErrIndexUnavailable = errors.New("search: index unavailable")

	// ErrNoIndex is returned by New when neither an index nor a serialized
	// index is supplied.
	ErrNoIndex = errors.New("search: no index configured")
)

// Op values carried by IndexError.
const (
	OpLoad    = "load"
	OpExecute = "execute"
)

// IndexError wraps an index failure with the operation that hit it.
type IndexError struct {
	Op  string
	Err error
}

func (e *IndexError) Error() string { return "index " + e.Op + ": " + e.Err.Error() }

// Unwrap exposes both ErrIndexUnavailable and the underlying cause.
func (e *IndexError) Unwrap() []error { return []error{ErrIndexUnavailable, e.Err} }
