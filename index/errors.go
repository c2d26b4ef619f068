package index

import "errors"

// Error values for index loading and lookup.
var (
	// ErrInvalidSnapshot is returned when a serialized index cannot be decoded.
	ErrInvalidSnapshot = errors.New("invalid index snapshot")

	// ErrUnknownField is returned when a snapshot names a field the index
	// does not search.
	ErrUnknownField = errors.New("unknown index field")

	// ErrClosed is returned by operations on a closed index.
	ErrClosed = errors.New("index closed")
)
