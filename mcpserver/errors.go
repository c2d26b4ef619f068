package mcpserver

import "errors"

// Sentinel errors for server construction.
var (
	ErrNoSearcher  = errors.New("mcpserver: searcher is required")
	ErrInvalidTool = errors.New("mcpserver: invalid tool descriptor")
)
