// Package mcpserver exposes documentation search as a Model Context
// Protocol tool.
//
// The server registers a single tool, search_docs, in the "docs"
// namespace. Its canonical identifier is "docs:search_docs". The tool is
// described with a toolfoundation model.Tool so the descriptor can be
// validated and catalogued like any other tool, then served with the
// official go-sdk over stdio or streamable HTTP.
//
// # Tool Contract
//
// Input:
//
//	{"query": "red \"sweet pepper\""}
//
// Output: the hits as structured content, mirrored as a JSON text block
// for clients that only read text:
//
//	{"hits": [{"hierarchy": {...}, "url": "...", "_highlightResult": {...}}]}
//
// An empty query yields an empty hit list. Index faults are reported as
// tool errors (IsError) rather than protocol errors, so the calling model
// can see what went wrong.
//
// # Usage
//
//	srv, err := mcpserver.New(searcher, mcpserver.Options{Name: "docsearch", Version: "0.1.0"})
//	if err != nil {
//	    return err
//	}
//	return srv.ServeStdio(ctx)
package mcpserver
