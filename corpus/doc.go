// Package corpus defines the documents a search call resolves hits against.
//
// A [Corpus] maps the opaque references used by the full-text index to the
// [Document] they were built from. It is constructed once, outside the search
// core, and only read afterwards.
//
// # Loading
//
// The generated docs file is either a JSON array (references are the decimal
// array positions) or a JSON object keyed by reference:
//
//	c, err := corpus.LoadFile("search-doc.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	doc, ok := c.Lookup("12")
package corpus
