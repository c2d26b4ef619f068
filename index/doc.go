// Package index is the full-text boundary of docsearch.
//
// It owns everything the search core treats as opaque: token normalization,
// storage, scoring and term positions. The implementation is a bleve index
// loaded once and then only read.
//
// # Snapshots
//
// A serialized index is a JSON [Snapshot] listing the searchable fields of
// every document under its corpus reference:
//
//	{
//	  "version": 1,
//	  "fields": ["title", "content", "keywords"],
//	  "documents": [
//	    {"ref": "0", "fields": {"title": "Peppers", "content": "..."}}
//	  ]
//	}
//
// [Load] turns a snapshot into an in-memory index. [Build] persists one as an
// on-disk bleve index and [Open] reopens such an index read-only.
//
// # Analysis
//
// Text is split on whitespace, hyphens and slashes, trimmed of punctuation at
// token edges and lower-cased. Indexed fields are additionally Porter
// stemmed. [Tokenize] exposes the split-and-lower-case chain without
// stemming; query construction uses it so that exact matches are stemmed by
// the index while prefix matches are taken literally.
//
// # Matches
//
// [Index.Execute] runs a [query.Query] and returns one [RawMatch] per
// document, ordered by score descending then reference ascending. Each
// RawMatch groups positions by the index term that matched:
//
//	for _, tm := range m.Terms {
//	    for field, positions := range tm.Fields {
//	        // positions are byte offsets into the original field text
//	    }
//	}
//
// # Fingerprints
//
// [Index.Fingerprint] is a sha256 over the snapshot documents. It changes
// whenever indexed text changes and is used to namespace cached results.
package index
