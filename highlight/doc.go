// Package highlight wraps matched spans of document text in highlight markup
// and cuts content previews around a match.
//
// Offsets are byte offsets into the original text. Out-of-range offsets are
// clamped and spans are widened to whole UTF-8 sequences, so every function
// accepts any start and length without panicking.
//
// Content previews walk outwards from the match: up to three words back,
// stopping early at a sentence end or the start of the text, and up to ten
// words forward, stopping early at a sentence end or the end of the text.
// An ellipsis marks each side that was cut.
package highlight
