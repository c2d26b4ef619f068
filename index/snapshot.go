package index

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/jonwraymond/docsearch/corpus"
)

// SnapshotVersion is the snapshot format this package reads and writes.
const SnapshotVersion = 1

// Snapshot is the serialized form of an index.
type Snapshot struct {
	Version   int           `json:"version"`
	Fields    []string      `json:"fields"`
	Documents []SnapshotDoc `json:"documents"`
}

// SnapshotDoc holds the searchable text of one document.
type SnapshotDoc struct {
	Ref    string            `json:"ref"`
	Fields map[string]string `json:"fields"`
}

// NewSnapshot captures the searchable fields of every document in c,
// ordered by c.Refs. Empty fields are omitted.
func NewSnapshot(c corpus.Corpus) Snapshot {
	snap := Snapshot{
		Version:   SnapshotVersion,
		Fields:    slices.Clone(SearchFields),
		Documents: make([]SnapshotDoc, 0, len(c)),
	}
	for _, ref := range c.Refs() {
		doc := c[ref]
		fields := make(map[string]string, len(SearchFields))
		for _, name := range SearchFields {
			if text := doc.Field(name); text != "" {
				fields[name] = text
			}
		}
		snap.Documents = append(snap.Documents, SnapshotDoc{Ref: ref, Fields: fields})
	}
	return snap
}

// Marshal encodes the snapshot as JSON.
func (s Snapshot) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// Validate checks the format version, field names and references.
func (s Snapshot) Validate() error {
	if s.Version != SnapshotVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, s.Version)
	}
	for _, f := range s.Fields {
		if !slices.Contains(SearchFields, f) {
			return fmt.Errorf("%w: %q", ErrUnknownField, f)
		}
	}

	seen := make(map[string]struct{}, len(s.Documents))
	for i, doc := range s.Documents {
		if doc.Ref == "" {
			return fmt.Errorf("%w: document %d has no ref", ErrInvalidSnapshot, i)
		}
		if _, dup := seen[doc.Ref]; dup {
			return fmt.Errorf("%w: duplicate ref %q", ErrInvalidSnapshot, doc.Ref)
		}
		seen[doc.Ref] = struct{}{}

		for name := range doc.Fields {
			if !slices.Contains(s.Fields, name) {
				return fmt.Errorf("%w: %q in document %q", ErrUnknownField, name, doc.Ref)
			}
		}
	}
	return nil
}

// DecodeSnapshot parses and validates a serialized snapshot.
func DecodeSnapshot(blob []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if err := snap.Validate(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// indexable is the value handed to bleve for one snapshot document.
func (d SnapshotDoc) indexable() map[string]any {
	m := make(map[string]any, len(d.Fields))
	for name, text := range d.Fields {
		m[name] = text
	}
	return m
}
