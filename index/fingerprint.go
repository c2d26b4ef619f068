package index

import (
	"crypto/sha256"
	"encoding/hex"
)

// computeFingerprint hashes the snapshot documents in order. Every searchable
// field is written, present or not, so moving text between fields changes
// the result.
func computeFingerprint(docs []SnapshotDoc) string {
	h := sha256.New()

	for _, doc := range docs {
		h.Write([]byte(doc.Ref))
		h.Write([]byte{0})

		for _, field := range SearchFields {
			h.Write([]byte(field))
			h.Write([]byte{1})
			h.Write([]byte(doc.Fields[field]))
			h.Write([]byte{0})
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}
